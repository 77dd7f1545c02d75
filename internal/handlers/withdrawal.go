package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/swasthikkulal/pigmy-backend/internal/dto"
	"github.com/swasthikkulal/pigmy-backend/internal/middleware"
	"github.com/swasthikkulal/pigmy-backend/internal/models"
	"github.com/swasthikkulal/pigmy-backend/internal/token"
)

type WithdrawalService interface {
	Request(ctx context.Context, customerID string, req dto.CreateWithdrawalRequest) (*models.Withdrawal, error)
	Get(ctx context.Context, id string) (*models.Withdrawal, error)
	List(ctx context.Context, filter dto.WithdrawalListFilter) ([]*models.Withdrawal, int, error)
	Approve(ctx context.Context, id, processedBy, collectorID, remarks string) (*models.Withdrawal, error)
	Reject(ctx context.Context, id, processedBy, remarks string) (*models.Withdrawal, error)
	UpdateStatus(ctx context.Context, id, processedBy, collectorID string, req dto.UpdateWithdrawalStatusRequest) (*models.Withdrawal, error)
	Stats(ctx context.Context) (*dto.WithdrawalStats, error)
}

type withdrawalHandlers struct {
	deps *Deps
}

func NewWithdrawalHandlers(deps *Deps) *withdrawalHandlers {
	return &withdrawalHandlers{deps: deps}
}

func (h *withdrawalHandlers) Routes() chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(h.deps.Auth.RequireRole(token.RoleCustomer))
		r.Post("/", h.Request)
		r.Get("/customer/my-requests", h.MyRequests)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.deps.Auth.RequireRole(token.RoleCollector))
		r.Get("/collector/pending", h.CollectorPending)
		r.Get("/collector/stats", h.Stats)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.deps.Auth.RequireRole(token.RoleAdmin))
		r.Get("/", h.List)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.deps.Auth.RequireRole(token.RoleAdmin, token.RoleCollector))
		r.Get("/{id}", h.Get)
		r.Put("/{id}/approve", h.Approve)
		r.Put("/{id}/reject", h.Reject)
		r.Patch("/{id}/status", h.UpdateStatus)
	})
	return r
}

func (h *withdrawalHandlers) Request(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateWithdrawalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.deps.ResponseHandler.WriteError(w, r, http.StatusBadRequest, "invalid_input", "invalid request body")
		return
	}
	claims := middleware.Caller(r.Context())
	wd, err := h.deps.WithdrawalSvc.Request(r.Context(), claims.Subject, req)
	if err != nil {
		h.deps.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.deps.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, "Withdrawal request submitted successfully", wd)
}

func (h *withdrawalHandlers) Get(w http.ResponseWriter, r *http.Request) {
	wd, err := h.deps.WithdrawalSvc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.deps.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.deps.ResponseHandler.WriteSuccess(w, r, http.StatusOK, "", wd)
}

func (h *withdrawalHandlers) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := dto.WithdrawalListFilter{
		CustomerID: q.Get("customerId"),
		Status:     q.Get("status"),
		Page:       pageQuery(r),
	}
	withdrawals, total, err := h.deps.WithdrawalSvc.List(r.Context(), filter)
	if err != nil {
		h.deps.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.deps.ResponseHandler.WriteList(w, r, withdrawals, len(withdrawals), listPage(total, filter.Page))
}

func (h *withdrawalHandlers) MyRequests(w http.ResponseWriter, r *http.Request) {
	claims := middleware.Caller(r.Context())
	filter := dto.WithdrawalListFilter{CustomerID: claims.Subject, Page: pageQuery(r)}
	withdrawals, total, err := h.deps.WithdrawalSvc.List(r.Context(), filter)
	if err != nil {
		h.deps.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.deps.ResponseHandler.WriteList(w, r, withdrawals, len(withdrawals), listPage(total, filter.Page))
}

func (h *withdrawalHandlers) CollectorPending(w http.ResponseWriter, r *http.Request) {
	filter := dto.WithdrawalListFilter{Status: models.WithdrawalStatusPending, Page: pageQuery(r)}
	withdrawals, total, err := h.deps.WithdrawalSvc.List(r.Context(), filter)
	if err != nil {
		h.deps.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.deps.ResponseHandler.WriteList(w, r, withdrawals, len(withdrawals), listPage(total, filter.Page))
}

// collectorScope reports the collector credited for a decision. Admin
// approvals do not bump any collector's collection counter.
func collectorScope(claims *token.Claims) string {
	if claims.Role == token.RoleCollector {
		return claims.Subject
	}
	return ""
}

func (h *withdrawalHandlers) Approve(w http.ResponseWriter, r *http.Request) {
	var req dto.WithdrawalDecisionRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.deps.ResponseHandler.WriteError(w, r, http.StatusBadRequest, "invalid_input", "invalid request body")
			return
		}
	}
	claims := middleware.Caller(r.Context())
	wd, err := h.deps.WithdrawalSvc.Approve(r.Context(), chi.URLParam(r, "id"), claims.Subject, collectorScope(claims), req.Remarks)
	if err != nil {
		h.deps.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.deps.ResponseHandler.WriteSuccess(w, r, http.StatusOK, "Withdrawal approved successfully", wd)
}

func (h *withdrawalHandlers) Reject(w http.ResponseWriter, r *http.Request) {
	var req dto.WithdrawalDecisionRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.deps.ResponseHandler.WriteError(w, r, http.StatusBadRequest, "invalid_input", "invalid request body")
			return
		}
	}
	claims := middleware.Caller(r.Context())
	wd, err := h.deps.WithdrawalSvc.Reject(r.Context(), chi.URLParam(r, "id"), claims.Subject, req.Remarks)
	if err != nil {
		h.deps.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.deps.ResponseHandler.WriteSuccess(w, r, http.StatusOK, "Withdrawal rejected", wd)
}

func (h *withdrawalHandlers) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateWithdrawalStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.deps.ResponseHandler.WriteError(w, r, http.StatusBadRequest, "invalid_input", "invalid request body")
		return
	}
	claims := middleware.Caller(r.Context())
	wd, err := h.deps.WithdrawalSvc.UpdateStatus(r.Context(), chi.URLParam(r, "id"), claims.Subject, collectorScope(claims), req)
	if err != nil {
		h.deps.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.deps.ResponseHandler.WriteSuccess(w, r, http.StatusOK, "Withdrawal status updated successfully", wd)
}

func (h *withdrawalHandlers) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.deps.WithdrawalSvc.Stats(r.Context())
	if err != nil {
		h.deps.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.deps.ResponseHandler.WriteSuccess(w, r, http.StatusOK, "", stats)
}
