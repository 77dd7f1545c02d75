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

type PaymentService interface {
	Process(ctx context.Context, customerID string, req dto.ProcessPaymentRequest) (*models.Payment, error)
	Get(ctx context.Context, id string) (*models.Payment, error)
	List(ctx context.Context, filter dto.PaymentListFilter) ([]*models.Payment, int, error)
	UpdateStatus(ctx context.Context, id, actorID string, req dto.UpdatePaymentStatusRequest) (*models.Payment, error)
	Verify(ctx context.Context, id, verifierID string) (*models.Payment, error)
	AccountHistory(ctx context.Context, accountRef string, page dto.PageQuery) ([]*models.Payment, int, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*dto.PaymentStats, error)
}

type paymentHandlers struct {
	deps *Deps
}

func NewPaymentHandlers(deps *Deps) *paymentHandlers {
	return &paymentHandlers{deps: deps}
}

func (h *paymentHandlers) Routes() chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(h.deps.Auth.RequireRole(token.RoleCustomer))
		r.Post("/process", h.Process)
		r.Get("/customer/my-payments", h.MyPayments)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.deps.Auth.RequireRole(token.RoleAdmin, token.RoleCollector))
		r.Get("/", h.List)
		r.Get("/pending", h.ListPending)
		r.Get("/stats", h.Stats)
		r.Get("/{id}", h.Get)
		r.Put("/{id}/status", h.UpdateStatus)
		r.Post("/{id}/verify", h.Verify)
		r.Get("/account/{accountId}/history", h.AccountHistory)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.deps.Auth.RequireRole(token.RoleAdmin))
		r.Delete("/{id}", h.Delete)
	})
	return r
}

func (h *paymentHandlers) Process(w http.ResponseWriter, r *http.Request) {
	var req dto.ProcessPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.deps.ResponseHandler.WriteError(w, r, http.StatusBadRequest, "invalid_input", "invalid request body")
		return
	}
	claims := middleware.Caller(r.Context())
	p, err := h.deps.PaymentSvc.Process(r.Context(), claims.Subject, req)
	if err != nil {
		h.deps.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.deps.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, "Payment processed successfully", p)
}

func (h *paymentHandlers) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.deps.PaymentSvc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.deps.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.deps.ResponseHandler.WriteSuccess(w, r, http.StatusOK, "", p)
}

func (h *paymentHandlers) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := dto.PaymentListFilter{
		AccountID:   q.Get("accountId"),
		CustomerID:  q.Get("customerId"),
		CollectorID: q.Get("collectorId"),
		Status:      q.Get("status"),
		Type:        q.Get("type"),
		Page:        pageQuery(r),
	}
	payments, total, err := h.deps.PaymentSvc.List(r.Context(), filter)
	if err != nil {
		h.deps.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.deps.ResponseHandler.WriteList(w, r, payments, len(payments), listPage(total, filter.Page))
}

func (h *paymentHandlers) ListPending(w http.ResponseWriter, r *http.Request) {
	filter := dto.PaymentListFilter{Status: models.PaymentStatusPending, Page: pageQuery(r)}
	payments, total, err := h.deps.PaymentSvc.List(r.Context(), filter)
	if err != nil {
		h.deps.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.deps.ResponseHandler.WriteList(w, r, payments, len(payments), listPage(total, filter.Page))
}

func (h *paymentHandlers) MyPayments(w http.ResponseWriter, r *http.Request) {
	claims := middleware.Caller(r.Context())
	filter := dto.PaymentListFilter{CustomerID: claims.Subject, Page: pageQuery(r)}
	payments, total, err := h.deps.PaymentSvc.List(r.Context(), filter)
	if err != nil {
		h.deps.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.deps.ResponseHandler.WriteList(w, r, payments, len(payments), listPage(total, filter.Page))
}

func (h *paymentHandlers) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdatePaymentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.deps.ResponseHandler.WriteError(w, r, http.StatusBadRequest, "invalid_input", "invalid request body")
		return
	}
	claims := middleware.Caller(r.Context())
	p, err := h.deps.PaymentSvc.UpdateStatus(r.Context(), chi.URLParam(r, "id"), claims.Subject, req)
	if err != nil {
		h.deps.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.deps.ResponseHandler.WriteSuccess(w, r, http.StatusOK, "Payment status updated successfully", p)
}

func (h *paymentHandlers) Verify(w http.ResponseWriter, r *http.Request) {
	claims := middleware.Caller(r.Context())
	p, err := h.deps.PaymentSvc.Verify(r.Context(), chi.URLParam(r, "id"), claims.Subject)
	if err != nil {
		h.deps.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.deps.ResponseHandler.WriteSuccess(w, r, http.StatusOK, "Payment verified successfully", p)
}

func (h *paymentHandlers) AccountHistory(w http.ResponseWriter, r *http.Request) {
	page := pageQuery(r)
	payments, total, err := h.deps.PaymentSvc.AccountHistory(r.Context(), chi.URLParam(r, "accountId"), page)
	if err != nil {
		h.deps.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.deps.ResponseHandler.WriteList(w, r, payments, len(payments), listPage(total, page))
}

func (h *paymentHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.deps.PaymentSvc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.deps.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.deps.ResponseHandler.WriteSuccess(w, r, http.StatusOK, "Payment deleted successfully", nil)
}

func (h *paymentHandlers) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.deps.PaymentSvc.Stats(r.Context())
	if err != nil {
		h.deps.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.deps.ResponseHandler.WriteSuccess(w, r, http.StatusOK, "", stats)
}
