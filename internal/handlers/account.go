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

type AccountService interface {
	Create(ctx context.Context, createdBy string, req dto.CreateAccountRequest) (*models.Account, error)
	Get(ctx context.Context, ref string) (*models.Account, error)
	List(ctx context.Context, filter dto.AccountListFilter) ([]*models.Account, int, error)
	AddTransaction(ctx context.Context, ref, actorRole string, req dto.TransactionRequest) (*dto.TransactionResult, error)
	Transactions(ctx context.Context, ref string) (*dto.AccountTransactions, error)
	UpdateStatus(ctx context.Context, ref, updatedBy string, req dto.UpdateAccountStatusRequest) (*models.Account, error)
	Delete(ctx context.Context, ref string, force bool) (*dto.DeleteAccountResult, error)
	Stats(ctx context.Context) (*dto.AccountStats, error)
}

type accountHandlers struct {
	deps *Deps
}

func NewAccountHandlers(deps *Deps) *accountHandlers {
	return &accountHandlers{deps: deps}
}

func (h *accountHandlers) Routes() chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(h.deps.Auth.RequireRole(token.RoleAdmin))
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/stats/overview", h.Stats)
		r.Patch("/{id}/status", h.UpdateStatus)
		r.Delete("/{id}", h.Delete)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.deps.Auth.RequireRole(token.RoleAdmin, token.RoleCollector))
		r.Get("/{id}", h.Get)
		r.Get("/{id}/transactions", h.Transactions)
		r.Post("/{id}/transaction", h.AddTransaction)
	})
	return r
}

func (h *accountHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.deps.ResponseHandler.WriteError(w, r, http.StatusBadRequest, "invalid_input", "invalid request body")
		return
	}
	claims := middleware.Caller(r.Context())
	acc, err := h.deps.AccountSvc.Create(r.Context(), claims.Subject, req)
	if err != nil {
		h.deps.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.deps.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, "Account created successfully", acc)
}

func (h *accountHandlers) Get(w http.ResponseWriter, r *http.Request) {
	acc, err := h.deps.AccountSvc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.deps.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.deps.ResponseHandler.WriteSuccess(w, r, http.StatusOK, "", acc)
}

func (h *accountHandlers) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := dto.AccountListFilter{
		CustomerID:  q.Get("customerId"),
		CollectorID: q.Get("collectorId"),
		Status:      q.Get("status"),
		Page:        pageQuery(r),
	}
	accounts, total, err := h.deps.AccountSvc.List(r.Context(), filter)
	if err != nil {
		h.deps.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.deps.ResponseHandler.WriteList(w, r, accounts, len(accounts), listPage(total, filter.Page))
}

func (h *accountHandlers) AddTransaction(w http.ResponseWriter, r *http.Request) {
	var req dto.TransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.deps.ResponseHandler.WriteError(w, r, http.StatusBadRequest, "invalid_input", "invalid request body")
		return
	}
	claims := middleware.Caller(r.Context())
	if claims.Role == token.RoleCollector && req.CollectedBy == "" {
		req.CollectedBy = claims.Subject
	}
	res, err := h.deps.AccountSvc.AddTransaction(r.Context(), chi.URLParam(r, "id"), claims.Role, req)
	if err != nil {
		h.deps.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.deps.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, "Transaction added successfully", res)
}

func (h *accountHandlers) Transactions(w http.ResponseWriter, r *http.Request) {
	res, err := h.deps.AccountSvc.Transactions(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.deps.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.deps.ResponseHandler.WriteSuccess(w, r, http.StatusOK, "", res)
}

func (h *accountHandlers) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateAccountStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.deps.ResponseHandler.WriteError(w, r, http.StatusBadRequest, "invalid_input", "invalid request body")
		return
	}
	claims := middleware.Caller(r.Context())
	acc, err := h.deps.AccountSvc.UpdateStatus(r.Context(), chi.URLParam(r, "id"), claims.Subject, req)
	if err != nil {
		h.deps.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.deps.ResponseHandler.WriteSuccess(w, r, http.StatusOK, "Account status updated successfully", acc)
}

func (h *accountHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	force := r.URL.Query().Get("force") == "true"
	res, err := h.deps.AccountSvc.Delete(r.Context(), chi.URLParam(r, "id"), force)
	if err != nil {
		h.deps.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.deps.ResponseHandler.WriteSuccess(w, r, http.StatusOK, "Account deleted successfully", res)
}

func (h *accountHandlers) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.deps.AccountSvc.Stats(r.Context())
	if err != nil {
		h.deps.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.deps.ResponseHandler.WriteSuccess(w, r, http.StatusOK, "", stats)
}
