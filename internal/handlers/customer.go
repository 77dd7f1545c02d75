package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/swasthikkulal/pigmy-backend/internal/dto"
	"github.com/swasthikkulal/pigmy-backend/internal/models"
	"github.com/swasthikkulal/pigmy-backend/internal/token"
)

type CustomerService interface {
	Create(ctx context.Context, req dto.CreateCustomerRequest) (*models.Customer, error)
	Get(ctx context.Context, id string) (*models.Customer, error)
	List(ctx context.Context, filter dto.CustomerListFilter) ([]*models.Customer, int, error)
	Update(ctx context.Context, id string, req dto.UpdateCustomerRequest) (*models.Customer, error)
	SoftDelete(ctx context.Context, id string) (*dto.DeletedCustomer, error)
	HardDelete(ctx context.Context, id string) (*dto.DeletedCustomer, error)
	UpdateSavings(ctx context.Context, id string, req dto.UpdateSavingsRequest) (*dto.SavingsChange, error)
}

type customerHandlers struct {
	deps *Deps
}

func NewCustomerHandlers(deps *Deps) *customerHandlers {
	return &customerHandlers{deps: deps}
}

func (h *customerHandlers) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(h.deps.Auth.RequireRole(token.RoleAdmin))

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Patch("/{id}/savings", h.UpdateSavings)
	r.Patch("/{id}/delete", h.SoftDelete)
	r.Delete("/{id}", h.HardDelete)
	return r
}

func (h *customerHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.deps.ResponseHandler.WriteError(w, r, http.StatusBadRequest, "invalid_input", "invalid request body")
		return
	}
	c, err := h.deps.CustomerSvc.Create(r.Context(), req)
	if err != nil {
		h.deps.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.deps.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, "Customer created successfully", c)
}

func (h *customerHandlers) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.deps.CustomerSvc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.deps.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.deps.ResponseHandler.WriteSuccess(w, r, http.StatusOK, "", c)
}

func (h *customerHandlers) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := dto.CustomerListFilter{
		Status:         q.Get("status"),
		IncludeDeleted: q.Get("includeDeleted") == "true",
		CollectorID:    q.Get("collectorId"),
		Page:           pageQuery(r),
	}
	customers, total, err := h.deps.CustomerSvc.List(r.Context(), filter)
	if err != nil {
		h.deps.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.deps.ResponseHandler.WriteList(w, r, customers, len(customers), listPage(total, filter.Page))
}

func (h *customerHandlers) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.deps.ResponseHandler.WriteError(w, r, http.StatusBadRequest, "invalid_input", "invalid request body")
		return
	}
	c, err := h.deps.CustomerSvc.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		h.deps.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.deps.ResponseHandler.WriteSuccess(w, r, http.StatusOK, "Customer updated successfully", c)
}

func (h *customerHandlers) UpdateSavings(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateSavingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.deps.ResponseHandler.WriteError(w, r, http.StatusBadRequest, "invalid_input", "invalid request body")
		return
	}
	change, err := h.deps.CustomerSvc.UpdateSavings(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		h.deps.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.deps.ResponseHandler.WriteSuccess(w, r, http.StatusOK, "Savings updated successfully", change)
}

func (h *customerHandlers) SoftDelete(w http.ResponseWriter, r *http.Request) {
	res, err := h.deps.CustomerSvc.SoftDelete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.deps.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.deps.ResponseHandler.WriteSuccess(w, r, http.StatusOK, "Customer deleted successfully", res)
}

func (h *customerHandlers) HardDelete(w http.ResponseWriter, r *http.Request) {
	res, err := h.deps.CustomerSvc.HardDelete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.deps.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.deps.ResponseHandler.WriteSuccess(w, r, http.StatusOK, "Customer permanently deleted", res)
}
