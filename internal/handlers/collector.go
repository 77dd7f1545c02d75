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

type CollectorService interface {
	Create(ctx context.Context, req dto.CreateCollectorRequest) (*models.Collector, error)
	Get(ctx context.Context, id string) (*models.Collector, error)
	List(ctx context.Context) ([]*models.Collector, error)
	Update(ctx context.Context, id string, req dto.UpdateCollectorRequest) (*models.Collector, error)
	Delete(ctx context.Context, id string) error
	Customers(ctx context.Context, id string, page dto.PageQuery) ([]*models.Customer, int, error)
	Stats(ctx context.Context, id string) (*dto.CollectorStats, error)
}

type collectorHandlers struct {
	deps *Deps
}

func NewCollectorHandlers(deps *Deps) *collectorHandlers {
	return &collectorHandlers{deps: deps}
}

func (h *collectorHandlers) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(h.deps.Auth.RequireRole(token.RoleAdmin))

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	r.Get("/{id}/customers", h.Customers)
	r.Get("/{id}/stats", h.Stats)
	return r
}

func (h *collectorHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCollectorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.deps.ResponseHandler.WriteError(w, r, http.StatusBadRequest, "invalid_input", "invalid request body")
		return
	}
	c, err := h.deps.CollectorSvc.Create(r.Context(), req)
	if err != nil {
		h.deps.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.deps.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, "Collector created successfully", c)
}

func (h *collectorHandlers) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.deps.CollectorSvc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.deps.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.deps.ResponseHandler.WriteSuccess(w, r, http.StatusOK, "", c)
}

func (h *collectorHandlers) List(w http.ResponseWriter, r *http.Request) {
	collectors, err := h.deps.CollectorSvc.List(r.Context())
	if err != nil {
		h.deps.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.deps.ResponseHandler.WriteSuccess(w, r, http.StatusOK, "", collectors)
}

func (h *collectorHandlers) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateCollectorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.deps.ResponseHandler.WriteError(w, r, http.StatusBadRequest, "invalid_input", "invalid request body")
		return
	}
	c, err := h.deps.CollectorSvc.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		h.deps.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.deps.ResponseHandler.WriteSuccess(w, r, http.StatusOK, "Collector updated successfully", c)
}

func (h *collectorHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.deps.CollectorSvc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.deps.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.deps.ResponseHandler.WriteSuccess(w, r, http.StatusOK, "Collector deleted successfully", nil)
}

func (h *collectorHandlers) Customers(w http.ResponseWriter, r *http.Request) {
	page := pageQuery(r)
	customers, total, err := h.deps.CollectorSvc.Customers(r.Context(), chi.URLParam(r, "id"), page)
	if err != nil {
		h.deps.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.deps.ResponseHandler.WriteList(w, r, customers, len(customers), listPage(total, page))
}

func (h *collectorHandlers) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.deps.CollectorSvc.Stats(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.deps.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.deps.ResponseHandler.WriteSuccess(w, r, http.StatusOK, "", stats)
}
