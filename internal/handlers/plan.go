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

type PlanService interface {
	Create(ctx context.Context, createdBy string, req dto.CreatePlanRequest) (*models.Plan, error)
	Get(ctx context.Context, id string) (*models.Plan, error)
	List(ctx context.Context, status, planType string) ([]*models.Plan, error)
	Update(ctx context.Context, id string, req dto.UpdatePlanRequest) (*models.Plan, error)
	UpdateStatus(ctx context.Context, id string, req dto.UpdatePlanStatusRequest) (*models.Plan, error)
	Delete(ctx context.Context, id string) (bool, error)
	CalculateMaturity(ctx context.Context, id string, req dto.CalculateMaturityRequest) (*dto.MaturityCalculation, error)
	Stats(ctx context.Context) (*dto.PlanStats, error)
}

type planHandlers struct {
	deps *Deps
}

func NewPlanHandlers(deps *Deps) *planHandlers {
	return &planHandlers{deps: deps}
}

func (h *planHandlers) Routes() chi.Router {
	r := chi.NewRouter()

	// browsing plans and projecting maturity is open to any caller
	r.Get("/", h.List)
	r.Get("/type/{type}", h.ListByType)
	r.Get("/{id}", h.Get)
	r.Post("/{id}/calculate-maturity", h.CalculateMaturity)

	r.Group(func(r chi.Router) {
		r.Use(h.deps.Auth.RequireRole(token.RoleAdmin))
		r.Post("/", h.Create)
		r.Put("/{id}", h.Update)
		r.Patch("/{id}/status", h.UpdateStatus)
		r.Delete("/{id}", h.Delete)
		r.Get("/stats/overview", h.Stats)
	})
	return r
}

func (h *planHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.deps.ResponseHandler.WriteError(w, r, http.StatusBadRequest, "invalid_input", "invalid request body")
		return
	}
	claims := middleware.Caller(r.Context())
	p, err := h.deps.PlanSvc.Create(r.Context(), claims.Subject, req)
	if err != nil {
		h.deps.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.deps.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, "Plan created successfully", p)
}

func (h *planHandlers) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.deps.PlanSvc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.deps.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.deps.ResponseHandler.WriteSuccess(w, r, http.StatusOK, "", p)
}

func (h *planHandlers) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	plans, err := h.deps.PlanSvc.List(r.Context(), q.Get("status"), q.Get("type"))
	if err != nil {
		h.deps.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.deps.ResponseHandler.WriteSuccess(w, r, http.StatusOK, "", plans)
}

func (h *planHandlers) ListByType(w http.ResponseWriter, r *http.Request) {
	plans, err := h.deps.PlanSvc.List(r.Context(), models.PlanStatusActive, chi.URLParam(r, "type"))
	if err != nil {
		h.deps.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.deps.ResponseHandler.WriteSuccess(w, r, http.StatusOK, "", plans)
}

func (h *planHandlers) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdatePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.deps.ResponseHandler.WriteError(w, r, http.StatusBadRequest, "invalid_input", "invalid request body")
		return
	}
	p, err := h.deps.PlanSvc.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		h.deps.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.deps.ResponseHandler.WriteSuccess(w, r, http.StatusOK, "Plan updated successfully", p)
}

func (h *planHandlers) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdatePlanStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.deps.ResponseHandler.WriteError(w, r, http.StatusBadRequest, "invalid_input", "invalid request body")
		return
	}
	p, err := h.deps.PlanSvc.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		h.deps.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.deps.ResponseHandler.WriteSuccess(w, r, http.StatusOK, "Plan status updated successfully", p)
}

func (h *planHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	archived, err := h.deps.PlanSvc.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.deps.ResponseHandler.HandleError(w, r, err)
		return
	}
	msg := "Plan deleted successfully"
	if archived {
		msg = "Plan has subscribers and was archived instead"
	}
	h.deps.ResponseHandler.WriteSuccess(w, r, http.StatusOK, msg, nil)
}

func (h *planHandlers) CalculateMaturity(w http.ResponseWriter, r *http.Request) {
	var req dto.CalculateMaturityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.deps.ResponseHandler.WriteError(w, r, http.StatusBadRequest, "invalid_input", "invalid request body")
		return
	}
	calc, err := h.deps.PlanSvc.CalculateMaturity(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		h.deps.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.deps.ResponseHandler.WriteSuccess(w, r, http.StatusOK, "", calc)
}

func (h *planHandlers) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.deps.PlanSvc.Stats(r.Context())
	if err != nil {
		h.deps.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.deps.ResponseHandler.WriteSuccess(w, r, http.StatusOK, "", stats)
}
