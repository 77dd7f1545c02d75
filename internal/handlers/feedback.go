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

type FeedbackService interface {
	Submit(ctx context.Context, customerID string, req dto.CreateFeedbackRequest) (*models.Feedback, error)
	Get(ctx context.Context, id string) (*models.Feedback, error)
	List(ctx context.Context, filter dto.FeedbackListFilter) ([]*models.Feedback, int, error)
	ListMine(ctx context.Context, customerID string) ([]*models.Feedback, error)
	UpdateStatus(ctx context.Context, id, adminID string, req dto.UpdateFeedbackStatusRequest) (*models.Feedback, error)
	Overview(ctx context.Context) (*dto.FeedbackOverview, error)
	SubmitCollector(ctx context.Context, collectorID string, req dto.CreateCollectorFeedbackRequest) (*models.CollectorFeedback, error)
	ListCollector(ctx context.Context, status string, page dto.PageQuery) ([]*models.CollectorFeedback, int, error)
	ListCollectorMine(ctx context.Context, collectorID string) ([]*models.CollectorFeedback, error)
	UpdateCollectorStatus(ctx context.Context, id string, req dto.UpdateCollectorFeedbackStatusRequest) (*models.CollectorFeedback, error)
	AddCollectorNotes(ctx context.Context, id string, req dto.CollectorFeedbackNotesRequest) (*models.CollectorFeedback, error)
}

type feedbackHandlers struct {
	deps *Deps
}

func NewFeedbackHandlers(deps *Deps) *feedbackHandlers {
	return &feedbackHandlers{deps: deps}
}

func (h *feedbackHandlers) Routes() chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(h.deps.Auth.RequireRole(token.RoleCustomer))
		r.Post("/", h.Submit)
		r.Get("/customer/my-feedback", h.MyFeedback)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.deps.Auth.RequireRole(token.RoleCollector))
		r.Post("/collector", h.SubmitCollector)
		r.Get("/collector/my-feedback", h.MyCollectorFeedback)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.deps.Auth.RequireRole(token.RoleAdmin))
		r.Get("/", h.List)
		r.Get("/stats/overview", h.Overview)
		r.Get("/{id}", h.Get)
		r.Patch("/{id}/status", h.UpdateStatus)
		r.Get("/collector/all", h.ListCollector)
		r.Patch("/collector/{id}/status", h.UpdateCollectorStatus)
		r.Patch("/collector/{id}/notes", h.AddCollectorNotes)
	})
	return r
}

func (h *feedbackHandlers) Submit(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.deps.ResponseHandler.WriteError(w, r, http.StatusBadRequest, "invalid_input", "invalid request body")
		return
	}
	claims := middleware.Caller(r.Context())
	fb, err := h.deps.FeedbackSvc.Submit(r.Context(), claims.Subject, req)
	if err != nil {
		h.deps.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.deps.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, "Feedback submitted successfully", fb)
}

func (h *feedbackHandlers) Get(w http.ResponseWriter, r *http.Request) {
	fb, err := h.deps.FeedbackSvc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.deps.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.deps.ResponseHandler.WriteSuccess(w, r, http.StatusOK, "", fb)
}

func (h *feedbackHandlers) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := dto.FeedbackListFilter{
		Status:   q.Get("status"),
		Type:     q.Get("type"),
		Priority: q.Get("priority"),
		Page:     pageQuery(r),
	}
	items, total, err := h.deps.FeedbackSvc.List(r.Context(), filter)
	if err != nil {
		h.deps.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.deps.ResponseHandler.WriteList(w, r, items, len(items), listPage(total, filter.Page))
}

func (h *feedbackHandlers) MyFeedback(w http.ResponseWriter, r *http.Request) {
	claims := middleware.Caller(r.Context())
	items, err := h.deps.FeedbackSvc.ListMine(r.Context(), claims.Subject)
	if err != nil {
		h.deps.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.deps.ResponseHandler.WriteSuccess(w, r, http.StatusOK, "", items)
}

func (h *feedbackHandlers) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateFeedbackStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.deps.ResponseHandler.WriteError(w, r, http.StatusBadRequest, "invalid_input", "invalid request body")
		return
	}
	claims := middleware.Caller(r.Context())
	fb, err := h.deps.FeedbackSvc.UpdateStatus(r.Context(), chi.URLParam(r, "id"), claims.Subject, req)
	if err != nil {
		h.deps.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.deps.ResponseHandler.WriteSuccess(w, r, http.StatusOK, "Feedback status updated successfully", fb)
}

func (h *feedbackHandlers) Overview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.deps.FeedbackSvc.Overview(r.Context())
	if err != nil {
		h.deps.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.deps.ResponseHandler.WriteSuccess(w, r, http.StatusOK, "", overview)
}

func (h *feedbackHandlers) SubmitCollector(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCollectorFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.deps.ResponseHandler.WriteError(w, r, http.StatusBadRequest, "invalid_input", "invalid request body")
		return
	}
	claims := middleware.Caller(r.Context())
	fb, err := h.deps.FeedbackSvc.SubmitCollector(r.Context(), claims.Subject, req)
	if err != nil {
		h.deps.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.deps.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, "Feedback submitted successfully", fb)
}

func (h *feedbackHandlers) ListCollector(w http.ResponseWriter, r *http.Request) {
	page := pageQuery(r)
	items, total, err := h.deps.FeedbackSvc.ListCollector(r.Context(), r.URL.Query().Get("status"), page)
	if err != nil {
		h.deps.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.deps.ResponseHandler.WriteList(w, r, items, len(items), listPage(total, page))
}

func (h *feedbackHandlers) MyCollectorFeedback(w http.ResponseWriter, r *http.Request) {
	claims := middleware.Caller(r.Context())
	items, err := h.deps.FeedbackSvc.ListCollectorMine(r.Context(), claims.Subject)
	if err != nil {
		h.deps.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.deps.ResponseHandler.WriteSuccess(w, r, http.StatusOK, "", items)
}

func (h *feedbackHandlers) UpdateCollectorStatus(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateCollectorFeedbackStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.deps.ResponseHandler.WriteError(w, r, http.StatusBadRequest, "invalid_input", "invalid request body")
		return
	}
	fb, err := h.deps.FeedbackSvc.UpdateCollectorStatus(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		h.deps.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.deps.ResponseHandler.WriteSuccess(w, r, http.StatusOK, "Feedback status updated successfully", fb)
}

func (h *feedbackHandlers) AddCollectorNotes(w http.ResponseWriter, r *http.Request) {
	var req dto.CollectorFeedbackNotesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.deps.ResponseHandler.WriteError(w, r, http.StatusBadRequest, "invalid_input", "invalid request body")
		return
	}
	fb, err := h.deps.FeedbackSvc.AddCollectorNotes(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		h.deps.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.deps.ResponseHandler.WriteSuccess(w, r, http.StatusOK, "Notes added successfully", fb)
}
