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

type StatementService interface {
	Generate(ctx context.Context, generatedBy string, req dto.GenerateStatementRequest) (*models.Statement, error)
	Get(ctx context.Context, id string) (*models.Statement, error)
	List(ctx context.Context, filter dto.StatementListFilter) ([]*models.Statement, int, error)
}

type statementHandlers struct {
	deps *Deps
}

func NewStatementHandlers(deps *Deps) *statementHandlers {
	return &statementHandlers{deps: deps}
}

func (h *statementHandlers) Routes() chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(h.deps.Auth.RequireRole(token.RoleAdmin, token.RoleCollector))
		r.Post("/generate", h.Generate)
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.deps.Auth.RequireRole(token.RoleCustomer))
		r.Get("/customer/my-statements", h.MyStatements)
	})
	return r
}

func (h *statementHandlers) Generate(w http.ResponseWriter, r *http.Request) {
	var req dto.GenerateStatementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.deps.ResponseHandler.WriteError(w, r, http.StatusBadRequest, "invalid_input", "invalid request body")
		return
	}
	claims := middleware.Caller(r.Context())
	st, err := h.deps.StatementSvc.Generate(r.Context(), claims.Subject, req)
	if err != nil {
		h.deps.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.deps.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, "Statement generated successfully", st)
}

func (h *statementHandlers) Get(w http.ResponseWriter, r *http.Request) {
	st, err := h.deps.StatementSvc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.deps.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.deps.ResponseHandler.WriteSuccess(w, r, http.StatusOK, "", st)
}

func (h *statementHandlers) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := dto.StatementListFilter{
		AccountID:  q.Get("accountId"),
		CustomerID: q.Get("customerId"),
		Type:       q.Get("type"),
		Page:       pageQuery(r),
	}
	statements, total, err := h.deps.StatementSvc.List(r.Context(), filter)
	if err != nil {
		h.deps.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.deps.ResponseHandler.WriteList(w, r, statements, len(statements), listPage(total, filter.Page))
}

func (h *statementHandlers) MyStatements(w http.ResponseWriter, r *http.Request) {
	claims := middleware.Caller(r.Context())
	filter := dto.StatementListFilter{CustomerID: claims.Subject, Page: pageQuery(r)}
	statements, total, err := h.deps.StatementSvc.List(r.Context(), filter)
	if err != nil {
		h.deps.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.deps.ResponseHandler.WriteList(w, r, statements, len(statements), listPage(total, filter.Page))
}
