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

type AuthService interface {
	RegisterAdmin(ctx context.Context, req dto.RegisterAdminRequest) (*models.Admin, error)
	LoginAdmin(ctx context.Context, req dto.AdminLoginRequest) (*dto.AuthResult, error)
	LoginCollector(ctx context.Context, req dto.CollectorLoginRequest) (*dto.AuthResult, error)
	LoginCustomer(ctx context.Context, req dto.CustomerLoginRequest) (*dto.AuthResult, error)
	GetAdmin(ctx context.Context, id string) (*models.Admin, error)
	GetCollectorProfile(ctx context.Context, id string) (*models.Collector, error)
	UpdateCollectorProfile(ctx context.Context, id string, req dto.UpdateCollectorProfileRequest) (*models.Collector, error)
	ChangeCollectorPassword(ctx context.Context, id string, req dto.ChangePasswordRequest) (*models.Collector, error)
	ChangeCustomerPassword(ctx context.Context, id string, req dto.ChangePasswordRequest) error
}

type authHandlers struct {
	deps *Deps
}

func NewAuthHandlers(deps *Deps) *authHandlers {
	return &authHandlers{deps: deps}
}

func (h *authHandlers) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/register", h.RegisterAdmin)
	r.Post("/login", h.LoginAdmin)
	r.Post("/collector/login", h.LoginCollector)
	r.Post("/customer/login", h.LoginCustomer)

	r.Group(func(r chi.Router) {
		r.Use(h.deps.Auth.RequireRole(token.RoleAdmin))
		r.Get("/me", h.AdminMe)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.deps.Auth.RequireRole(token.RoleCollector))
		r.Get("/collector/me", h.CollectorMe)
		r.Put("/collector/profile", h.UpdateCollectorProfile)
		r.Put("/collector/change-password", h.ChangeCollectorPassword)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.deps.Auth.RequireRole(token.RoleCustomer))
		r.Get("/customer/me", h.CustomerMe)
		r.Put("/customer/change-password", h.ChangeCustomerPassword)
	})
	return r
}

func (h *authHandlers) RegisterAdmin(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.deps.ResponseHandler.WriteError(w, r, http.StatusBadRequest, "invalid_input", "invalid request body")
		return
	}
	admin, err := h.deps.AuthSvc.RegisterAdmin(r.Context(), req)
	if err != nil {
		h.deps.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.deps.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, "Admin registered successfully", admin)
}

func (h *authHandlers) LoginAdmin(w http.ResponseWriter, r *http.Request) {
	var req dto.AdminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.deps.ResponseHandler.WriteError(w, r, http.StatusBadRequest, "invalid_input", "invalid request body")
		return
	}
	res, err := h.deps.AuthSvc.LoginAdmin(r.Context(), req)
	if err != nil {
		h.deps.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.deps.ResponseHandler.WriteSuccess(w, r, http.StatusOK, "Login successful", res)
}

func (h *authHandlers) LoginCollector(w http.ResponseWriter, r *http.Request) {
	var req dto.CollectorLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.deps.ResponseHandler.WriteError(w, r, http.StatusBadRequest, "invalid_input", "invalid request body")
		return
	}
	res, err := h.deps.AuthSvc.LoginCollector(r.Context(), req)
	if err != nil {
		h.deps.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.deps.ResponseHandler.WriteSuccess(w, r, http.StatusOK, "Login successful", res)
}

func (h *authHandlers) LoginCustomer(w http.ResponseWriter, r *http.Request) {
	var req dto.CustomerLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.deps.ResponseHandler.WriteError(w, r, http.StatusBadRequest, "invalid_input", "invalid request body")
		return
	}
	res, err := h.deps.AuthSvc.LoginCustomer(r.Context(), req)
	if err != nil {
		h.deps.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.deps.ResponseHandler.WriteSuccess(w, r, http.StatusOK, "Login successful", res)
}

func (h *authHandlers) AdminMe(w http.ResponseWriter, r *http.Request) {
	claims := middleware.Caller(r.Context())
	admin, err := h.deps.AuthSvc.GetAdmin(r.Context(), claims.Subject)
	if err != nil {
		h.deps.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.deps.ResponseHandler.WriteSuccess(w, r, http.StatusOK, "", admin)
}

func (h *authHandlers) CollectorMe(w http.ResponseWriter, r *http.Request) {
	claims := middleware.Caller(r.Context())
	c, err := h.deps.AuthSvc.GetCollectorProfile(r.Context(), claims.Subject)
	if err != nil {
		h.deps.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.deps.ResponseHandler.WriteSuccess(w, r, http.StatusOK, "", c)
}

func (h *authHandlers) UpdateCollectorProfile(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateCollectorProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.deps.ResponseHandler.WriteError(w, r, http.StatusBadRequest, "invalid_input", "invalid request body")
		return
	}
	claims := middleware.Caller(r.Context())
	c, err := h.deps.AuthSvc.UpdateCollectorProfile(r.Context(), claims.Subject, req)
	if err != nil {
		h.deps.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.deps.ResponseHandler.WriteSuccess(w, r, http.StatusOK, "Profile updated successfully", c)
}

func (h *authHandlers) ChangeCollectorPassword(w http.ResponseWriter, r *http.Request) {
	var req dto.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.deps.ResponseHandler.WriteError(w, r, http.StatusBadRequest, "invalid_input", "invalid request body")
		return
	}
	claims := middleware.Caller(r.Context())
	c, err := h.deps.AuthSvc.ChangeCollectorPassword(r.Context(), claims.Subject, req)
	if err != nil {
		h.deps.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.deps.ResponseHandler.WriteSuccess(w, r, http.StatusOK, "Password changed successfully", c)
}

func (h *authHandlers) CustomerMe(w http.ResponseWriter, r *http.Request) {
	claims := middleware.Caller(r.Context())
	c, err := h.deps.CustomerSvc.Get(r.Context(), claims.Subject)
	if err != nil {
		h.deps.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.deps.ResponseHandler.WriteSuccess(w, r, http.StatusOK, "", c)
}

func (h *authHandlers) ChangeCustomerPassword(w http.ResponseWriter, r *http.Request) {
	var req dto.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.deps.ResponseHandler.WriteError(w, r, http.StatusBadRequest, "invalid_input", "invalid request body")
		return
	}
	claims := middleware.Caller(r.Context())
	if err := h.deps.AuthSvc.ChangeCustomerPassword(r.Context(), claims.Subject, req); err != nil {
		h.deps.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.deps.ResponseHandler.WriteSuccess(w, r, http.StatusOK, "Password changed successfully", nil)
}
