package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/swasthikkulal/pigmy-backend/internal/handlers"
	"github.com/swasthikkulal/pigmy-backend/internal/middleware"
)

func NewRouter(deps *handlers.Deps) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewLoggerMiddleware(deps.Log).LoggerMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		deps.ResponseHandler.WriteSuccess(w, r, http.StatusOK, "ok", nil)
	})

	r.Mount("/auth", handlers.NewAuthHandlers(deps).Routes())
	r.Mount("/accounts", handlers.NewAccountHandlers(deps).Routes())
	r.Mount("/customers", handlers.NewCustomerHandlers(deps).Routes())
	r.Mount("/collectors", handlers.NewCollectorHandlers(deps).Routes())
	r.Mount("/plans", handlers.NewPlanHandlers(deps).Routes())
	r.Mount("/payments", handlers.NewPaymentHandlers(deps).Routes())
	r.Mount("/withdrawals", handlers.NewWithdrawalHandlers(deps).Routes())
	r.Mount("/statements", handlers.NewStatementHandlers(deps).Routes())
	r.Mount("/feedback", handlers.NewFeedbackHandlers(deps).Routes())

	return r
}
