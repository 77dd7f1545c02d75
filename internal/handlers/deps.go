package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/swasthikkulal/pigmy-backend/internal/dto"
	"github.com/swasthikkulal/pigmy-backend/internal/middleware"
	"github.com/swasthikkulal/pigmy-backend/internal/response"
)

type Deps struct {
	Log             *slog.Logger
	ResponseHandler response.ResponseHandler
	Auth            *middleware.Middleware

	AuthSvc       AuthService
	AccountSvc    AccountService
	CustomerSvc   CustomerService
	CollectorSvc  CollectorService
	PlanSvc       PlanService
	PaymentSvc    PaymentService
	WithdrawalSvc WithdrawalService
	StatementSvc  StatementService
	FeedbackSvc   FeedbackService
}

// pageQuery reads the shared page/limit parameters; defaults are applied by
// Normalize downstream.
func pageQuery(r *http.Request) dto.PageQuery {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	return dto.PageQuery{Page: page, Limit: limit}
}

// listPage builds the response pagination block for a total and query.
func listPage(total int, q dto.PageQuery) response.Page {
	q = q.Normalize()
	pages := total / q.Limit
	if total%q.Limit != 0 {
		pages++
	}
	return response.Page{Total: total, Pages: pages, Current: q.Page}
}
