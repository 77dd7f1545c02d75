package response

import (
	"encoding/json"
	"net/http"

	"github.com/swasthikkulal/pigmy-backend/pkg/logger"
)

// SuccessEnvelope is the wire shape every successful response uses.
type SuccessEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// ListEnvelope extends the success envelope with pagination fields for
// collection endpoints.
type ListEnvelope struct {
	Success     bool `json:"success"`
	Count       int  `json:"count"`
	Total       int  `json:"total"`
	Pages       int  `json:"pages"`
	CurrentPage int  `json:"currentPage"`
	Data        any  `json:"data"`
}

// Page carries pagination totals computed by the service layer.
type Page struct {
	Total   int
	Pages   int
	Current int
}

func (h *responseHandler) WriteSuccess(w http.ResponseWriter, r *http.Request, status int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := SuccessEnvelope{
		Success: true,
		Message: message,
		Data:    data,
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode success response", "error", err)
	}
}

func (h *responseHandler) WriteList(w http.ResponseWriter, r *http.Request, data any, count int, page Page) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	resp := ListEnvelope{
		Success:     true,
		Count:       count,
		Total:       page.Total,
		Pages:       page.Pages,
		CurrentPage: page.Current,
		Data:        data,
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode list response", "error", err)
	}
}
