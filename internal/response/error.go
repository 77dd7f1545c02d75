package response

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/swasthikkulal/pigmy-backend/internal/errs"
	"github.com/swasthikkulal/pigmy-backend/pkg/logger"
)

// ErrorEnvelope mirrors the success envelope with success=false and an
// error code for clients that branch on failure class.
type ErrorEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func (h *responseHandler) WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(ErrorEnvelope{
		Success: false,
		Message: message,
		Error:   code,
	}); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode error response",
			"error", err, "status", status, "code", code)
	}
}

func (h *responseHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	switch e := err.(type) {
	case *errs.NotFoundError:
		log.Warn("resource not found", "error", e.Message)
		h.WriteError(w, r, http.StatusNotFound, "not_found", e.Message)

	case *errs.AlreadyExistsError:
		// the original API reported duplicates as 400, not 409
		log.Warn("duplicate resource", "error", e.Message)
		h.WriteError(w, r, http.StatusBadRequest, "already_exists", e.Message)

	case *errs.ValidationError:
		log.Warn("validation failed", "error", e.Message)
		h.WriteError(w, r, http.StatusBadRequest, "invalid_input", e.Message)

	case *errs.BusinessRuleError:
		log.Warn("business rule violation", "error", e.Message)
		h.WriteError(w, r, http.StatusBadRequest, "business_rule", e.Message)

	case *errs.UnauthorizedError:
		log.Warn("unauthorized", "error", e.Message)
		h.WriteError(w, r, http.StatusUnauthorized, "unauthorized", e.Message)

	case *errs.ForbiddenError:
		log.Warn("forbidden", "error", e.Message)
		h.WriteError(w, r, http.StatusForbidden, "forbidden", e.Message)

	case *errs.DatabaseError:
		log.Error("database error", "operation", e.Operation, "error", e.Message)
		h.WriteError(w, r, http.StatusInternalServerError, "internal_error", "Server Error")

	case *errs.EncryptionError:
		log.Error("encryption error", "error", e.Message)
		h.WriteError(w, r, http.StatusInternalServerError, "internal_error", "Server Error")

	default:
		log.Error("unexpected error", "error", err, "type", fmt.Sprintf("%T", err))
		h.WriteError(w, r, http.StatusInternalServerError, "internal_error", "Server Error")
	}
}
