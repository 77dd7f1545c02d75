package response

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/swasthikkulal/pigmy-backend/internal/errs"
	"github.com/swasthikkulal/pigmy-backend/pkg/helpers"
	"github.com/swasthikkulal/pigmy-backend/pkg/logger"
)

func testRequest() *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/test", nil)
	return r.WithContext(helpers.TestCtx())
}

func TestWriteSuccess_Envelope(t *testing.T) {
	h := New(slog.New(logger.NewTestHandler()))
	rec := httptest.NewRecorder()

	h.WriteSuccess(rec, testRequest(), http.StatusCreated, "Customer created successfully", map[string]string{"id": "c1"})

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	var env SuccessEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !env.Success {
		t.Error("success should be true")
	}
	if env.Message != "Customer created successfully" {
		t.Errorf("message = %q", env.Message)
	}
	if env.Data == nil {
		t.Error("data should be present")
	}
}

func TestWriteList_Pagination(t *testing.T) {
	h := New(slog.New(logger.NewTestHandler()))
	rec := httptest.NewRecorder()

	h.WriteList(rec, testRequest(), []string{"a", "b"}, 2, Page{Total: 12, Pages: 6, Current: 3})

	var env ListEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Count != 2 || env.Total != 12 || env.Pages != 6 || env.CurrentPage != 3 {
		t.Errorf("pagination = %+v", env)
	}
}

func TestHandleError_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", errs.NewNotFoundError("Customer not found"), http.StatusNotFound, "not_found"},
		{"duplicate", errs.NewAlreadyExistsError("Phone number already exists"), http.StatusBadRequest, "already_exists"},
		{"validation", errs.NewValidationError("Amount must be greater than zero"), http.StatusBadRequest, "invalid_input"},
		{"business rule", errs.NewBusinessRuleError("Insufficient account balance"), http.StatusBadRequest, "business_rule"},
		{"unauthorized", errs.NewUnauthorizedError("Invalid credentials"), http.StatusUnauthorized, "unauthorized"},
		{"forbidden", errs.NewForbiddenError("Account does not belong to this customer"), http.StatusForbidden, "forbidden"},
		{"database", errs.NewDatabaseError("get customer", "rpc unavailable"), http.StatusInternalServerError, "internal_error"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	h := New(slog.New(logger.NewTestHandler()))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.HandleError(rec, testRequest(), tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			var env ErrorEnvelope
			if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if env.Success {
				t.Error("success should be false")
			}
			if env.Error != tt.wantCode {
				t.Errorf("code = %q, want %q", env.Error, tt.wantCode)
			}
		})
	}
}

func TestHandleError_InternalDetailNotLeaked(t *testing.T) {
	h := New(slog.New(logger.NewTestHandler()))
	rec := httptest.NewRecorder()

	h.HandleError(rec, testRequest(), errs.NewDatabaseError("update account", "firestore: deadline exceeded"))

	var env ErrorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Message != "Server Error" {
		t.Errorf("message = %q, storage detail must not reach the client", env.Message)
	}
}
