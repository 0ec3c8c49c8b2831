package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "ventas/internal/errors"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestWriteError_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{"validation", apperrors.NewValidationError("Article not found."), http.StatusBadRequest, CodeValidation, "Article not found."},
		{"business rule", apperrors.NewBusinessRuleError("An order must have at least one associated article."), http.StatusBadRequest, CodeBusinessRule, "An order must have at least one associated article."},
		{"not found", fmt.Errorf("wrapped: %w", apperrors.NewNotFoundError("Employee not found.")), http.StatusNotFound, CodeNotFound, "Employee not found."},
		{"conflict", apperrors.NewConflictError("order already invoiced"), http.StatusConflict, CodeConflict, "order already invoiced"},
		{"unauthorized", apperrors.NewUnauthorizedError("invalid credentials"), http.StatusUnauthorized, CodeUnauthenticated, "invalid credentials"},
		{"internal", apperrors.NewInternalError("commit failed", errors.New("deadlock")), http.StatusInternalServerError, CodeInternal, "an unexpected error occurred"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, CodeInternal, "an unexpected error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)

			WriteError(rec, req, zap.NewNop(), tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Error)
			assert.Equal(t, tt.wantMsg, body.Message)
		})
	}
}

func TestWriteError_IncludesValidationDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders", nil)

	WriteError(rec, req, zap.NewNop(), apperrors.NewValidationError("Article not found.", apperrors.ValidationDetail{
		Field:   "orderDetails[0].articleId",
		Message: "article 10 does not exist",
	}))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Details, 1)
	assert.Equal(t, "orderDetails[0].articleId", body.Details[0].Field)
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Acme"}`))
	require.NoError(t, DecodeJSON(req, &dst))
	assert.Equal(t, "Acme", dst.Name)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
	_, ok := apperrors.IsValidationError(DecodeJSON(req, &dst))
	assert.True(t, ok)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	_, ok = apperrors.IsValidationError(DecodeJSON(req, &dst))
	assert.True(t, ok)
}

func TestIDParam(t *testing.T) {
	tests := []struct {
		raw    string
		want   int64
		wantOK bool
	}{
		{"12", 12, true},
		{"0", 0, false},
		{"-3", 0, false},
		{"abc", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			r := chi.NewRouter()
			var got int64
			var gotErr error
			r.Get("/things/{id}", func(w http.ResponseWriter, r *http.Request) {
				got, gotErr = IDParam(r, "id")
			})

			r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/things/"+tt.raw, nil))

			if tt.wantOK {
				require.NoError(t, gotErr)
				assert.Equal(t, tt.want, got)
			} else {
				_, ok := apperrors.IsValidationError(gotErr)
				assert.True(t, ok)
			}
		})
	}
}

func TestTrace_AssignsID(t *testing.T) {
	var seen string
	h := Trace(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = TraceID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(TraceHeader))
}

func TestTrace_KeepsValidIncomingID(t *testing.T) {
	incoming := "7d444840-9dc0-11d1-b245-5ffdce74fad2"
	var seen string
	h := Trace(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = TraceID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(TraceHeader, incoming)
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, incoming, seen)
}

func TestTrace_ReplacesGarbageID(t *testing.T) {
	var seen string
	h := Trace(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = TraceID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(TraceHeader, "<script>")
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.NotEqual(t, "<script>", seen)
	assert.NotEmpty(t, seen)
}

func TestRequestLogger_PassesThrough(t *testing.T) {
	h := RequestLogger(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
}
