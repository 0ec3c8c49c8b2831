package httpx

import (
	"encoding/json"
	"net/http"
	"strconv"

	apperrors "ventas/internal/errors"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const (
	CodeValidation      = "VALIDATION_ERROR"
	CodeBusinessRule    = "BUSINESS_RULE"
	CodeNotFound        = "NOT_FOUND"
	CodeConflict        = "CONFLICT"
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeInternal        = "INTERNAL_ERROR"
)

type ErrorResponse struct {
	TraceID string                       `json:"traceId"`
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details,omitempty"`
}

func WriteJSON(w http.ResponseWriter, logger *zap.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode response", zap.Error(err))
	}
}

func WriteErrorResponse(w http.ResponseWriter, r *http.Request, logger *zap.Logger, status int, code, message string, details ...apperrors.ValidationDetail) {
	WriteJSON(w, logger, status, ErrorResponse{
		TraceID: TraceID(r.Context()),
		Error:   code,
		Message: message,
		Details: details,
	})
}

// WriteError maps an application error onto a status code and envelope.
// Anything not recognised is logged and reported as a generic 500.
func WriteError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		WriteErrorResponse(w, r, logger, http.StatusBadRequest, CodeValidation, ve.Message, ve.Details...)
		return
	}

	if be, ok := apperrors.IsBusinessRuleError(err); ok {
		WriteErrorResponse(w, r, logger, http.StatusBadRequest, CodeBusinessRule, be.Message)
		return
	}

	if nfe, ok := apperrors.IsNotFoundError(err); ok {
		WriteErrorResponse(w, r, logger, http.StatusNotFound, CodeNotFound, nfe.Message)
		return
	}

	if ce, ok := apperrors.IsConflictError(err); ok {
		WriteErrorResponse(w, r, logger, http.StatusConflict, CodeConflict, ce.Message)
		return
	}

	if ue, ok := apperrors.IsUnauthorizedError(err); ok {
		WriteErrorResponse(w, r, logger, http.StatusUnauthorized, CodeUnauthenticated, ue.Message)
		return
	}

	logger.Error("unexpected error",
		zap.String("traceId", TraceID(r.Context())),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	WriteErrorResponse(w, r, logger, http.StatusInternalServerError, CodeInternal, "an unexpected error occurred")
}

func DecodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperrors.NewValidationError("invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
	}
	return nil
}

// IDParam parses the named path parameter as a positive integer id.
func IDParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid "+name, apperrors.ValidationDetail{
			Field:   name,
			Message: name + " must be a positive integer",
		})
	}
	return id, nil
}
