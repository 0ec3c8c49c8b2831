package auth

import (
	"net/http"

	"ventas/internal/dto"
	apperrors "ventas/internal/errors"
	"ventas/internal/httpx"

	"go.uber.org/zap"
)

type Controller struct {
	auth   Authenticator
	logger *zap.Logger
}

func NewController(auth Authenticator, logger *zap.Logger) *Controller {
	return &Controller{
		auth:   auth,
		logger: logger,
	}
}

func (c *Controller) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, c.logger, err)
		return
	}

	if err := validateLoginRequest(req); err != nil {
		httpx.WriteError(w, r, c.logger, err)
		return
	}

	token, err := c.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		httpx.WriteError(w, r, c.logger, err)
		return
	}

	httpx.WriteJSON(w, c.logger, http.StatusOK, dto.LoginResponse{Token: token})
}

func validateLoginRequest(req dto.LoginRequest) error {
	var details []apperrors.ValidationDetail

	if req.Username == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "username",
			Message: "username is required",
		})
	}

	if req.Password == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "password",
			Message: "password is required",
		})
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}

	return nil
}
