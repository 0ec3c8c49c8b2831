package auth

import (
	"context"
	"errors"
	"sync"

	apperrors "ventas/internal/errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const invalidCredentials = "invalid username or password"

// dummyHash is compared against when the user does not exist so that an
// unknown username costs the same as a wrong password.
var dummyHash = sync.OnceValue(func() []byte {
	h, err := bcrypt.GenerateFromPassword([]byte("ventas-dummy-password"), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return h
})

type authService struct {
	users  UserRepository
	tokens TokenIssuer
	logger *zap.Logger
}

func NewService(users UserRepository, tokens TokenIssuer, logger *zap.Logger) Authenticator {
	return &authService{users: users, tokens: tokens, logger: logger}
}

func (s *authService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(password))
			s.logger.Info("login rejected", zap.String("reason", "unknown user"))
			return "", apperrors.NewUnauthorizedError(invalidCredentials)
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			s.logger.Error("stored password hash is unusable", zap.Int64("userId", user.ID), zap.Error(err))
		}
		s.logger.Info("login rejected", zap.String("reason", "wrong password"), zap.Int64("userId", user.ID))
		return "", apperrors.NewUnauthorizedError(invalidCredentials)
	}

	token, err := s.tokens.Issue(user.Username)
	if err != nil {
		return "", apperrors.NewInternalError("failed to issue token", err)
	}

	s.logger.Info("login succeeded", zap.Int64("userId", user.ID))
	return token, nil
}

// HashPassword hashes a plaintext password for storage.
func HashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}
