package auth

import (
	"context"

	"ventas/internal/domain"
)

type Authenticator interface {
	Login(ctx context.Context, username, password string) (string, error)
}

type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}

type TokenIssuer interface {
	Issue(subject string) (string, error)
}

// TokenValidator returns the subject of a valid token.
type TokenValidator interface {
	Validate(token string) (string, error)
}
