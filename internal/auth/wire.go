package auth

import (
	"database/sql"

	"ventas/internal/auth/repository"
	"ventas/internal/config"

	"go.uber.org/zap"
)

type Module struct {
	Controller *Controller
	Middleware *Middleware
}

func NewModule(db *sql.DB, cfg config.AuthConfig, logger *zap.Logger) *Module {
	users := repository.NewMySQLUserRepository(db)
	tokens := NewJWTIssuer(cfg)
	svc := NewService(users, tokens, logger)

	return &Module{
		Controller: NewController(svc, logger),
		Middleware: NewMiddleware(tokens, logger),
	}
}
