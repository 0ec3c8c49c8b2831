package seed

import (
	"database/sql"
	"time"

	"ventas/internal/auth"
	authrepo "ventas/internal/auth/repository"
	"ventas/internal/infrastructure/mysql"
	"ventas/internal/store"

	"go.uber.org/zap"
)

func NewModule(db *sql.DB, txTimeout time.Duration, logger *zap.Logger) *Seeder {
	return NewSeeder(
		mysql.NewTransactionManager(db, txTimeout),
		authrepo.NewMySQLUserRepository(db),
		store.NewMySQLRepository(db, store.Companies),
		store.NewMySQLRepository(db, store.Employees),
		store.NewMySQLRepository(db, store.Articles),
		auth.HashPassword,
		logger,
	)
}
