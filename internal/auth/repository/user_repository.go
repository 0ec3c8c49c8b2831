package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"ventas/internal/domain"
	apperrors "ventas/internal/errors"
	"ventas/internal/infrastructure/mysql"
)

type MySQLUserRepository struct {
	db mysql.Querier
}

func NewMySQLUserRepository(db mysql.Querier) *MySQLUserRepository {
	return &MySQLUserRepository{db: db}
}

// FindByUsername matches the username exactly; the lookup is not case
// folded.
func (r *MySQLUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := "SELECT `id`, `username`, `passwordHash`, `createdAt` FROM `Users` WHERE BINARY `username` = ?"

	var u domain.User
	err := mysql.QuerierFromContext(ctx, r.db).QueryRowContext(ctx, query, username).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("user %q not found", username))
	}
	if err != nil {
		return nil, fmt.Errorf("querying user: %w", err)
	}

	return &u, nil
}

func (r *MySQLUserRepository) Create(ctx context.Context, user *domain.User) error {
	query := "INSERT INTO `Users` (`username`, `passwordHash`) VALUES (?, ?)"

	result, err := mysql.QuerierFromContext(ctx, r.db).ExecContext(ctx, query, user.Username, user.PasswordHash)
	if err != nil {
		return fmt.Errorf("inserting user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting last insert id: %w", err)
	}

	user.ID = id
	return nil
}
