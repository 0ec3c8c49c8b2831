package repository

import (
	"context"
	"fmt"

	"ventas/internal/domain"
	"ventas/internal/errors"
	"ventas/internal/infrastructure/mysql"
	"ventas/internal/store"
)

type MySQLOrderRepository struct {
	*store.MySQLRepository[domain.Order]
	db mysql.Querier
}

func NewMySQLOrderRepository(db mysql.Querier) *MySQLOrderRepository {
	return &MySQLOrderRepository{
		MySQLRepository: store.NewMySQLRepository(db, store.Orders),
		db:              db,
	}
}

func (r *MySQLOrderRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	query := "UPDATE `Orders` SET `status` = ? WHERE `id` = ?"

	result, err := mysql.QuerierFromContext(ctx, r.db).ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("updating order status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}

	return nil
}
