package repository

import (
	"context"

	"ventas/internal/domain"
	"ventas/internal/infrastructure/mysql"
	"ventas/internal/store"
)

type MySQLOrderDetailRepository struct {
	*store.MySQLRepository[domain.OrderDetail]
}

func NewMySQLOrderDetailRepository(db mysql.Querier) *MySQLOrderDetailRepository {
	return &MySQLOrderDetailRepository{
		MySQLRepository: store.NewMySQLRepository(db, store.OrderDetails),
	}
}

func (r *MySQLOrderDetailRepository) FindByOrderID(ctx context.Context, orderID int64) ([]domain.OrderDetail, error) {
	return r.FindBy(ctx, "orderId", orderID)
}
