package repository

import (
	"context"

	"ventas/internal/domain"
	"ventas/internal/infrastructure/mysql"
	"ventas/internal/store"
)

type MySQLInvoiceRepository struct {
	*store.MySQLRepository[domain.Invoice]
}

func NewMySQLInvoiceRepository(db mysql.Querier) *MySQLInvoiceRepository {
	return &MySQLInvoiceRepository{
		MySQLRepository: store.NewMySQLRepository(db, store.Invoices),
	}
}

// FindByOrderID returns the invoice of an order, or nil when the order has
// not been invoiced.
func (r *MySQLInvoiceRepository) FindByOrderID(ctx context.Context, orderID int64) (*domain.Invoice, error) {
	invoices, err := r.FindBy(ctx, "orderId", orderID)
	if err != nil {
		return nil, err
	}
	if len(invoices) == 0 {
		return nil, nil
	}
	return &invoices[0], nil
}
