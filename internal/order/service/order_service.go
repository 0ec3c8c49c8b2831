package service

import (
	"context"
	"time"

	"ventas/internal/domain"
	apperrors "ventas/internal/errors"
	"ventas/internal/infrastructure/mysql"

	"go.uber.org/zap"
)

type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	UpdateStatus(ctx context.Context, id int64, status string) error
}

type OrderDetailRepository interface {
	Create(ctx context.Context, detail *domain.OrderDetail) error
}

type InvoiceRepository interface {
	Create(ctx context.Context, invoice *domain.Invoice) error
}

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// OrderService performs the writes of the order workflow. Callers are
// expected to have validated the input already.
type OrderService struct {
	txManager       TransactionManager
	orderRepo       OrderRepository
	orderDetailRepo OrderDetailRepository
	invoiceRepo     InvoiceRepository
	clock           Clock
	logger          *zap.Logger
}

func NewOrderService(
	txManager TransactionManager,
	orderRepo OrderRepository,
	orderDetailRepo OrderDetailRepository,
	invoiceRepo InvoiceRepository,
	clock Clock,
	logger *zap.Logger,
) *OrderService {
	if clock == nil {
		clock = SystemClock{}
	}
	return &OrderService{
		txManager:       txManager,
		orderRepo:       orderRepo,
		orderDetailRepo: orderDetailRepo,
		invoiceRepo:     invoiceRepo,
		clock:           clock,
		logger:          logger,
	}
}

// PlaceOrder writes the order and all of its line items in one transaction.
// Nothing is persisted unless every insert succeeds.
func (s *OrderService) PlaceOrder(ctx context.Context, order domain.Order, details []domain.OrderDetail) (*domain.Order, error) {
	persisted := make([]domain.OrderDetail, len(details))

	err := s.txManager.WithinTx(ctx, func(txCtx context.Context) error {
		if err := s.orderRepo.Create(txCtx, &order); err != nil {
			return err
		}

		for i, d := range details {
			detail := domain.OrderDetail{OrderID: order.ID, ArticleID: d.ArticleID}
			if err := s.orderDetailRepo.Create(txCtx, &detail); err != nil {
				return err
			}
			persisted[i] = detail
		}

		return nil
	})
	if err != nil {
		s.logger.Error("order transaction rolled back", zap.Int64("employeeId", order.EmployeeID), zap.Error(err))
		return nil, apperrors.NewInternalError("failed to create order", err)
	}

	order.OrderDetails = persisted
	s.logger.Info("order transaction committed", zap.Int64("orderId", order.ID), zap.Int("detailCount", len(persisted)))

	return &order, nil
}

// CompleteOrder marks the order Completed and then issues its invoice as two
// independent writes. If the second write fails the order stays Completed
// without an invoice; CompleteOrderAtomic closes that gap.
func (s *OrderService) CompleteOrder(ctx context.Context, orderID int64) (*domain.Invoice, error) {
	if err := s.orderRepo.UpdateStatus(ctx, orderID, domain.OrderStatusCompleted); err != nil {
		return nil, err
	}

	invoice, err := s.issueInvoice(ctx, orderID)
	if err != nil {
		s.logger.Warn("order completed without invoice", zap.Int64("orderId", orderID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("order completed", zap.Int64("orderId", orderID), zap.Int64("invoiceId", invoice.ID))
	return invoice, nil
}

// CompleteOrderAtomic performs the same writes as CompleteOrder inside a
// single transaction.
func (s *OrderService) CompleteOrderAtomic(ctx context.Context, orderID int64) (*domain.Invoice, error) {
	var invoice *domain.Invoice

	err := s.txManager.WithinTx(ctx, func(txCtx context.Context) error {
		if err := s.orderRepo.UpdateStatus(txCtx, orderID, domain.OrderStatusCompleted); err != nil {
			return err
		}

		var err error
		invoice, err = s.issueInvoice(txCtx, orderID)
		return err
	})
	if err != nil {
		s.logger.Warn("order completion rolled back", zap.Int64("orderId", orderID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("order completed", zap.Int64("orderId", orderID), zap.Int64("invoiceId", invoice.ID), zap.Bool("atomic", true))
	return invoice, nil
}

func (s *OrderService) issueInvoice(ctx context.Context, orderID int64) (*domain.Invoice, error) {
	invoice := domain.NewPendingInvoice(orderID, s.clock.Now())

	if err := s.invoiceRepo.Create(ctx, &invoice); err != nil {
		if isDuplicateInvoice(err) {
			return nil, apperrors.NewConflictError("Order already has an invoice.")
		}
		return nil, err
	}

	return &invoice, nil
}

// isDuplicateInvoice covers both the raw driver error and the conflict the
// store reports for it.
func isDuplicateInvoice(err error) bool {
	if _, ok := apperrors.IsConflictError(err); ok {
		return true
	}
	return mysql.IsDuplicateEntry(err)
}
