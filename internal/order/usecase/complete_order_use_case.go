package usecase

import (
	"context"

	"ventas/internal/domain"
	apperrors "ventas/internal/errors"

	"go.uber.org/zap"
)

type OrderRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.Order, error)
}

type InvoiceRepository interface {
	FindByOrderID(ctx context.Context, orderID int64) (*domain.Invoice, error)
}

type OrderCompletionService interface {
	CompleteOrder(ctx context.Context, orderID int64) (*domain.Invoice, error)
	CompleteOrderAtomic(ctx context.Context, orderID int64) (*domain.Invoice, error)
}

type CompleteOrderUseCase struct {
	orderRepo   OrderRepository
	invoiceRepo InvoiceRepository
	orderSvc    OrderCompletionService
	atomic      bool
	logger      *zap.Logger
}

// NewCompleteOrderUseCase builds the completion use case. With atomic set
// the status change and the invoice are written in a single transaction.
func NewCompleteOrderUseCase(
	orderRepo OrderRepository,
	invoiceRepo InvoiceRepository,
	orderSvc OrderCompletionService,
	atomic bool,
	logger *zap.Logger,
) *CompleteOrderUseCase {
	return &CompleteOrderUseCase{
		orderRepo:   orderRepo,
		invoiceRepo: invoiceRepo,
		orderSvc:    orderSvc,
		atomic:      atomic,
		logger:      logger,
	}
}

func (uc *CompleteOrderUseCase) CompleteOrder(ctx context.Context, orderID int64) (*domain.Invoice, error) {
	uc.logger.Info("complete order started", zap.Int64("orderId", orderID), zap.Bool("atomic", uc.atomic))

	if _, err := uc.orderRepo.FindByID(ctx, orderID); err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			return nil, apperrors.NewNotFoundError("Order not found.")
		}
		return nil, err
	}

	existing, err := uc.invoiceRepo.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.NewConflictError("Order already has an invoice.")
	}

	if uc.atomic {
		return uc.orderSvc.CompleteOrderAtomic(ctx, orderID)
	}
	return uc.orderSvc.CompleteOrder(ctx, orderID)
}
