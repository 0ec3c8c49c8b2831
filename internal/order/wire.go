package order

import (
	"database/sql"

	"ventas/internal/config"
	"ventas/internal/infrastructure/mysql"
	"ventas/internal/order/controller"
	orderrepo "ventas/internal/order/repository"
	"ventas/internal/order/service"
	"ventas/internal/order/usecase"
	"ventas/internal/store"

	"go.uber.org/zap"
)

func NewModule(db *sql.DB, cfg *config.Config, logger *zap.Logger) *controller.OrderController {
	orderRepo := orderrepo.NewMySQLOrderRepository(db)
	orderDetailRepo := orderrepo.NewMySQLOrderDetailRepository(db)
	invoiceRepo := orderrepo.NewMySQLInvoiceRepository(db)
	employeeRepo := store.NewMySQLRepository(db, store.Employees)
	articleRepo := store.NewMySQLRepository(db, store.Articles)

	orderSvc := service.NewOrderService(
		mysql.NewTransactionManager(db, cfg.Database.TxTimeout),
		orderRepo,
		orderDetailRepo,
		invoiceRepo,
		service.SystemClock{},
		logger,
	)

	createUseCase := usecase.NewCreateOrderUseCase(employeeRepo, articleRepo, orderSvc, logger)
	completeUseCase := usecase.NewCompleteOrderUseCase(
		orderRepo,
		invoiceRepo,
		orderSvc,
		cfg.Order.AtomicCompletion,
		logger,
	)

	return controller.NewOrderController(createUseCase, completeUseCase, orderDetailRepo, logger)
}
