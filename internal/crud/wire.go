package crud

import (
	"database/sql"

	"ventas/internal/domain"
	"ventas/internal/store"

	"go.uber.org/zap"
)

type Handlers struct {
	Companies    *Handler[domain.Company]
	Employees    *Handler[domain.Employee]
	Articles     *Handler[domain.Article]
	Orders       *Handler[domain.Order]
	OrderDetails *Handler[domain.OrderDetail]
	Invoices     *Handler[domain.Invoice]
}

func NewModule(db *sql.DB, logger *zap.Logger) *Handlers {
	companyRepo := store.NewMySQLRepository(db, store.Companies)
	employeeRepo := store.NewMySQLRepository(db, store.Employees)
	articleRepo := store.NewMySQLRepository(db, store.Articles)
	orderRepo := store.NewMySQLRepository(db, store.Orders)
	orderDetailRepo := store.NewMySQLRepository(db, store.OrderDetails)
	invoiceRepo := store.NewMySQLRepository(db, store.Invoices)

	return &Handlers{
		Companies:    NewHandler[domain.Company](companyRepo, store.Companies, "/companies", ValidateCompany, logger),
		Employees:    NewHandler[domain.Employee](employeeRepo, store.Employees, "/employees", ValidateEmployee(companyRepo), logger),
		Articles:     NewHandler[domain.Article](articleRepo, store.Articles, "/articles", ValidateArticle(companyRepo), logger),
		Orders:       NewHandler[domain.Order](orderRepo, store.Orders, "/orders", nil, logger),
		OrderDetails: NewHandler[domain.OrderDetail](orderDetailRepo, store.OrderDetails, "/orderDetails", nil, logger),
		Invoices:     NewHandler[domain.Invoice](invoiceRepo, store.Invoices, "/invoices", nil, logger),
	}
}
