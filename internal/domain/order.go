package domain

import "github.com/shopspring/decimal"

type Order struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Status       string          `json:"status"`
	TotalValue   decimal.Decimal `json:"totalValue"`
	EmployeeID   int64           `json:"employeeId"`
	OrderDetails []OrderDetail   `json:"orderDetails,omitempty"`
}

// OrderDetail is a line item: one article of one order.
type OrderDetail struct {
	ID        int64 `json:"id"`
	OrderID   int64 `json:"orderId"`
	ArticleID int64 `json:"articleId"`
}

// Status labels are free text in storage; these are the ones the order
// workflow writes.
const (
	OrderStatusPending   = "Pending"
	OrderStatusCompleted = "Completed"
)

func (o Order) IsCompleted() bool {
	return o.Status == OrderStatusCompleted
}
