package dto

import "github.com/shopspring/decimal"

// CreateOrderRequest is the body of POST /orders. Both members are pointers
// or slices so that an absent member can be told apart from an empty one.
type CreateOrderRequest struct {
	Order        *OrderInput        `json:"order"`
	OrderDetails []OrderDetailInput `json:"orderDetails"`
}

type OrderInput struct {
	Name       string          `json:"name"`
	Status     string          `json:"status"`
	TotalValue decimal.Decimal `json:"totalValue"`
	EmployeeID int64           `json:"employeeId"`
}

type OrderDetailInput struct {
	ArticleID int64 `json:"articleId"`
}
