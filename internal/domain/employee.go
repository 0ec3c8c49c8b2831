package domain

import "github.com/shopspring/decimal"

type Employee struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Position  *string         `json:"position"`
	Salary    decimal.Decimal `json:"salary"`
	CompanyID int64           `json:"companyId"`
}
