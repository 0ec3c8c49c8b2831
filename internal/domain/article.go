package domain

import "github.com/shopspring/decimal"

type Article struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Value     decimal.Decimal `json:"value"`
	CompanyID int64           `json:"companyId"`
}

// BelongsTo reports whether the article is owned by the given company.
func (a Article) BelongsTo(companyID int64) bool {
	return a.CompanyID == companyID
}
