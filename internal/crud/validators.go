package crud

import (
	"context"
	"strings"

	"ventas/internal/domain"
	apperrors "ventas/internal/errors"
)

type CompanyFinder interface {
	FindByID(ctx context.Context, id int64) (*domain.Company, error)
}

func ValidateCompany(_ context.Context, c *domain.Company) error {
	if strings.TrimSpace(c.Name) == "" {
		return requiredName("Company")
	}
	return nil
}

// ValidateEmployee enforces the employee rules: a name, a positive salary
// and an existing company.
func ValidateEmployee(companies CompanyFinder) ValidatorFunc[domain.Employee] {
	return func(ctx context.Context, e *domain.Employee) error {
		if strings.TrimSpace(e.Name) == "" {
			return requiredName("Employee")
		}

		if !e.Salary.IsPositive() {
			return apperrors.NewBusinessRuleError("Salary must be greater than 0.")
		}

		return companyExists(ctx, companies, e.CompanyID)
	}
}

func ValidateArticle(companies CompanyFinder) ValidatorFunc[domain.Article] {
	return func(ctx context.Context, a *domain.Article) error {
		if strings.TrimSpace(a.Name) == "" {
			return requiredName("Article")
		}

		if a.Value.IsNegative() {
			return apperrors.NewBusinessRuleError("Article value must not be negative.")
		}

		return companyExists(ctx, companies, a.CompanyID)
	}
}

func requiredName(entity string) error {
	return apperrors.NewValidationError(entity+" name is required.", apperrors.ValidationDetail{
		Field:   "name",
		Message: "name must not be empty",
	})
}

func companyExists(ctx context.Context, companies CompanyFinder, companyID int64) error {
	_, err := companies.FindByID(ctx, companyID)
	if _, ok := apperrors.IsNotFoundError(err); ok {
		return apperrors.NewValidationError("Invalid CompanyId, the company does not exist.", apperrors.ValidationDetail{
			Field:   "companyId",
			Message: "company does not exist",
		})
	}
	return err
}
