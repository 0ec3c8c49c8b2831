package usecase

import (
	"context"
	"strconv"

	"ventas/internal/domain"
	"ventas/internal/dto"
	apperrors "ventas/internal/errors"

	"go.uber.org/zap"
)

type EmployeeRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.Employee, error)
}

type ArticleRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.Article, error)
}

type OrderPlacementService interface {
	PlaceOrder(ctx context.Context, order domain.Order, details []domain.OrderDetail) (*domain.Order, error)
}

type CreateOrderUseCase struct {
	employeeRepo EmployeeRepository
	articleRepo  ArticleRepository
	orderSvc     OrderPlacementService
	logger       *zap.Logger
}

func NewCreateOrderUseCase(
	employeeRepo EmployeeRepository,
	articleRepo ArticleRepository,
	orderSvc OrderPlacementService,
	logger *zap.Logger,
) *CreateOrderUseCase {
	return &CreateOrderUseCase{
		employeeRepo: employeeRepo,
		articleRepo:  articleRepo,
		orderSvc:     orderSvc,
		logger:       logger,
	}
}

// CreateOrder validates the request fail-fast and, only when every check
// passes, hands the order to the service to be written in one transaction.
func (uc *CreateOrderUseCase) CreateOrder(ctx context.Context, req dto.CreateOrderRequest) (*domain.Order, error) {
	if req.Order == nil || req.OrderDetails == nil {
		return nil, apperrors.NewValidationError("order and orderDetails are required.")
	}

	uc.logger.Info("create order started",
		zap.Int64("employeeId", req.Order.EmployeeID),
		zap.Int("detailCount", len(req.OrderDetails)),
	)

	if len(req.OrderDetails) == 0 {
		return nil, apperrors.NewBusinessRuleError("An order must have at least one associated article.")
	}

	employee, err := uc.employeeRepo.FindByID(ctx, req.Order.EmployeeID)
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			return nil, apperrors.NewNotFoundError("Employee not found.")
		}
		return nil, err
	}

	articles, err := uc.loadArticles(ctx, req.OrderDetails)
	if err != nil {
		return nil, err
	}

	for _, article := range articles {
		if !article.BelongsTo(employee.CompanyID) {
			return nil, apperrors.NewBusinessRuleError("All articles must belong to the same company as the employee.")
		}
	}

	uc.logger.Debug("pre-validation passed",
		zap.Int64("employeeId", employee.ID),
		zap.Int64("companyId", employee.CompanyID),
	)

	status := req.Order.Status
	if status == "" {
		status = domain.OrderStatusPending
	}

	order := domain.Order{
		Name:       req.Order.Name,
		Status:     status,
		TotalValue: req.Order.TotalValue,
		EmployeeID: employee.ID,
	}

	details := make([]domain.OrderDetail, len(req.OrderDetails))
	for i, d := range req.OrderDetails {
		details[i] = domain.OrderDetail{ArticleID: d.ArticleID}
	}

	return uc.orderSvc.PlaceOrder(ctx, order, details)
}

// loadArticles resolves every referenced article before any ownership check
// runs, so a missing article is reported ahead of a foreign one. Repeated
// ids are looked up once.
func (uc *CreateOrderUseCase) loadArticles(ctx context.Context, details []dto.OrderDetailInput) ([]domain.Article, error) {
	seen := make(map[int64]bool, len(details))
	articles := make([]domain.Article, 0, len(details))

	for idx, d := range details {
		if seen[d.ArticleID] {
			continue
		}
		seen[d.ArticleID] = true

		article, err := uc.articleRepo.FindByID(ctx, d.ArticleID)
		if err != nil {
			if _, ok := apperrors.IsNotFoundError(err); ok {
				return nil, apperrors.NewValidationError("Article not found.", apperrors.ValidationDetail{
					Field:   "orderDetails[" + strconv.Itoa(idx) + "].articleId",
					Message: "article " + strconv.FormatInt(d.ArticleID, 10) + " does not exist",
				})
			}
			return nil, err
		}
		articles = append(articles, *article)
	}

	return articles, nil
}
