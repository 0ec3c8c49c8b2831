package controller

import (
	"context"
	"net/http"
	"strconv"

	"ventas/internal/domain"
	"ventas/internal/dto"
	"ventas/internal/httpx"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CreateOrderUseCase interface {
	CreateOrder(ctx context.Context, req dto.CreateOrderRequest) (*domain.Order, error)
}

type CompleteOrderUseCase interface {
	CompleteOrder(ctx context.Context, orderID int64) (*domain.Invoice, error)
}

type OrderDetailFinder interface {
	FindByOrderID(ctx context.Context, orderID int64) ([]domain.OrderDetail, error)
}

type OrderController struct {
	createUseCase   CreateOrderUseCase
	completeUseCase CompleteOrderUseCase
	details         OrderDetailFinder
	logger          *zap.Logger
}

func NewOrderController(
	createUseCase CreateOrderUseCase,
	completeUseCase CompleteOrderUseCase,
	details OrderDetailFinder,
	logger *zap.Logger,
) *OrderController {
	return &OrderController{
		createUseCase:   createUseCase,
		completeUseCase: completeUseCase,
		details:         details,
		logger:          logger,
	}
}

// Mount registers the workflow routes. It is expected to be mounted under
// /orders next to the plain CRUD routes.
func (c *OrderController) Mount(r chi.Router) {
	r.Post("/", c.Create)
	r.Put("/{id}/complete", c.Complete)
	r.Get("/{id}/details", c.Details)
}

func (c *OrderController) Create(w http.ResponseWriter, r *http.Request) {
	logger := c.logger.With(zap.String("traceId", httpx.TraceID(r.Context())))

	var req dto.CreateOrderRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		logger.Warn("invalid JSON body")
		httpx.WriteError(w, r, c.logger, err)
		return
	}

	order, err := c.createUseCase.CreateOrder(r.Context(), req)
	if err != nil {
		httpx.WriteError(w, r, c.logger, err)
		return
	}

	logger.Info("order created", zap.Int64("orderId", order.ID))
	w.Header().Set("Location", "/orders/"+strconv.FormatInt(order.ID, 10))
	httpx.WriteJSON(w, c.logger, http.StatusCreated, order)
}

func (c *OrderController) Complete(w http.ResponseWriter, r *http.Request) {
	orderID, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.WriteError(w, r, c.logger, err)
		return
	}

	invoice, err := c.completeUseCase.CompleteOrder(r.Context(), orderID)
	if err != nil {
		httpx.WriteError(w, r, c.logger, err)
		return
	}

	httpx.WriteJSON(w, c.logger, http.StatusOK, invoice)
}

func (c *OrderController) Details(w http.ResponseWriter, r *http.Request) {
	orderID, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.WriteError(w, r, c.logger, err)
		return
	}

	details, err := c.details.FindByOrderID(r.Context(), orderID)
	if err != nil {
		httpx.WriteError(w, r, c.logger, err)
		return
	}

	httpx.WriteJSON(w, c.logger, http.StatusOK, details)
}
