// Package crud serves the pass-through entity endpoints. One generic Handler
// covers every entity; per-entity rules plug in as a ValidatorFunc.
package crud

import (
	"context"
	"fmt"
	"net/http"

	"ventas/internal/httpx"
	"ventas/internal/store"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ValidatorFunc checks an entity before it is created or updated.
type ValidatorFunc[T any] func(ctx context.Context, entity *T) error

type Handler[T any] struct {
	repo     store.Repository[T]
	table    store.Table[T]
	basePath string
	validate ValidatorFunc[T]
	logger   *zap.Logger
}

func NewHandler[T any](repo store.Repository[T], table store.Table[T], basePath string, validate ValidatorFunc[T], logger *zap.Logger) *Handler[T] {
	return &Handler[T]{
		repo:     repo,
		table:    table,
		basePath: basePath,
		validate: validate,
		logger:   logger.With(zap.String("entity", table.Entity)),
	}
}

// Mount registers the five CRUD routes on r, which is expected to be rooted
// at the handler's base path.
func (h *Handler[T]) Mount(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Post("/", h.Create)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

func (h *Handler[T]) List(w http.ResponseWriter, r *http.Request) {
	entities, err := h.repo.List(r.Context())
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, h.logger, http.StatusOK, entities)
}

func (h *Handler[T]) Get(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}

	entity, err := h.repo.FindByID(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, h.logger, http.StatusOK, entity)
}

func (h *Handler[T]) Create(w http.ResponseWriter, r *http.Request) {
	var entity T
	if err := httpx.DecodeJSON(r, &entity); err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	h.table.SetID(&entity, 0)

	if err := h.check(r.Context(), &entity); err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}

	if err := h.repo.Create(r.Context(), &entity); err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}

	id := h.table.ID(&entity)
	h.logger.Info("entity created", zap.Int64("id", id), zap.String("traceId", httpx.TraceID(r.Context())))

	w.Header().Set("Location", fmt.Sprintf("%s/%d", h.basePath, id))
	httpx.WriteJSON(w, h.logger, http.StatusCreated, entity)
}

func (h *Handler[T]) Update(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}

	var entity T
	if err := httpx.DecodeJSON(r, &entity); err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	h.table.SetID(&entity, id)

	if err := h.check(r.Context(), &entity); err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}

	if err := h.repo.Update(r.Context(), &entity); err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler[T]) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}

	h.logger.Info("entity deleted", zap.Int64("id", id), zap.String("traceId", httpx.TraceID(r.Context())))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler[T]) check(ctx context.Context, entity *T) error {
	if h.validate == nil {
		return nil
	}
	return h.validate(ctx, entity)
}
