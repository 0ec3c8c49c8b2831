// Package diagnostic serves the operational endpoints that sit outside the
// bearer-token scheme.
package diagnostic

import (
	"context"
	"net/http"
	"time"

	"ventas/internal/httpx"

	"go.uber.org/zap"
)

const TestMessage = "Test Controller"

type Pinger interface {
	PingContext(ctx context.Context) error
}

type Controller struct {
	db     Pinger
	logger *zap.Logger
}

func NewController(db Pinger, logger *zap.Logger) *Controller {
	return &Controller{db: db, logger: logger}
}

// HandleTestMessage answers with a fixed string. Access control is applied
// by the router.
func (c *Controller) HandleTestMessage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(TestMessage))
}

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

func (c *Controller) HandleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := c.db.PingContext(ctx); err != nil {
		c.logger.Warn("health check failed", zap.Error(err))
		httpx.WriteJSON(w, c.logger, http.StatusServiceUnavailable, healthResponse{Status: "degraded", Database: "unreachable"})
		return
	}

	httpx.WriteJSON(w, c.logger, http.StatusOK, healthResponse{Status: "ok", Database: "up"})
}
