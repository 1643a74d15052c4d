package handler

import (
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/taskbuddy/api/transport"
	"github.com/fastygo/taskbuddy/internal/infrastructure/monitor"
	"github.com/fastygo/taskbuddy/pkg/httpcontext"
)

// StatusSource reports the latest dependency status.
type StatusSource interface {
	GetStatus() monitor.Status
}

type HealthHandler struct {
	baseHandler
	monitor StatusSource
}

func NewHealthHandler(mon StatusSource, adapter *httpcontext.Adapter, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		monitor:     mon,
	}
}

// @Summary Health check
// @Tags health
// @Router /health [get]
func (h *HealthHandler) Check(ctx *fasthttp.RequestCtx) {
	status := h.monitor.GetStatus()
	payload := map[string]interface{}{
		"timestamp": time.Now().UTC(),
		"services": map[string]interface{}{
			"tasks": map[string]interface{}{
				"online": status.TaskStore,
				"count":  status.Tasks,
			},
			"sessions": map[string]interface{}{
				"store": status.SessionStore,
				"redis": status.Redis,
			},
		},
		"last_check": status.LastCheck,
	}

	if status.Healthy() {
		h.respondSuccess(ctx, http.StatusOK, payload)
		return
	}
	h.respondJSON(ctx, http.StatusServiceUnavailable,
		transport.NewError("DEGRADED", "dependencies unhealthy", &transport.Meta{Details: payload}))
}
