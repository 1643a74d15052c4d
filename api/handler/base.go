package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/taskbuddy/api/transport"
	"github.com/fastygo/taskbuddy/domain"
	"github.com/fastygo/taskbuddy/internal/notify"
	"github.com/fastygo/taskbuddy/pkg/httpcontext"
	appLogger "github.com/fastygo/taskbuddy/pkg/logger"
)

const collectorKey = "notifications"

type baseHandler struct {
	adapter *httpcontext.Adapter
	logger  *zap.Logger
}

func newBaseHandler(adapter *httpcontext.Adapter, logger *zap.Logger) baseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return baseHandler{adapter: adapter, logger: logger}
}

// requestContext derives the use case context and attaches a notification
// collector whose contents end up in the response meta.
func (h baseHandler) requestContext(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	var (
		stdCtx context.Context
		cancel context.CancelFunc
	)
	if h.adapter != nil {
		stdCtx, cancel = h.adapter.Attach(ctx)
	} else {
		stdCtx, cancel = context.WithCancel(context.Background())
	}
	stdCtx, collector := notify.WithCollector(stdCtx)
	ctx.SetUserValue(collectorKey, collector)
	return stdCtx, cancel
}

func (h baseHandler) log(stdCtx context.Context) *zap.Logger {
	return appLogger.WithRequestID(stdCtx, h.logger)
}

func (h baseHandler) respondJSON(ctx *fasthttp.RequestCtx, status int, payload transport.Envelope) {
	if payload.Meta == nil {
		if collector, ok := ctx.UserValue(collectorKey).(*notify.Collector); ok {
			payload.Meta = transport.WithNotifications(collector.Drain())
		}
	}
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	body, _ := json.Marshal(payload)
	ctx.SetBody(body)
}

func (h baseHandler) respondSuccess(ctx *fasthttp.RequestCtx, status int, data interface{}) {
	h.respondJSON(ctx, status, transport.NewSuccess(data, nil))
}

func (h baseHandler) respondInvalid(ctx *fasthttp.RequestCtx, message string) {
	h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), message, nil))
}

func (h baseHandler) respondError(ctx *fasthttp.RequestCtx, err error) {
	status, code := mapError(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", zap.Error(err))
	}
	h.respondJSON(ctx, status, transport.NewError(code, err.Error(), nil))
}

func mapError(err error) (int, string) {
	switch {
	case domain.IsDomainError(err, domain.ErrCodeUnauthorized):
		return http.StatusUnauthorized, string(domain.ErrCodeUnauthorized)
	case domain.IsDomainError(err, domain.ErrCodeInvalid):
		return http.StatusBadRequest, string(domain.ErrCodeInvalid)
	case domain.IsDomainError(err, domain.ErrCodeNotFound):
		return http.StatusNotFound, string(domain.ErrCodeNotFound)
	default:
		return http.StatusInternalServerError, string(domain.ErrCodeInternal)
	}
}
