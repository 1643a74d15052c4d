package handler

import (
	"encoding/json"
	"math"
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/taskbuddy/api/transport"
	"github.com/fastygo/taskbuddy/domain"
	"github.com/fastygo/taskbuddy/internal/identity"
	"github.com/fastygo/taskbuddy/internal/middleware"
	"github.com/fastygo/taskbuddy/pkg/httpcontext"
	authUC "github.com/fastygo/taskbuddy/usecase/auth"
)

type AuthHandler struct {
	baseHandler
	uc *authUC.UseCase
}

func NewAuthHandler(uc *authUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Exchange a provider ID token for a session
// @Tags auth
// @Router /api/v1/auth/sign-in [post]
func (h *AuthHandler) SignIn(ctx *fasthttp.RequestCtx) {
	var req transport.SignInRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.IDToken == "" {
		h.respondInvalid(ctx, "id_token is required")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	session, err := h.uc.SignIn(stdCtx, identity.Credential{
		IDToken: req.IDToken,
		Origin:  httpcontext.Origin(ctx),
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, session)
}

// @Summary End the current session
// @Tags auth
// @Router /api/v1/auth/sign-out [post]
func (h *AuthHandler) SignOut(ctx *fasthttp.RequestCtx) {
	session := middleware.SessionFrom(ctx)
	if session == nil {
		h.respondJSON(ctx, http.StatusUnauthorized, transport.NewError(string(domain.ErrCodeUnauthorized), "missing session", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.SignOut(stdCtx, session); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, nil)
}

// @Summary Extend the current session
// @Tags auth
// @Router /api/v1/auth/refresh [post]
func (h *AuthHandler) Refresh(ctx *fasthttp.RequestCtx) {
	session := middleware.SessionFrom(ctx)
	if session == nil {
		h.respondJSON(ctx, http.StatusUnauthorized, transport.NewError(string(domain.ErrCodeUnauthorized), "missing session", nil))
		return
	}

	var req transport.RefreshRequest
	if body := ctx.PostBody(); len(body) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			h.respondInvalid(ctx, "invalid payload")
			return
		}
	}

	if req.TTL < 0 {
		h.respondInvalid(ctx, "ttl_seconds must not be negative")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	refreshed, err := h.uc.RefreshSession(stdCtx, session.ID, refreshTTL(req.TTL))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, refreshed)
}

// @Summary Current user
// @Tags auth
// @Router /api/v1/session [get]
func (h *AuthHandler) Current(ctx *fasthttp.RequestCtx) {
	session := middleware.SessionFrom(ctx)
	if session == nil {
		h.respondJSON(ctx, http.StatusUnauthorized, transport.NewError(string(domain.ErrCodeUnauthorized), "missing session", nil))
		return
	}
	h.respondSuccess(ctx, http.StatusOK, session)
}

// refreshTTL converts seconds to a duration, saturating instead of overflowing.
// The use case caps the result at the session TTL.
func refreshTTL(seconds int64) time.Duration {
	if seconds > int64(math.MaxInt64/time.Second) {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(seconds) * time.Second
}
