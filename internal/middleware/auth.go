package middleware

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/taskbuddy/api/transport"
	"github.com/fastygo/taskbuddy/domain"
)

const sessionKey = "session"

// HeaderSessionID is an alternative to a bearer token for clients that cannot set Authorization.
const HeaderSessionID = "X-Session-ID"

// SessionResolver looks up a live session by id.
type SessionResolver interface {
	GetSession(ctx context.Context, sessionID string) (*domain.Session, error)
}

// SessionAuth rejects requests without a live session and stores the session
// on the request for handlers to read with SessionFrom.
func SessionAuth(resolver SessionResolver, timeout time.Duration, logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			sessionID := extractToken(ctx)
			if sessionID == "" {
				unauthorized(ctx, "missing session")
				return
			}

			lookupCtx, cancel := context.WithTimeout(context.Background(), timeout)
			session, err := resolver.GetSession(lookupCtx, sessionID)
			cancel()
			if err != nil {
				if !domain.IsDomainError(err, domain.ErrCodeNotFound) {
					logger.Warn("session lookup failed", zap.Error(err))
				}
				unauthorized(ctx, "invalid session")
				return
			}

			ctx.SetUserValue(sessionKey, session)
			next(ctx)
		}
	}
}

// SessionFrom returns the session attached by SessionAuth, or nil.
func SessionFrom(ctx *fasthttp.RequestCtx) *domain.Session {
	session, _ := ctx.UserValue(sessionKey).(*domain.Session)
	return session
}

func extractToken(ctx *fasthttp.RequestCtx) string {
	header := strings.TrimSpace(string(ctx.Request.Header.Peek("Authorization")))
	if header != "" {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return strings.TrimSpace(string(ctx.Request.Header.Peek(HeaderSessionID)))
}

func unauthorized(ctx *fasthttp.RequestCtx, message string) {
	body, _ := json.Marshal(transport.NewError(string(domain.ErrCodeUnauthorized), message, nil))
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(fasthttp.StatusUnauthorized)
	ctx.SetBody(body)
}
