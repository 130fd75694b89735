package middleware

import (
	"strings"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/todoforge/backend/pkg/token"
)

const (
	// UserIDHeader carries the resolved caller identity to handlers.
	UserIDHeader = "X-User-ID"

	// demoTokenPrefix marks the legacy demo credential. Requests bearing it
	// resolve to DemoUserID without signature checks. The carve-out is a
	// backward-compatibility shim, not a security boundary, and is only
	// honored when explicitly enabled.
	demoTokenPrefix = "fake-jwt-token"

	// DemoUserID is the fixed identity assigned to demo-token callers.
	DemoUserID = "demo-user"
)

// Options configures the auth gate.
type Options struct {
	// AllowDemoTokens turns on the legacy demo-token carve-out.
	AllowDemoTokens bool
}

// BearerAuth resolves a caller identity from the Authorization header before
// any protected handler runs. Real tokens are verified for signature and
// expiry; the subject claim becomes the ownership key.
func BearerAuth(tokens *token.Manager, opts Options, logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			tokenString := ExtractBearer(ctx)
			if tokenString == "" {
				ctx.SetStatusCode(fasthttp.StatusUnauthorized)
				return
			}

			if opts.AllowDemoTokens && strings.HasPrefix(tokenString, demoTokenPrefix) {
				logger.Debug("demo token accepted")
				ctx.Request.Header.Set(UserIDHeader, DemoUserID)
				next(ctx)
				return
			}

			claims, err := tokens.Verify(tokenString)
			if err != nil {
				logger.Warn("invalid bearer token", zap.Error(err))
				ctx.SetStatusCode(fasthttp.StatusUnauthorized)
				return
			}

			ctx.Request.Header.Set(UserIDHeader, claims.Subject)
			next(ctx)
		}
	}
}

// ExtractBearer returns the credential from the Authorization header,
// tolerating a missing "Bearer " prefix the way the original API did.
func ExtractBearer(ctx *fasthttp.RequestCtx) string {
	header := string(ctx.Request.Header.Peek("Authorization"))
	if header == "" {
		return ""
	}
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return header
}
