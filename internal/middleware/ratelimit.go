package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskdeck/backend/api/transport"
	"github.com/taskdeck/backend/internal/ratelimit"
)

const limiterTimeout = 500 * time.Millisecond

// RateLimit rejects requests that exceed the per-client-IP sliding window.
// When the limiter backend is unreachable the request is let through; rate
// limiting is an operational guard, not a correctness requirement.
func RateLimit(limiter *ratelimit.Limiter, requests int, window time.Duration, logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			stdCtx, cancel := context.WithTimeout(context.Background(), limiterTimeout)
			result, err := limiter.Allow(stdCtx, ctx.RemoteIP().String(), requests, window)
			cancel()
			if err != nil {
				logger.Warn("rate limit check failed, allowing request", zap.Error(err))
				next(ctx)
				return
			}

			ctx.Response.Header.Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
			ctx.Response.Header.Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))

			if !result.Allowed {
				ctx.Response.Header.Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
				writeEnvelope(ctx, http.StatusTooManyRequests,
					transport.NewError("Too many requests. Please slow down."))
				return
			}

			next(ctx)
		}
	}
}

func writeEnvelope(ctx *fasthttp.RequestCtx, status int, envelope transport.Envelope) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	body, _ := json.Marshal(envelope)
	ctx.SetBody(body)
}
