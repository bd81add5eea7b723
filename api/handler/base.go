package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskdeck/backend/api/transport"
	"github.com/taskdeck/backend/domain"
	"github.com/taskdeck/backend/pkg/httpcontext"
)

type baseHandler struct {
	timeout time.Duration
	logger  *zap.Logger
}

func newBaseHandler(timeout time.Duration, logger *zap.Logger) baseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return baseHandler{timeout: timeout, logger: logger}
}

func (h baseHandler) requestContext(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	return httpcontext.New(ctx, h.timeout)
}

func (h baseHandler) respondJSON(ctx *fasthttp.RequestCtx, status int, payload transport.Envelope) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	body, _ := json.Marshal(payload)
	ctx.SetBody(body)
}

func (h baseHandler) respondSuccess(ctx *fasthttp.RequestCtx, status int, message string, data interface{}) {
	h.respondJSON(ctx, status, transport.NewSuccess(message, data))
}

// respondError translates a failure into the envelope exactly once, at the
// HTTP boundary. Anything outside the domain taxonomy becomes a 500 with a
// generic message; the full error is only logged.
func (h baseHandler) respondError(ctx *fasthttp.RequestCtx, err error) {
	var dErr *domain.Error
	if errors.As(err, &dErr) {
		switch dErr.Code {
		case domain.ErrCodeNotFound:
			h.respondJSON(ctx, http.StatusNotFound, transport.NewError(dErr.Message))
			return
		case domain.ErrCodeValidation:
			h.respondJSON(ctx, http.StatusBadRequest,
				transport.NewErrorWithDetails(transport.MsgValidation, dErr.Details))
			return
		case domain.ErrCodeInvalid:
			h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(dErr.Message))
			return
		}
	}

	h.logger.Error("unhandled error",
		zap.ByteString("path", ctx.Path()),
		zap.ByteString("method", ctx.Method()),
		zap.Error(err))
	h.respondJSON(ctx, http.StatusInternalServerError, transport.NewError(transport.MsgInternal))
}
