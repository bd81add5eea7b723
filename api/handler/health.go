package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskdeck/backend/api/transport"
	"github.com/taskdeck/backend/internal/infrastructure/journal"
	"github.com/taskdeck/backend/internal/infrastructure/monitor"
)

type HealthHandler struct {
	baseHandler
	monitor *monitor.Monitor
	journal *journal.Store
}

func NewHealthHandler(mon *monitor.Monitor, journalStore *journal.Store, timeout time.Duration, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		baseHandler: newBaseHandler(timeout, logger),
		monitor:     mon,
		journal:     journalStore,
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
			"postgresql": status.PostgreSQL,
			"redis":      status.Redis,
			"journal": map[string]interface{}{
				"online": status.Journal,
				"size":   status.JournalSize,
			},
		},
	}

	if h.monitor.IsReady() {
		h.respondSuccess(ctx, http.StatusOK, "Service healthy", payload)
		return
	}
	h.respondJSON(ctx, http.StatusServiceUnavailable, transport.NewError("Service degraded"))
}

// @Summary Recent task changes
// @Tags health
// @Router /health/journal [get]
func (h *HealthHandler) RecentChanges(ctx *fasthttp.RequestCtx) {
	limit := 20
	if raw := ctx.QueryArgs().Peek("limit"); len(raw) > 0 {
		value, err := strconv.Atoi(string(raw))
		if err != nil {
			h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(invalidParam("limit")))
			return
		}
		limit = value
	}

	entries, err := h.journal.Recent(limit)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, "Journal entries retrieved", entries)
}
