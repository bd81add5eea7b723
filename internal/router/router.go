package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/taskdeck/backend/api/handler"
)

type Handlers struct {
	Task   *apiHandler.TaskHandler
	Health *apiHandler.HealthHandler
}

// Middleware wraps a route handler; a nil middleware is skipped.
type Middleware func(fasthttp.RequestHandler) fasthttp.RequestHandler

func New(handlers Handlers, middlewares ...Middleware) *router.Router {
	r := router.New()

	wrap := func(h fasthttp.RequestHandler) fasthttp.RequestHandler {
		for i := len(middlewares) - 1; i >= 0; i-- {
			if middlewares[i] != nil {
				h = middlewares[i](h)
			}
		}
		return h
	}

	r.GET("/health", handlers.Health.Check)
	r.GET("/health/journal", handlers.Health.RecentChanges)

	r.POST("/api/v1/tasks", wrap(handlers.Task.CreateTask))
	r.GET("/api/v1/tasks", wrap(handlers.Task.GetTasks))
	r.GET("/api/v1/tasks/{id}", wrap(handlers.Task.GetTask))
	r.PUT("/api/v1/tasks/{id}", wrap(handlers.Task.UpdateTask))
	r.PATCH("/api/v1/tasks/{id}/toggle", wrap(handlers.Task.ToggleTask))
	r.DELETE("/api/v1/tasks/{id}", wrap(handlers.Task.DeleteTask))

	return r
}
