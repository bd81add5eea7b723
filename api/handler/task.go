package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskdeck/backend/api/transport"
	"github.com/taskdeck/backend/repository"
	taskUC "github.com/taskdeck/backend/usecase/task"
)

type TaskHandler struct {
	baseHandler
	uc *taskUC.UseCase
}

func NewTaskHandler(uc *taskUC.UseCase, timeout time.Duration, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		baseHandler: newBaseHandler(timeout, logger),
		uc:          uc,
	}
}

// @Summary Create task
// @Tags tasks
// @Router /api/v1/tasks [post]
func (h *TaskHandler) CreateTask(ctx *fasthttp.RequestCtx) {
	var req transport.TaskRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(transport.MsgMalformedBody))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.CreateTask(stdCtx, taskUC.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, "Task created successfully", transport.NewTaskResponse(created))
}

// @Summary List tasks
// @Tags tasks
// @Router /api/v1/tasks [get]
func (h *TaskHandler) GetTasks(ctx *fasthttp.RequestCtx) {
	filter, ok := h.parseFilter(ctx)
	if !ok {
		return
	}
	page, ok := h.parsePageRequest(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	result, err := h.uc.ListTasks(stdCtx, filter, page)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, "Tasks retrieved successfully", transport.NewPageResponse(result))
}

// @Summary Get task by id
// @Tags tasks
// @Router /api/v1/tasks/{id} [get]
func (h *TaskHandler) GetTask(ctx *fasthttp.RequestCtx) {
	id, ok := h.taskID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	task, err := h.uc.GetTask(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, "Task found", transport.NewTaskResponse(task))
}

// @Summary Update task
// @Tags tasks
// @Router /api/v1/tasks/{id} [put]
func (h *TaskHandler) UpdateTask(ctx *fasthttp.RequestCtx) {
	id, ok := h.taskID(ctx)
	if !ok {
		return
	}

	var req transport.TaskRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(transport.MsgMalformedBody))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.UpdateTask(stdCtx, id, taskUC.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, "Task updated successfully", transport.NewTaskResponse(updated))
}

// @Summary Toggle task completion
// @Tags tasks
// @Router /api/v1/tasks/{id}/toggle [patch]
func (h *TaskHandler) ToggleTask(ctx *fasthttp.RequestCtx) {
	id, ok := h.taskID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.ToggleTask(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	message := "Task marked as pending"
	if updated.Completed {
		message = "Task marked as completed"
	}
	h.respondSuccess(ctx, http.StatusOK, message, transport.NewTaskResponse(updated))
}

// @Summary Delete task
// @Tags tasks
// @Router /api/v1/tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(ctx *fasthttp.RequestCtx) {
	id, ok := h.taskID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.DeleteTask(stdCtx, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.NewSuccessMessage("Task deleted successfully"))
}

// taskID extracts and validates the path id. Anything that does not parse
// as a UUID is a malformed request, not a missing task.
func (h *TaskHandler) taskID(ctx *fasthttp.RequestCtx) (string, bool) {
	raw, _ := ctx.UserValue("id").(string)
	id, err := uuid.Parse(raw)
	if err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(invalidParam("id")))
		return "", false
	}
	return id.String(), true
}

func (h *TaskHandler) parseFilter(ctx *fasthttp.RequestCtx) (repository.TaskFilter, bool) {
	args := ctx.QueryArgs()

	filter := repository.TaskFilter{
		Search: string(args.Peek("q")),
	}
	if raw := args.Peek("completed"); len(raw) > 0 {
		completed, err := strconv.ParseBool(string(raw))
		if err != nil {
			h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(invalidParam("completed")))
			return repository.TaskFilter{}, false
		}
		filter.Completed = &completed
	}
	return filter, true
}

func (h *TaskHandler) parsePageRequest(ctx *fasthttp.RequestCtx) (repository.PageRequest, bool) {
	args := ctx.QueryArgs()
	page := repository.PageRequest{Page: 0, Size: 10}

	for _, param := range []struct {
		name string
		dst  *int
	}{
		{"page", &page.Page},
		{"size", &page.Size},
	} {
		raw := args.Peek(param.name)
		if len(raw) == 0 {
			continue
		}
		value, err := strconv.Atoi(string(raw))
		if err != nil {
			h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(invalidParam(param.name)))
			return repository.PageRequest{}, false
		}
		*param.dst = value
	}
	return page, true
}

func invalidParam(name string) string {
	return fmt.Sprintf("parameter '%s' has an invalid format", name)
}
