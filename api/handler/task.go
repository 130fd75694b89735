package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/todoforge/backend/api/transport"
	"github.com/todoforge/backend/domain"
	"github.com/todoforge/backend/internal/middleware"
	"github.com/todoforge/backend/pkg/httpcontext"
	taskUC "github.com/todoforge/backend/usecase/task"
)

type TaskHandler struct {
	baseHandler
	uc *taskUC.UseCase
}

func NewTaskHandler(uc *taskUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List the caller's todos
// @Tags todos
// @Router /api/todos/ [get]
func (h *TaskHandler) List(ctx *fasthttp.RequestCtx) {
	owner := h.owner(ctx)
	if owner == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	tasks, err := h.uc.ListTasks(stdCtx, owner)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	h.respondSuccess(ctx, http.StatusOK, tasks)
}

// @Summary Create a todo
// @Tags todos
// @Router /api/todos/ [post]
func (h *TaskHandler) Create(ctx *fasthttp.RequestCtx) {
	owner := h.owner(ctx)
	if owner == "" {
		return
	}

	var req transport.TaskRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload"))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.CreateTask(stdCtx, owner, taskUC.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Priority:    req.Priority,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Fetch a single todo
// @Tags todos
// @Router /api/todos/{id} [get]
func (h *TaskHandler) Get(ctx *fasthttp.RequestCtx) {
	owner := h.owner(ctx)
	if owner == "" {
		return
	}
	id, ok := h.taskID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	task, err := h.uc.GetTask(stdCtx, id, owner)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, task)
}

// @Summary Partially update a todo
// @Tags todos
// @Router /api/todos/{id} [put]
func (h *TaskHandler) Update(ctx *fasthttp.RequestCtx) {
	owner := h.owner(ctx)
	if owner == "" {
		return
	}
	id, ok := h.taskID(ctx)
	if !ok {
		return
	}

	// Decoding into pointer fields keeps absent keys distinct from keys
	// explicitly set to empty values.
	var patch domain.TaskPatch
	if err := json.Unmarshal(ctx.PostBody(), &patch); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload"))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.UpdateTask(stdCtx, id, owner, patch)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Delete a todo
// @Tags todos
// @Router /api/todos/{id} [delete]
func (h *TaskHandler) Delete(ctx *fasthttp.RequestCtx) {
	owner := h.owner(ctx)
	if owner == "" {
		return
	}
	id, ok := h.taskID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.DeleteTask(stdCtx, id, owner); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

// @Summary Toggle a todo's completion status
// @Tags todos
// @Router /api/todos/{id}/complete [patch]
func (h *TaskHandler) ToggleComplete(ctx *fasthttp.RequestCtx) {
	owner := h.owner(ctx)
	if owner == "" {
		return
	}
	id, ok := h.taskID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	task, err := h.uc.ToggleTask(stdCtx, id, owner)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, task)
}

func (h *TaskHandler) owner(ctx *fasthttp.RequestCtx) string {
	owner := string(ctx.Request.Header.Peek(middleware.UserIDHeader))
	if owner == "" {
		h.respondJSON(ctx, http.StatusUnauthorized, transport.NewError(string(domain.ErrCodeUnauthorized), "missing caller identity"))
	}
	return owner
}

func (h *TaskHandler) taskID(ctx *fasthttp.RequestCtx) (int64, bool) {
	raw, _ := ctx.UserValue("id").(string)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid todo id"))
		return 0, false
	}
	return id, true
}
