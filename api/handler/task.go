package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/taskbuddy/api/transport"
	"github.com/fastygo/taskbuddy/domain"
	"github.com/fastygo/taskbuddy/internal/middleware"
	"github.com/fastygo/taskbuddy/pkg/httpcontext"
	taskUC "github.com/fastygo/taskbuddy/usecase/task"
	"github.com/fastygo/taskbuddy/usecase/view"
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

// @Summary Render the task list or board
// @Tags tasks
// @Router /api/v1/tasks [get]
func (h *TaskHandler) GetTasks(ctx *fasthttp.RequestCtx) {
	args := ctx.QueryArgs()
	req := view.Request{
		Mode: view.ParseMode(string(args.Peek("view"))),
		Criteria: view.Criteria{
			Query:    string(args.Peek("q")),
			Category: string(args.Peek("category")),
			DueDate:  string(args.Peek("due")),
		},
		Collapsed: view.ParseCollapsed(string(args.Peek("collapsed"))),
	}
	if req.Criteria.DueDate != "" {
		if _, err := time.Parse(time.DateOnly, req.Criteria.DueDate); err != nil {
			h.respondInvalid(ctx, "due must be YYYY-MM-DD")
			return
		}
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	tasks, err := h.uc.List(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, view.Build(middleware.SessionFrom(ctx), tasks, req))
}

// @Summary Create task
// @Tags tasks
// @Router /api/v1/tasks [post]
func (h *TaskHandler) CreateTask(ctx *fasthttp.RequestCtx) {
	var req transport.TaskRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}
	due, ok := h.parseDue(ctx, req.DueDate)
	if !ok {
		return
	}

	draft := domain.TaskDraft{
		Title:       req.Title,
		Description: req.Description,
		Category:    domain.Category(req.Category),
		Priority:    domain.Priority(req.Priority),
		DueDate:     due,
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.Add(stdCtx, draft)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Replace task fields
// @Tags tasks
// @Router /api/v1/tasks/{id} [put]
func (h *TaskHandler) UpdateTask(ctx *fasthttp.RequestCtx) {
	id, ok := h.taskID(ctx)
	if !ok {
		return
	}

	var req transport.TaskRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}
	due, ok := h.parseDue(ctx, req.DueDate)
	if !ok {
		return
	}

	task := domain.Task{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		Priority:    domain.Priority(req.Priority),
		Category:    domain.Category(req.Category),
		Status:      domain.Status(req.Status),
		DueDate:     due,
	}
	if req.Completed != nil {
		task.Completed = *req.Completed
	} else {
		task.Completed = task.Status == domain.StatusCompleted
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.Edit(stdCtx, task)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
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

	removed, err := h.uc.Delete(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, removed)
}

// @Summary Change task status
// @Tags tasks
// @Router /api/v1/tasks/{id}/status [post]
func (h *TaskHandler) SetStatus(ctx *fasthttp.RequestCtx) {
	id, ok := h.taskID(ctx)
	if !ok {
		return
	}

	var req transport.StatusRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.SetStatus(stdCtx, id, domain.Status(req.Status))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Flip the completed checkbox
// @Tags tasks
// @Router /api/v1/tasks/{id}/toggle [post]
func (h *TaskHandler) ToggleComplete(ctx *fasthttp.RequestCtx) {
	id, ok := h.taskID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.ToggleComplete(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Move a task onto another task's position
// @Tags tasks
// @Router /api/v1/tasks/reorder [post]
func (h *TaskHandler) Reorder(ctx *fasthttp.RequestCtx) {
	var req transport.ReorderRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.FromID == "" || req.ToID == "" {
		h.respondInvalid(ctx, "from_id and to_id are required")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	moved, err := h.uc.Reorder(stdCtx, req.FromID, req.ToID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, map[string]bool{"moved": moved})
}

// @Summary Set the status of every selected task
// @Tags tasks
// @Router /api/v1/tasks/bulk/status [post]
func (h *TaskHandler) BulkStatus(ctx *fasthttp.RequestCtx) {
	var req transport.BulkRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	sel := domain.NewSelection(req.IDs...)
	updated, err := h.uc.BulkSetStatus(stdCtx, sel, domain.Status(req.Status))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, bulkResult(updated, sel))
}

// @Summary Delete every selected task
// @Tags tasks
// @Router /api/v1/tasks/bulk/delete [post]
func (h *TaskHandler) BulkDelete(ctx *fasthttp.RequestCtx) {
	var req transport.BulkRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	sel := domain.NewSelection(req.IDs...)
	deleted, err := h.uc.BulkDelete(stdCtx, sel)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, bulkResult(deleted, sel))
}

func bulkResult(affected int, sel *domain.Selection) map[string]interface{} {
	return map[string]interface{}{
		"affected": affected,
		"selected": sel.IDs(),
	}
}

func (h *TaskHandler) taskID(ctx *fasthttp.RequestCtx) (string, bool) {
	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondInvalid(ctx, "missing task id")
		return "", false
	}
	return id, true
}

func (h *TaskHandler) parseDue(ctx *fasthttp.RequestCtx, raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, true
	}
	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		return parsed, true
	}
	if parsed, err := time.Parse(time.DateOnly, raw); err == nil {
		return parsed, true
	}
	h.respondInvalid(ctx, "due_date must be RFC 3339 or YYYY-MM-DD")
	return time.Time{}, false
}
