package handlers

import (
	"encoding/json"
	"errors"

	"github.com/valyala/fasthttp"

	"task-tracker/internal/middleware"
	"task-tracker/internal/models"
	"task-tracker/internal/repository"
	"task-tracker/internal/services"
	"task-tracker/internal/utils"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	utils.LogSuccess("TaskHandler", "Task handler initialised")
	return &TaskHandler{taskService: taskService}
}

// GetTasks handles GET /api/tasks with optional status/priority/search/sortBy
// query parameters.
func (h *TaskHandler) GetTasks(ctx *fasthttp.RequestCtx) {
	userID, ok := ctx.UserValue(middleware.UserIDKey).(string)
	if !ok {
		utils.LogError("TaskHandler", "user_id missing from request context", nil)
		utils.WriteFailure(ctx, fasthttp.StatusUnauthorized, "Authentication required", "missing_token")
		return
	}

	filter := models.TaskFilter{
		Status:   string(ctx.QueryArgs().Peek("status")),
		Priority: string(ctx.QueryArgs().Peek("priority")),
		Search:   string(ctx.QueryArgs().Peek("search")),
		SortBy:   string(ctx.QueryArgs().Peek("sortBy")),
	}

	tasks, err := h.taskService.List(ctx, userID, filter)
	if err != nil {
		h.writeTaskError(ctx, err)
		return
	}

	if tasks == nil {
		tasks = []models.Task{}
	}
	utils.WriteList(ctx, fasthttp.StatusOK, tasks, len(tasks))
}

// GetTaskByID handles GET /api/tasks/{id}.
func (h *TaskHandler) GetTaskByID(ctx *fasthttp.RequestCtx) {
	userID, ok := ctx.UserValue(middleware.UserIDKey).(string)
	if !ok {
		utils.LogError("TaskHandler", "user_id missing from request context", nil)
		utils.WriteFailure(ctx, fasthttp.StatusUnauthorized, "Authentication required", "missing_token")
		return
	}

	taskID, _ := ctx.UserValue("id").(string)

	task, err := h.taskService.Get(ctx, userID, taskID)
	if err != nil {
		h.writeTaskError(ctx, err)
		return
	}

	utils.WriteData(ctx, fasthttp.StatusOK, task, "")
}

// CreateTask handles POST /api/tasks. Ownership is taken from the attached
// identity, never from the request body.
func (h *TaskHandler) CreateTask(ctx *fasthttp.RequestCtx) {
	userID, ok := ctx.UserValue(middleware.UserIDKey).(string)
	if !ok {
		utils.LogError("TaskHandler", "user_id missing from request context", nil)
		utils.WriteFailure(ctx, fasthttp.StatusUnauthorized, "Authentication required", "missing_token")
		return
	}

	var req models.CreateTaskRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		utils.LogError("TaskHandler", "Failed to parse create request", err)
		utils.WriteFailure(ctx, fasthttp.StatusBadRequest, "Invalid request body", "validation_error")
		return
	}

	task, err := h.taskService.Create(ctx, userID, req)
	if err != nil {
		h.writeTaskError(ctx, err)
		return
	}

	utils.WriteData(ctx, fasthttp.StatusCreated, task, "Task created successfully")
}

// UpdateTask handles PUT /api/tasks/{id}.
func (h *TaskHandler) UpdateTask(ctx *fasthttp.RequestCtx) {
	userID, ok := ctx.UserValue(middleware.UserIDKey).(string)
	if !ok {
		utils.LogError("TaskHandler", "user_id missing from request context", nil)
		utils.WriteFailure(ctx, fasthttp.StatusUnauthorized, "Authentication required", "missing_token")
		return
	}

	taskID, _ := ctx.UserValue("id").(string)

	var req models.UpdateTaskRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		utils.LogError("TaskHandler", "Failed to parse update request", err)
		utils.WriteFailure(ctx, fasthttp.StatusBadRequest, "Invalid request body", "validation_error")
		return
	}

	task, err := h.taskService.Update(ctx, userID, taskID, req)
	if err != nil {
		h.writeTaskError(ctx, err)
		return
	}

	utils.WriteData(ctx, fasthttp.StatusOK, task, "Task updated successfully")
}

// DeleteTask handles DELETE /api/tasks/{id}.
func (h *TaskHandler) DeleteTask(ctx *fasthttp.RequestCtx) {
	userID, ok := ctx.UserValue(middleware.UserIDKey).(string)
	if !ok {
		utils.LogError("TaskHandler", "user_id missing from request context", nil)
		utils.WriteFailure(ctx, fasthttp.StatusUnauthorized, "Authentication required", "missing_token")
		return
	}

	taskID, _ := ctx.UserValue("id").(string)

	if err := h.taskService.Delete(ctx, userID, taskID); err != nil {
		h.writeTaskError(ctx, err)
		return
	}

	utils.WriteJSON(ctx, fasthttp.StatusOK, models.Response{
		Success: true,
		Message: "Task removed",
	})
}

// writeTaskError maps service errors onto envelope responses. Not-found and
// forbidden stay distinct so a client can tell "gone" from "not yours".
func (h *TaskHandler) writeTaskError(ctx *fasthttp.RequestCtx, err error) {
	switch {
	case errors.Is(err, repository.ErrTaskNotFound):
		utils.WriteFailure(ctx, fasthttp.StatusNotFound, "Task not found", "not_found")
	case errors.Is(err, services.ErrForbidden):
		utils.WriteFailure(ctx, fasthttp.StatusForbidden, "You do not have access to this task", "forbidden")
	case errors.Is(err, models.ErrTitleRequired):
		utils.WriteFailure(ctx, fasthttp.StatusBadRequest, "Title is required", "validation_error")
	case errors.Is(err, models.ErrInvalidStatus), errors.Is(err, models.ErrInvalidPriority):
		utils.WriteFailure(ctx, fasthttp.StatusBadRequest, err.Error(), "validation_error")
	default:
		utils.LogError("TaskHandler", "Unexpected task error", err)
		utils.WriteFailure(ctx, fasthttp.StatusInternalServerError, "Server Error", "server_error")
	}
}
