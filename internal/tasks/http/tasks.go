package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/tasks/internal/tasks/domain"
	"github.com/aussiebroadwan/tasks/internal/tasks/service"
	"github.com/aussiebroadwan/tasks/pkg/httpx"
	"github.com/aussiebroadwan/tasks/pkg/tasksdk"
)

var (
	forbiddenView   = fmt.Sprintf(msgNotAuthorizedTo, "view")
	forbiddenUpdate = fmt.Sprintf(msgNotAuthorizedTo, "update")
	forbiddenDelete = fmt.Sprintf(msgNotAuthorizedTo, "delete")
)

// TasksHandler serves /api/tasks. Every route sits behind the access guard.
type TasksHandler struct {
	TaskService *service.TaskService
}

// HandleList handles GET /api/tasks
//
//	@Summary		List tasks
//	@Description	Returns every task owned by the caller, oldest first. Never includes other users' tasks.
//	@Tags			Tasks
//	@Produce		json
//	@Security		BearerAuth
//	@Param			Authorization	header		string				true	"Bearer token"
//	@Success		200				{array}		tasksdk.Task		"tasks"
//	@Failure		401				{object}	tasksdk.APIError	"not_authorized"
//	@Failure		500				{object}	tasksdk.APIError	"server_error"
//	@Router			/api/tasks [get].
func (h *TasksHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	tasks, err := h.TaskService.List(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err, forbiddenView)
		return
	}

	response := make([]tasksdk.Task, len(tasks))
	for i, t := range tasks {
		response[i] = toTaskResponse(t)
	}
	httpx.WriteJSON(w, http.StatusOK, response)
}

// HandleCreate handles POST /api/tasks
//
//	@Summary		Create task
//	@Description	Creates an incomplete task owned by the caller. The description is trimmed and must be 1-100 characters.
//	@Tags			Tasks
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			Authorization	header		string						true	"Bearer token"
//	@Param			request			body		tasksdk.CreateTaskRequest	true	"description"
//	@Success		201				{object}	tasksdk.Task				"the new task"
//	@Failure		400				{object}	tasksdk.APIError			"validation_failed"
//	@Failure		401				{object}	tasksdk.APIError			"not_authorized"
//	@Failure		500				{object}	tasksdk.APIError			"server_error"
//	@Router			/api/tasks [post].
func (h *TasksHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req tasksdk.CreateTaskRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	task, err := h.TaskService.Create(r.Context(), userID, req.Description)
	if err != nil {
		writeServiceError(w, r, err, forbiddenUpdate)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toTaskResponse(task))
}

// HandleGet handles GET /api/tasks/{id}
//
//	@Summary		Get task
//	@Tags			Tasks
//	@Produce		json
//	@Security		BearerAuth
//	@Param			Authorization	header		string				true	"Bearer token"
//	@Param			id				path		string				true	"Task ID"
//	@Success		200				{object}	tasksdk.Task		"the task"
//	@Failure		401				{object}	tasksdk.APIError	"not_authorized, also returned for tasks owned by someone else"
//	@Failure		404				{object}	tasksdk.APIError	"not_found"
//	@Failure		500				{object}	tasksdk.APIError	"server_error"
//	@Router			/api/tasks/{id} [get].
func (h *TasksHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	task, err := h.TaskService.Get(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err, forbiddenView)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toTaskResponse(task))
}

// HandleComplete handles PATCH /api/tasks/{id}/complete
//
//	@Summary		Set completion
//	@Description	Sets the completed flag. A body without completed leaves the task unchanged apart from updatedAt.
//	@Tags			Tasks
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			Authorization	header		string						true	"Bearer token"
//	@Param			id				path		string						true	"Task ID"
//	@Param			request			body		tasksdk.CompleteTaskRequest	true	"completed"
//	@Success		200				{object}	tasksdk.Task				"the updated task"
//	@Failure		400				{object}	tasksdk.APIError			"invalid_request"
//	@Failure		401				{object}	tasksdk.APIError			"not_authorized"
//	@Failure		404				{object}	tasksdk.APIError			"not_found"
//	@Failure		500				{object}	tasksdk.APIError			"server_error"
//	@Router			/api/tasks/{id}/complete [patch].
func (h *TasksHandler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	// No body at all is the same as {}.
	var req tasksdk.CompleteTaskRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil && !errors.Is(err, httpx.ErrEmptyBody) {
		writeBadRequest(w, err)
		return
	}

	task, err := h.TaskService.SetCompleted(r.Context(), userID, r.PathValue("id"), req.Completed)
	if err != nil {
		writeServiceError(w, r, err, forbiddenUpdate)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toTaskResponse(task))
}

// HandleUpdate handles PUT /api/tasks/{id}
//
//	@Summary		Update task
//	@Description	Applies the fields present in the body; omitted fields are unchanged. The owner can never be changed.
//	@Tags			Tasks
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			Authorization	header		string						true	"Bearer token"
//	@Param			id				path		string						true	"Task ID"
//	@Param			request			body		tasksdk.UpdateTaskRequest	true	"description and/or completed"
//	@Success		200				{object}	tasksdk.Task				"the updated task"
//	@Failure		400				{object}	tasksdk.APIError			"validation_failed"
//	@Failure		401				{object}	tasksdk.APIError			"not_authorized"
//	@Failure		404				{object}	tasksdk.APIError			"not_found"
//	@Failure		500				{object}	tasksdk.APIError			"server_error"
//	@Router			/api/tasks/{id} [put].
func (h *TasksHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req tasksdk.UpdateTaskRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	patch := domain.TaskPatch{
		Description: req.Description,
		Completed:   req.Completed,
	}
	task, err := h.TaskService.Update(r.Context(), userID, r.PathValue("id"), patch)
	if err != nil {
		writeServiceError(w, r, err, forbiddenUpdate)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toTaskResponse(task))
}

// HandleDelete handles DELETE /api/tasks/{id}
//
//	@Summary		Delete task
//	@Description	Removes the task permanently. Deleting it again returns 404.
//	@Tags			Tasks
//	@Produce		json
//	@Security		BearerAuth
//	@Param			Authorization	header		string					true	"Bearer token"
//	@Param			id				path		string					true	"Task ID"
//	@Success		200				{object}	tasksdk.MessageResponse	"message"
//	@Failure		401				{object}	tasksdk.APIError		"not_authorized"
//	@Failure		404				{object}	tasksdk.APIError		"not_found"
//	@Failure		500				{object}	tasksdk.APIError		"server_error"
//	@Router			/api/tasks/{id} [delete].
func (h *TasksHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	if err := h.TaskService.Delete(r.Context(), userID, r.PathValue("id")); err != nil {
		writeServiceError(w, r, err, forbiddenDelete)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, tasksdk.MessageResponse{Message: "Task deleted successfully"})
}

func toTaskResponse(t domain.Task) tasksdk.Task {
	return tasksdk.Task{
		ID:          t.ID,
		Description: t.Description,
		Completed:   t.Completed,
		Owner:       t.Owner,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
