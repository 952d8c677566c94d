package tasksdk

import (
	"context"
	"net/http"
	"net/url"
)

// Session is an authenticated view of the API. It is safe for concurrent use;
// nothing in it changes after creation.
type Session struct {
	client  *Client
	token   string
	user    AuthUser
	message string
}

// Token returns the bearer token the session sends.
func (s *Session) Token() string { return s.token }

// User returns the account the session was created for. It is zero for
// sessions built with NewSession.
func (s *Session) User() AuthUser { return s.user }

// Message is whatever the server said when the session was created.
func (s *Session) Message() string { return s.message }

// ChangePassword replaces the password of the session's user. The token stays
// valid.
func (s *Session) ChangePassword(ctx context.Context, current, next string) error {
	resp, err := s.client.doRequest(ctx, http.MethodPost, "/api/auth/password", ChangePasswordRequest{
		CurrentPassword: current,
		NewPassword:     next,
	}, s.token)
	if err != nil {
		return err
	}

	var msg MessageResponse
	return decodeJSON(resp, &msg, http.StatusOK)
}

// ListTasks returns the caller's tasks, oldest first.
func (s *Session) ListTasks(ctx context.Context) ([]Task, error) {
	resp, err := s.client.doRequest(ctx, http.MethodGet, "/api/tasks", nil, s.token)
	if err != nil {
		return nil, err
	}

	var tasks []Task
	if err := decodeJSON(resp, &tasks, http.StatusOK); err != nil {
		return nil, err
	}
	return tasks, nil
}

// CreateTask adds a task owned by the caller.
func (s *Session) CreateTask(ctx context.Context, description string) (*Task, error) {
	return s.taskRequest(ctx, http.MethodPost, "/api/tasks", CreateTaskRequest{Description: description}, http.StatusCreated)
}

// GetTask fetches a single task.
func (s *Session) GetTask(ctx context.Context, id string) (*Task, error) {
	return s.taskRequest(ctx, http.MethodGet, taskPath(id), nil, http.StatusOK)
}

// CompleteTask sets the completion flag of a task.
func (s *Session) CompleteTask(ctx context.Context, id string, completed bool) (*Task, error) {
	return s.taskRequest(ctx, http.MethodPatch, taskPath(id)+"/complete", CompleteTaskRequest{Completed: &completed}, http.StatusOK)
}

// UpdateTask applies req to a task. Nil fields are not sent.
func (s *Session) UpdateTask(ctx context.Context, id string, req UpdateTaskRequest) (*Task, error) {
	return s.taskRequest(ctx, http.MethodPut, taskPath(id), req, http.StatusOK)
}

// DeleteTask removes a task permanently.
func (s *Session) DeleteTask(ctx context.Context, id string) error {
	resp, err := s.client.doRequest(ctx, http.MethodDelete, taskPath(id), nil, s.token)
	if err != nil {
		return err
	}

	var msg MessageResponse
	return decodeJSON(resp, &msg, http.StatusOK)
}

func (s *Session) taskRequest(ctx context.Context, method, path string, body any, expected int) (*Task, error) {
	resp, err := s.client.doRequest(ctx, method, path, body, s.token)
	if err != nil {
		return nil, err
	}

	var task Task
	if err := decodeJSON(resp, &task, expected); err != nil {
		return nil, err
	}
	return &task, nil
}

func taskPath(id string) string {
	return "/api/tasks/" + url.PathEscape(id)
}
