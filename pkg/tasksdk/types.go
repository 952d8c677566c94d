package tasksdk

import "time"

// ============================================================================
// Auth
// ============================================================================

// Credentials is the body of both register and login.
type Credentials struct {
	Username string `json:"username" example:"alice"`
	Password string `json:"password" example:"secret1"`
}

// AuthUser is the public view of a user account.
type AuthUser struct {
	ID       string `json:"id" example:"01HZX3J9W8T6Y5R4Q3P2N1M0KJ"`
	Username string `json:"username" example:"alice"`
}

// AuthResponse is returned by register (201) and login (200).
type AuthResponse struct {
	Message string   `json:"message" example:"Logged in successfully"`
	User    AuthUser `json:"user"`
	Token   string   `json:"token"`
}

// ChangePasswordRequest replaces the caller's password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// MessageResponse is a bare acknowledgement.
type MessageResponse struct {
	Message string `json:"message" example:"Task deleted successfully"`
}

// ============================================================================
// Tasks
// ============================================================================

// Task is a task as the API returns it.
type Task struct {
	ID          string    `json:"_id" example:"01HZX3K2B7C6D5E4F3G2H1J0KM"`
	Description string    `json:"description" example:"buy milk"`
	Completed   bool      `json:"completed" example:"false"`
	Owner       string    `json:"owner" example:"01HZX3J9W8T6Y5R4Q3P2N1M0KJ"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateTaskRequest is the body of POST /api/tasks.
type CreateTaskRequest struct {
	Description string `json:"description" example:"buy milk"`
}

// UpdateTaskRequest is the body of PUT /api/tasks/{id}. Omitted fields are
// left unchanged.
type UpdateTaskRequest struct {
	Description *string `json:"description,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
}

// CompleteTaskRequest is the body of PATCH /api/tasks/{id}/complete.
type CompleteTaskRequest struct {
	Completed *bool `json:"completed,omitempty"`
}

// ============================================================================
// Health
// ============================================================================

// HealthResponse represents the response structure for health check endpoints.
// Used by both /livez and /readyz endpoints (readyz includes additional Checks field).
type HealthResponse struct {
	// Status indicates the overall health status (e.g., "ok")
	Status string `json:"status"`

	// Uptime is the service uptime duration as a string (e.g., "1h23m45s")
	Uptime string `json:"uptime,omitempty"`

	// Version is the service version string
	Version string `json:"version,omitempty"`

	// Checks contains per-dependency status, only set by /readyz
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks represents the status of critical service dependencies.
type HealthChecks struct {
	// Database indicates the store connection status
	Database string `json:"database"`

	// Signer indicates the token signing capability status
	Signer string `json:"signer"`
}
