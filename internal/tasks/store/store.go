package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/tasks/internal/tasks/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite, mongo)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable.
type Store interface {
	Users() Users
	Tasks() Tasks

	ApplyMigrations() error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByUsername is used during login.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID). A taken
	// username returns ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdatePasswordHash sets the password_hash (bcrypt) and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID string, newHash string) error
}

// Tasks never looks at who is asking. Ownership is the service's problem.
type Tasks interface {
	CreateTask(ctx context.Context, t domain.Task) error

	// ListTasksByOwner returns every task of the owner, oldest first.
	ListTasksByOwner(ctx context.Context, owner string) ([]domain.Task, error)

	GetTaskByID(ctx context.Context, id string) (domain.Task, error)

	// UpdateTask writes description, completed and updated_at of t.
	UpdateTask(ctx context.Context, t domain.Task) error

	// DeleteTask returns ErrNotFound when nothing was deleted.
	DeleteTask(ctx context.Context, id string) error
}
