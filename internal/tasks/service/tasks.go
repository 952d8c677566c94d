package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/tasks/internal/tasks/domain"
	"github.com/aussiebroadwan/tasks/internal/tasks/store"
	"github.com/aussiebroadwan/tasks/pkg/idx"
	"github.com/aussiebroadwan/tasks/pkg/slogx"
)

// TaskService is the only way the HTTP layer touches tasks. Every operation on
// an existing task goes through authorize before anything is returned or
// written.
type TaskService struct {
	Store store.Store

	// Now defaults to time.Now.
	Now func() time.Time
}

// Create stores a new, incomplete task owned by callerID.
func (s *TaskService) Create(ctx context.Context, callerID, description string) (domain.Task, error) {
	log := slogx.FromContext(ctx)

	var v ValidationError
	description = normalizeDescription(&v, description)
	if err := v.err(); err != nil {
		return domain.Task{}, err
	}

	now := s.now()
	task := domain.Task{
		ID:          idx.NewAt(now).String(),
		Description: description,
		Completed:   false,
		Owner:       callerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Store.Tasks().CreateTask(ctx, task); err != nil {
		log.Error("failed to create task", slog.Any("error", err))
		return domain.Task{}, err
	}

	log.Debug("task created", slog.String("task_id", task.ID))
	return task, nil
}

// List returns the caller's tasks, oldest first. Never nil.
func (s *TaskService) List(ctx context.Context, callerID string) ([]domain.Task, error) {
	tasks, err := s.Store.Tasks().ListTasksByOwner(ctx, callerID)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list tasks", slog.Any("error", err))
		return nil, err
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	return tasks, nil
}

// Get returns one task if the caller owns it.
func (s *TaskService) Get(ctx context.Context, callerID, taskID string) (domain.Task, error) {
	return s.authorize(ctx, callerID, taskID)
}

// Update applies patch to a task the caller owns. An empty patch is not an
// error, it just bumps UpdatedAt.
func (s *TaskService) Update(ctx context.Context, callerID, taskID string, patch domain.TaskPatch) (domain.Task, error) {
	log := slogx.FromContext(ctx)

	task, err := s.authorize(ctx, callerID, taskID)
	if err != nil {
		return domain.Task{}, err
	}

	if patch.Description != nil {
		var v ValidationError
		desc := normalizeDescription(&v, *patch.Description)
		if err := v.err(); err != nil {
			return domain.Task{}, err
		}
		patch.Description = &desc
	}

	task = patch.Apply(task, s.now())
	if err := s.Store.Tasks().UpdateTask(ctx, task); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Deleted between load and write.
			return domain.Task{}, ErrNotFound
		}
		log.Error("failed to update task", slog.String("task_id", taskID), slog.Any("error", err))
		return domain.Task{}, err
	}

	log.Debug("task updated", slog.String("task_id", taskID))
	return task, nil
}

// SetCompleted is Update with only the completion flag. A nil completed
// leaves the flag as it is.
func (s *TaskService) SetCompleted(ctx context.Context, callerID, taskID string, completed *bool) (domain.Task, error) {
	return s.Update(ctx, callerID, taskID, domain.TaskPatch{Completed: completed})
}

// Delete removes a task the caller owns. Deleting it again is ErrNotFound.
func (s *TaskService) Delete(ctx context.Context, callerID, taskID string) error {
	log := slogx.FromContext(ctx)

	if _, err := s.authorize(ctx, callerID, taskID); err != nil {
		return err
	}

	if err := s.Store.Tasks().DeleteTask(ctx, taskID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		log.Error("failed to delete task", slog.String("task_id", taskID), slog.Any("error", err))
		return err
	}

	log.Debug("task deleted", slog.String("task_id", taskID))
	return nil
}

// authorize loads the task and checks it belongs to callerID. This is the one
// place ownership is decided; nothing may be returned or written before it
// passes.
func (s *TaskService) authorize(ctx context.Context, callerID, taskID string) (domain.Task, error) {
	log := slogx.FromContext(ctx)

	if callerID == "" {
		// The guard should have stopped this request.
		log.Error("task access without caller identity", slog.String("task_id", taskID))
		return domain.Task{}, ErrForbidden
	}

	// Anything that isn't one of our ids can't exist.
	if !idx.Valid(taskID) {
		return domain.Task{}, ErrNotFound
	}

	task, err := s.Store.Tasks().GetTaskByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Task{}, ErrNotFound
		}
		log.Error("failed to load task", slog.String("task_id", taskID), slog.Any("error", err))
		return domain.Task{}, err
	}

	if task.Owner != callerID {
		log.Warn("task access by non-owner",
			slog.String("task_id", taskID),
			slog.String("owner_id", task.Owner),
		)
		return domain.Task{}, ErrForbidden
	}

	return task, nil
}

func (s *TaskService) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}
