package sqlite

import (
	"context"

	"github.com/aussiebroadwan/tasks/internal/tasks/domain"
	"github.com/aussiebroadwan/tasks/internal/tasks/store/drivers/sqlite/gen"
)

type tasksRepo struct {
	q *gen.Queries
}

func (r *tasksRepo) CreateTask(ctx context.Context, t domain.Task) error {
	err := r.q.CreateTask(ctx, gen.CreateTaskParams{
		ID:          t.ID,
		Description: t.Description,
		Completed:   t.Completed,
		Owner:       t.Owner,
		CreatedAt:   t.CreatedAt.UTC(),
		UpdatedAt:   t.UpdatedAt.UTC(),
	})
	return mapConstraint(err)
}

func (r *tasksRepo) ListTasksByOwner(ctx context.Context, owner string) ([]domain.Task, error) {
	rows, err := r.q.ListTasksByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}

	tasks := make([]domain.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, mapTask(row))
	}
	return tasks, nil
}

func (r *tasksRepo) GetTaskByID(ctx context.Context, id string) (domain.Task, error) {
	row, err := r.q.GetTaskByID(ctx, id)
	if err != nil {
		return domain.Task{}, mapNotFound(err)
	}
	return mapTask(row), nil
}

func (r *tasksRepo) UpdateTask(ctx context.Context, t domain.Task) error {
	return mapAffected(r.q.UpdateTask(ctx, gen.UpdateTaskParams{
		Description: t.Description,
		Completed:   t.Completed,
		UpdatedAt:   t.UpdatedAt.UTC(),
		ID:          t.ID,
	}))
}

func (r *tasksRepo) DeleteTask(ctx context.Context, id string) error {
	return mapAffected(r.q.DeleteTask(ctx, id))
}
