package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/tasks/internal/tasks/domain"
	"github.com/aussiebroadwan/tasks/pkg/idx"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestCreateTask(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := f.register(t, "alice")

	t.Run("owner and defaults", func(t *testing.T) {
		task, err := f.tasks.Create(ctx, alice, "  buy milk  ")
		require.NoError(t, err)
		require.Equal(t, "buy milk", task.Description)
		require.Equal(t, alice, task.Owner)
		require.False(t, task.Completed)
		require.True(t, idx.Valid(task.ID))
		require.False(t, task.CreatedAt.IsZero())
	})

	t.Run("description boundary", func(t *testing.T) {
		_, err := f.tasks.Create(ctx, alice, strings.Repeat("a", DescriptionMaxLen))
		require.NoError(t, err)

		// Characters, not bytes.
		_, err = f.tasks.Create(ctx, alice, strings.Repeat("é", DescriptionMaxLen))
		require.NoError(t, err)

		_, err = f.tasks.Create(ctx, alice, strings.Repeat("a", DescriptionMaxLen+1))
		require.ErrorIs(t, err, ErrValidation)

		for _, desc := range []string{"", "   ", "\t\n"} {
			_, err = f.tasks.Create(ctx, alice, desc)
			require.ErrorIs(t, err, ErrValidation)
		}
	})
}

func TestListTasksIsolation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := f.register(t, "alice")
	bob := f.register(t, "bob")

	first, err := f.tasks.Create(ctx, alice, "first")
	require.NoError(t, err)
	second, err := f.tasks.Create(ctx, alice, "second")
	require.NoError(t, err)

	got, err := f.tasks.List(ctx, alice)
	require.NoError(t, err)
	require.Equal(t, []string{first.ID, second.ID}, []string{got[0].ID, got[1].ID})

	got, err = f.tasks.List(ctx, bob)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestOwnershipIsEnforced(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := f.register(t, "alice")
	bob := f.register(t, "bob")

	task, err := f.tasks.Create(ctx, alice, "buy milk")
	require.NoError(t, err)

	_, err = f.tasks.Get(ctx, bob, task.ID)
	require.ErrorIs(t, err, ErrForbidden)

	_, err = f.tasks.Update(ctx, bob, task.ID, domain.TaskPatch{Description: ptr("hacked"), Completed: ptr(true)})
	require.ErrorIs(t, err, ErrForbidden)

	_, err = f.tasks.SetCompleted(ctx, bob, task.ID, ptr(true))
	require.ErrorIs(t, err, ErrForbidden)

	require.ErrorIs(t, f.tasks.Delete(ctx, bob, task.ID), ErrForbidden)

	// Even an invalid patch from a non-owner is Forbidden, not a validation error.
	_, err = f.tasks.Update(ctx, bob, task.ID, domain.TaskPatch{Description: ptr("")})
	require.ErrorIs(t, err, ErrForbidden)

	// None of the above touched the record.
	got, err := f.tasks.Get(ctx, alice, task.ID)
	require.NoError(t, err)
	require.Equal(t, "buy milk", got.Description)
	require.False(t, got.Completed)
	require.Equal(t, alice, got.Owner)
	require.True(t, task.UpdatedAt.Equal(got.UpdatedAt))

	// No caller at all never succeeds.
	_, err = f.tasks.Get(ctx, "", task.ID)
	require.ErrorIs(t, err, ErrForbidden)
}

func TestNotFound(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := f.register(t, "alice")

	for _, id := range []string{idx.New().String(), "not-an-id", ""} {
		_, err := f.tasks.Get(ctx, alice, id)
		require.ErrorIs(t, err, ErrNotFound, id)

		_, err = f.tasks.Update(ctx, alice, id, domain.TaskPatch{})
		require.ErrorIs(t, err, ErrNotFound, id)

		require.ErrorIs(t, f.tasks.Delete(ctx, alice, id), ErrNotFound, id)
	}
}

func TestDeleteTwice(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := f.register(t, "alice")

	task, err := f.tasks.Create(ctx, alice, "buy milk")
	require.NoError(t, err)

	require.NoError(t, f.tasks.Delete(ctx, alice, task.ID))
	require.ErrorIs(t, f.tasks.Delete(ctx, alice, task.ID), ErrNotFound)

	_, err = f.tasks.Get(ctx, alice, task.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateTask(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := f.register(t, "alice")

	clock := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	f.tasks.Now = func() time.Time { return clock }

	task, err := f.tasks.Create(ctx, alice, "buy milk")
	require.NoError(t, err)

	t.Run("empty patch only bumps updated at", func(t *testing.T) {
		clock = clock.Add(time.Minute)
		got, err := f.tasks.Update(ctx, alice, task.ID, domain.TaskPatch{})
		require.NoError(t, err)
		require.Equal(t, task.Description, got.Description)
		require.Equal(t, task.Completed, got.Completed)
		require.Equal(t, clock, got.UpdatedAt)
		require.True(t, task.CreatedAt.Equal(got.CreatedAt))
	})

	t.Run("completed then explicit false", func(t *testing.T) {
		got, err := f.tasks.SetCompleted(ctx, alice, task.ID, ptr(true))
		require.NoError(t, err)
		require.True(t, got.Completed)

		got, err = f.tasks.Update(ctx, alice, task.ID, domain.TaskPatch{Completed: ptr(false)})
		require.NoError(t, err)
		require.False(t, got.Completed)

		stored, err := f.tasks.Get(ctx, alice, task.ID)
		require.NoError(t, err)
		require.False(t, stored.Completed)
	})

	t.Run("absent completed leaves the flag", func(t *testing.T) {
		_, err := f.tasks.SetCompleted(ctx, alice, task.ID, ptr(true))
		require.NoError(t, err)

		got, err := f.tasks.SetCompleted(ctx, alice, task.ID, nil)
		require.NoError(t, err)
		require.True(t, got.Completed)
	})

	t.Run("description is validated and trimmed", func(t *testing.T) {
		_, err := f.tasks.Update(ctx, alice, task.ID, domain.TaskPatch{Description: ptr("   ")})
		require.ErrorIs(t, err, ErrValidation)

		_, err = f.tasks.Update(ctx, alice, task.ID, domain.TaskPatch{Description: ptr(strings.Repeat("a", 101))})
		require.ErrorIs(t, err, ErrValidation)

		got, err := f.tasks.Update(ctx, alice, task.ID, domain.TaskPatch{Description: ptr(" buy oat milk ")})
		require.NoError(t, err)
		require.Equal(t, "buy oat milk", got.Description)
		require.Equal(t, alice, got.Owner)
	})
}
