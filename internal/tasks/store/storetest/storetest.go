// Package storetest holds the behaviour every store driver has to share.
// Drivers call Run from their own tests with a fresh, migrated store.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/tasks/internal/tasks/domain"
	"github.com/aussiebroadwan/tasks/internal/tasks/store"
	"github.com/aussiebroadwan/tasks/pkg/idx"
	"github.com/stretchr/testify/require"
)

// Run exercises the Users and Tasks repos of st.
func Run(t *testing.T, st store.Store) {
	t.Run("users", func(t *testing.T) { testUsers(t, st) })
	t.Run("tasks", func(t *testing.T) { testTasks(t, st) })
}

// CreateUser inserts a user with a throwaway hash.
func CreateUser(t *testing.T, st store.Store, username string) domain.User {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Millisecond)
	u := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		PasswordHash: "$2a$10$notarealhash",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, st.Users().CreateUser(context.Background(), u))
	return u
}

func testUsers(t *testing.T, st store.Store) {
	ctx := context.Background()
	alice := CreateUser(t, st, "alice-"+idx.New().String())

	t.Run("lookup by id and username", func(t *testing.T) {
		byID, err := st.Users().GetUserByID(ctx, alice.ID)
		require.NoError(t, err)
		require.Equal(t, alice.Username, byID.Username)
		require.Equal(t, alice.PasswordHash, byID.PasswordHash)
		require.True(t, alice.CreatedAt.Equal(byID.CreatedAt))

		byName, err := st.Users().GetUserByUsername(ctx, alice.Username)
		require.NoError(t, err)
		require.Equal(t, alice.ID, byName.ID)
	})

	t.Run("duplicate username", func(t *testing.T) {
		dup := alice
		dup.ID = idx.New().String()
		err := st.Users().CreateUser(ctx, dup)
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := st.Users().GetUserByUsername(ctx, "nobody")
		require.ErrorIs(t, err, store.ErrNotFound)

		_, err = st.Users().GetUserByID(ctx, idx.New().String())
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("update password hash", func(t *testing.T) {
		require.NoError(t, st.Users().UpdatePasswordHash(ctx, alice.ID, "$2a$10$another"))

		u, err := st.Users().GetUserByID(ctx, alice.ID)
		require.NoError(t, err)
		require.Equal(t, "$2a$10$another", u.PasswordHash)

		err = st.Users().UpdatePasswordHash(ctx, idx.New().String(), "x")
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func testTasks(t *testing.T, st store.Store) {
	ctx := context.Background()

	alice := CreateUser(t, st, "alice-"+idx.New().String())
	bob := CreateUser(t, st, "bob-"+idx.New().String())

	now := time.Now().UTC().Truncate(time.Millisecond)
	newTask := func(owner, desc string) domain.Task {
		task := domain.Task{
			ID:          idx.New().String(),
			Description: desc,
			Owner:       owner,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		require.NoError(t, st.Tasks().CreateTask(ctx, task))
		return task
	}

	first := newTask(alice.ID, "buy milk")
	second := newTask(alice.ID, "walk dog")
	_ = newTask(bob.ID, "bob's task")

	t.Run("list is scoped to owner and ordered", func(t *testing.T) {
		tasks, err := st.Tasks().ListTasksByOwner(ctx, alice.ID)
		require.NoError(t, err)
		require.Len(t, tasks, 2)
		require.Equal(t, first.ID, tasks[0].ID)
		require.Equal(t, second.ID, tasks[1].ID)
		for _, task := range tasks {
			require.Equal(t, alice.ID, task.Owner)
			require.False(t, task.Completed)
		}
	})

	t.Run("empty list is not nil", func(t *testing.T) {
		carol := CreateUser(t, st, "carol-"+idx.New().String())
		tasks, err := st.Tasks().ListTasksByOwner(ctx, carol.ID)
		require.NoError(t, err)
		require.NotNil(t, tasks)
		require.Empty(t, tasks)
	})

	t.Run("update", func(t *testing.T) {
		later := now.Add(time.Minute)
		updated := first
		updated.Description = "buy oat milk"
		updated.Completed = true
		updated.UpdatedAt = later
		require.NoError(t, st.Tasks().UpdateTask(ctx, updated))

		got, err := st.Tasks().GetTaskByID(ctx, first.ID)
		require.NoError(t, err)
		require.Equal(t, "buy oat milk", got.Description)
		require.True(t, got.Completed)
		require.True(t, later.Equal(got.UpdatedAt))
		require.True(t, now.Equal(got.CreatedAt))
		require.Equal(t, alice.ID, got.Owner)

		// Writing the same values again still counts as a match.
		require.NoError(t, st.Tasks().UpdateTask(ctx, updated))
	})

	t.Run("delete twice", func(t *testing.T) {
		require.NoError(t, st.Tasks().DeleteTask(ctx, second.ID))
		require.ErrorIs(t, st.Tasks().DeleteTask(ctx, second.ID), store.ErrNotFound)

		_, err := st.Tasks().GetTaskByID(ctx, second.ID)
		require.ErrorIs(t, err, store.ErrNotFound)

		require.ErrorIs(t, st.Tasks().UpdateTask(ctx, second), store.ErrNotFound)
	})
}
