package service

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/tasks/internal/tasks/store/drivers/sqlite"
	"github.com/aussiebroadwan/tasks/pkg/cryptox"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fixture struct {
	creds *CredentialService
	tasks *TaskService
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	hasher, err := cryptox.NewPasswordHasher(bcrypt.MinCost)
	require.NoError(t, err)

	return fixture{
		creds: &CredentialService{Store: st, Hasher: hasher},
		tasks: &TaskService{Store: st},
	}
}

func (f fixture) register(t *testing.T, username string) string {
	t.Helper()
	u, err := f.creds.Register(context.Background(), username, "secret1")
	require.NoError(t, err)
	return u.ID
}
