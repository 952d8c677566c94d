package app

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/tasks/pkg/tasksdk"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	dir := t.TempDir()
	return Config{
		JWTSecretFile:       filepath.Join(dir, "jwt_secret"),
		StoreDriver:         DriverSQLite,
		DatabaseFile:        filepath.Join(dir, "tasks.db"),
		BcryptCost:          4,
		CORSOrigins:         []string{"http://127.0.0.1:5500"},
		Env:                 "test",
		LogLevel:            "error",
		LogFormat:           "text",
		Port:                0,
		ShutdownGracePeriod: time.Second,
	}
}

func TestNewGeneratesSecretAndServes(t *testing.T) {
	cfg := testConfig(t)

	application, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, application.Shutdown()) })

	info, err := os.Stat(cfg.JWTSecretFile)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0600), info.Mode().Perm())

	srv := httptest.NewServer(application.Handler())
	defer srv.Close()

	client := tasksdk.NewClient(srv.URL)

	health, err := client.GetReadiness(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ok", health.Status)

	session, err := client.Register(t.Context(), "alice", "hunter22")
	require.NoError(t, err)

	task, err := session.CreateTask(t.Context(), "buy milk")
	require.NoError(t, err)
	require.Equal(t, session.User().ID, task.Owner)
}

func TestNewRejectsShortSecret(t *testing.T) {
	cfg := testConfig(t)
	cfg.JWTSecret = "short"

	_, err := New(cfg)
	require.Error(t, err)
}

func TestSecretFileSurvivesRestart(t *testing.T) {
	cfg := testConfig(t)

	first, err := New(cfg)
	require.NoError(t, err)

	srv := httptest.NewServer(first.Handler())
	session, err := tasksdk.NewClient(srv.URL).Register(t.Context(), "alice", "hunter22")
	require.NoError(t, err)
	srv.Close()
	require.NoError(t, first.Shutdown())

	// A token issued before the restart stays valid afterwards
	second, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, second.Shutdown()) })

	srv = httptest.NewServer(second.Handler())
	defer srv.Close()

	tasks, err := tasksdk.NewClient(srv.URL).NewSession(session.Token()).ListTasks(t.Context())
	require.NoError(t, err)
	require.Empty(t, tasks)

	req, err := http.NewRequestWithContext(t.Context(), http.MethodGet, srv.URL+"/api/tasks", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
