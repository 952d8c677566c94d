package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	tasksapi "github.com/aussiebroadwan/tasks/internal/tasks/http"
	"github.com/aussiebroadwan/tasks/internal/tasks/service"
	"github.com/aussiebroadwan/tasks/internal/tasks/store/drivers/sqlite"
	"github.com/aussiebroadwan/tasks/pkg/cryptox"
	"github.com/aussiebroadwan/tasks/pkg/idx"
	"github.com/aussiebroadwan/tasks/pkg/jwtx"
	"github.com/aussiebroadwan/tasks/pkg/slogx"
	"github.com/aussiebroadwan/tasks/pkg/tasksdk"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var testSecret = []byte(strings.Repeat("s", 32))

type testServer struct {
	URL    string
	Client *tasksdk.Client
	Tokens *service.TokenService
}

func newTestServer(t *testing.T) testServer {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	hasher, err := cryptox.NewPasswordHasher(bcrypt.MinCost)
	require.NoError(t, err)

	tokens, err := service.NewTokenService(testSecret)
	require.NoError(t, err)

	router := tasksapi.NewRouter("test", st, slogx.Discard(), tasksapi.DefaultCORS)
	router.TokenService = tokens
	router.CredentialService = &service.CredentialService{Store: st, Hasher: hasher}
	router.TaskService = &service.TaskService{Store: st}
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return testServer{URL: srv.URL, Client: tasksdk.NewClient(srv.URL), Tokens: tokens}
}

func requireAPIError(t *testing.T, err error, status int, code string) *tasksdk.APIError {
	t.Helper()
	var apiErr *tasksdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, status, apiErr.StatusCode, apiErr.Error())
	require.Equal(t, code, apiErr.Code)
	return apiErr
}

func TestAliceAndBob(t *testing.T) {
	ctx := context.Background()
	ts := newTestServer(t)

	alice, err := ts.Client.Register(ctx, "alice", "secret1")
	require.NoError(t, err)
	require.NotEmpty(t, alice.Token())
	require.Equal(t, "alice", alice.User().Username)
	require.Equal(t, "User registered successfully", alice.Message())

	task, err := alice.CreateTask(ctx, "buy milk")
	require.NoError(t, err)
	require.Equal(t, alice.User().ID, task.Owner)
	require.False(t, task.Completed)
	require.Equal(t, "buy milk", task.Description)

	bob, err := ts.Client.Register(ctx, "bob", "secret2")
	require.NoError(t, err)

	tasks, err := bob.ListTasks(ctx)
	require.NoError(t, err)
	require.Empty(t, tasks)

	desc := "stolen"
	_, err = bob.UpdateTask(ctx, task.ID, tasksdk.UpdateTaskRequest{Description: &desc})
	apiErr := requireAPIError(t, err, http.StatusUnauthorized, tasksdk.ErrorCodeNotAuthorized)
	require.Equal(t, "Not authorized to update this task", apiErr.Message)

	_, err = bob.CompleteTask(ctx, task.ID, true)
	requireAPIError(t, err, http.StatusUnauthorized, tasksdk.ErrorCodeNotAuthorized)

	_, err = bob.GetTask(ctx, task.ID)
	requireAPIError(t, err, http.StatusUnauthorized, tasksdk.ErrorCodeNotAuthorized)

	err = bob.DeleteTask(ctx, task.ID)
	apiErr = requireAPIError(t, err, http.StatusUnauthorized, tasksdk.ErrorCodeNotAuthorized)
	require.Equal(t, "Not authorized to delete this task", apiErr.Message)

	// Alice's task survived all of that.
	got, err := alice.GetTask(ctx, task.ID)
	require.NoError(t, err)
	require.Equal(t, "buy milk", got.Description)
	require.False(t, got.Completed)

	tasks, err = alice.ListTasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
}

func TestAuthEndpoints(t *testing.T) {
	ctx := context.Background()
	ts := newTestServer(t)

	_, err := ts.Client.Register(ctx, "alice", "secret1")
	require.NoError(t, err)

	t.Run("duplicate register", func(t *testing.T) {
		_, err := ts.Client.Register(ctx, "alice", "secret9")
		apiErr := requireAPIError(t, err, http.StatusBadRequest, tasksdk.ErrorCodeUserExists)
		require.Equal(t, "User already exists", apiErr.Message)
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := ts.Client.Register(ctx, "", "")
		apiErr := requireAPIError(t, err, http.StatusBadRequest, tasksdk.ErrorCodeValidation)
		require.Equal(t, "Please enter all fields", apiErr.Message)
		require.Contains(t, apiErr.Details, "username")
		require.Contains(t, apiErr.Details, "password")
	})

	t.Run("login", func(t *testing.T) {
		s, err := ts.Client.Login(ctx, "alice", "secret1")
		require.NoError(t, err)
		require.Equal(t, "Logged in successfully", s.Message())

		sub, err := ts.Tokens.Verify(s.Token())
		require.NoError(t, err)
		require.Equal(t, s.User().ID, sub)
	})

	t.Run("unknown user and wrong password look the same", func(t *testing.T) {
		_, errWrong := ts.Client.Login(ctx, "alice", "nope123")
		_, errUnknown := ts.Client.Login(ctx, "mallory", "secret1")

		wrong := requireAPIError(t, errWrong, http.StatusBadRequest, tasksdk.ErrorCodeInvalidCredentials)
		unknown := requireAPIError(t, errUnknown, http.StatusBadRequest, tasksdk.ErrorCodeInvalidCredentials)
		require.Equal(t, wrong, unknown)
	})

	t.Run("change password", func(t *testing.T) {
		s, err := ts.Client.Login(ctx, "alice", "secret1")
		require.NoError(t, err)

		err = s.ChangePassword(ctx, "wrong!!", "newsecret")
		requireAPIError(t, err, http.StatusBadRequest, tasksdk.ErrorCodeInvalidCredentials)

		require.NoError(t, s.ChangePassword(ctx, "secret1", "newsecret"))

		_, err = ts.Client.Login(ctx, "alice", "secret1")
		requireAPIError(t, err, http.StatusBadRequest, tasksdk.ErrorCodeInvalidCredentials)
		_, err = ts.Client.Login(ctx, "alice", "newsecret")
		require.NoError(t, err)
	})

	t.Run("change password needs a token", func(t *testing.T) {
		err := ts.Client.NewSession("").ChangePassword(ctx, "a", "b")
		requireAPIError(t, err, http.StatusUnauthorized, tasksdk.ErrorCodeNotAuthorized)
	})
}

func TestAccessGuardOnTaskRoutes(t *testing.T) {
	ctx := context.Background()
	ts := newTestServer(t)

	alice, err := ts.Client.Register(ctx, "alice", "secret1")
	require.NoError(t, err)

	expiredSigner, err := jwtx.NewHS256(testSecret)
	require.NoError(t, err)
	expired, err := expiredSigner.Sign(jwtx.NewClaims(alice.User().ID, time.Hour, time.Now().Add(-2*time.Hour)))
	require.NoError(t, err)

	otherSigner, err := jwtx.NewHS256([]byte(strings.Repeat("x", 32)))
	require.NoError(t, err)
	forged, err := otherSigner.Sign(jwtx.NewClaims(alice.User().ID, time.Hour, time.Now()))
	require.NoError(t, err)

	for name, token := range map[string]string{
		"missing":   "",
		"malformed": "abc",
		"expired":   expired,
		"forged":    forged,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ts.Client.NewSession(token).ListTasks(ctx)
			apiErr := requireAPIError(t, err, http.StatusUnauthorized, tasksdk.ErrorCodeNotAuthorized)
			require.Equal(t, "Not authorized", apiErr.Message)
		})
	}
}

func TestTaskEndpoints(t *testing.T) {
	ctx := context.Background()
	ts := newTestServer(t)

	alice, err := ts.Client.Register(ctx, "alice", "secret1")
	require.NoError(t, err)

	t.Run("description boundary", func(t *testing.T) {
		_, err := alice.CreateTask(ctx, strings.Repeat("a", 100))
		require.NoError(t, err)

		_, err = alice.CreateTask(ctx, strings.Repeat("a", 101))
		requireAPIError(t, err, http.StatusBadRequest, tasksdk.ErrorCodeValidation)

		_, err = alice.CreateTask(ctx, "   ")
		apiErr := requireAPIError(t, err, http.StatusBadRequest, tasksdk.ErrorCodeValidation)
		require.Equal(t, "Task description is required", apiErr.Message)
	})

	t.Run("complete and uncomplete", func(t *testing.T) {
		task, err := alice.CreateTask(ctx, "walk dog")
		require.NoError(t, err)

		got, err := alice.CompleteTask(ctx, task.ID, true)
		require.NoError(t, err)
		require.True(t, got.Completed)

		got, err = alice.UpdateTask(ctx, task.ID, tasksdk.UpdateTaskRequest{Completed: new(bool)})
		require.NoError(t, err)
		require.False(t, got.Completed)
		require.Equal(t, "walk dog", got.Description)
	})

	t.Run("empty update keeps fields", func(t *testing.T) {
		task, err := alice.CreateTask(ctx, "water plants")
		require.NoError(t, err)

		got, err := alice.UpdateTask(ctx, task.ID, tasksdk.UpdateTaskRequest{})
		require.NoError(t, err)
		require.Equal(t, task.Description, got.Description)
		require.Equal(t, task.Completed, got.Completed)
		require.False(t, got.UpdatedAt.Before(task.UpdatedAt))
	})

	t.Run("delete then not found", func(t *testing.T) {
		task, err := alice.CreateTask(ctx, "throw away")
		require.NoError(t, err)

		require.NoError(t, alice.DeleteTask(ctx, task.ID))

		err = alice.DeleteTask(ctx, task.ID)
		apiErr := requireAPIError(t, err, http.StatusNotFound, tasksdk.ErrorCodeNotFound)
		require.Equal(t, "Task not found", apiErr.Message)

		_, err = alice.GetTask(ctx, task.ID)
		require.True(t, tasksdk.IsNotFound(err))
	})

	t.Run("unknown and malformed ids", func(t *testing.T) {
		for _, id := range []string{idx.New().String(), "not-a-ulid"} {
			_, err := alice.GetTask(ctx, id)
			requireAPIError(t, err, http.StatusNotFound, tasksdk.ErrorCodeNotFound)
		}
	})
}

func TestWireFormat(t *testing.T) {
	ctx := context.Background()
	ts := newTestServer(t)

	alice, err := ts.Client.Register(ctx, "alice", "secret1")
	require.NoError(t, err)
	_, err = alice.CreateTask(ctx, "buy milk")
	require.NoError(t, err)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/api/tasks", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+alice.Token())

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	require.NotEmpty(t, resp.Header.Get(slogx.HeaderRequestID))

	var raw []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&raw))
	require.Len(t, raw, 1)
	for _, key := range []string{"_id", "description", "completed", "owner", "createdAt", "updatedAt"} {
		require.Contains(t, raw[0], key)
	}
}

func TestCORSPreflight(t *testing.T) {
	ts := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/api/tasks", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://127.0.0.1:5500")
	req.Header.Set("Access-Control-Request-Method", "POST")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	require.Equal(t, "http://127.0.0.1:5500", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestHealth(t *testing.T) {
	ctx := context.Background()
	ts := newTestServer(t)

	live, err := ts.Client.GetLiveness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)
	require.Equal(t, "test", live.Version)

	ready, err := ts.Client.GetReadiness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)
	require.NotNil(t, ready.Checks)
	require.Equal(t, "ok", ready.Checks.Database)
}

func TestHandlerWithoutGuardFails(t *testing.T) {
	h := &tasksapi.TasksHandler{}
	rec := httptest.NewRecorder()
	h.HandleList(rec, httptest.NewRequest(http.MethodGet, "/api/tasks", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}
