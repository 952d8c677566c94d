package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/tasks/internal/tasks/domain"
	"github.com/aussiebroadwan/tasks/internal/tasks/service"
	"github.com/aussiebroadwan/tasks/pkg/httpx"
	"github.com/aussiebroadwan/tasks/pkg/slogx"
	"github.com/aussiebroadwan/tasks/pkg/tasksdk"
)

// AuthHandler handles registration, login and password changes.
type AuthHandler struct {
	CredentialService *service.CredentialService
	TokenService      *service.TokenService
}

// HandleRegister handles POST /api/auth/register
//
//	@Summary		Register
//	@Description	Creates an account and logs it in. Usernames are trimmed and must be 3-32 characters, passwords 6-72 bytes.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		tasksdk.Credentials		true	"username and password"
//	@Success		201		{object}	tasksdk.AuthResponse	"message, user, token"
//	@Failure		400		{object}	tasksdk.APIError		"validation_failed or user_already_exists"
//	@Failure		500		{object}	tasksdk.APIError		"server_error"
//	@Router			/api/auth/register [post].
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req tasksdk.Credentials
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	user, err := h.CredentialService.Register(ctx, req.Username, req.Password)
	if err != nil {
		writeServiceError(w, r, err, "")
		return
	}

	h.writeAuthResponse(w, r, http.StatusCreated, "User registered successfully", user)
}

// HandleLogin handles POST /api/auth/login
//
//	@Summary		Login
//	@Description	Exchanges username and password for a one hour bearer token.
//	@Description	Unknown usernames and wrong passwords get the same answer.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		tasksdk.Credentials		true	"username and password"
//	@Success		200		{object}	tasksdk.AuthResponse	"message, user, token"
//	@Failure		400		{object}	tasksdk.APIError		"validation_failed or invalid_credentials"
//	@Failure		500		{object}	tasksdk.APIError		"server_error"
//	@Router			/api/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req tasksdk.Credentials
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	user, err := h.CredentialService.Verify(ctx, req.Username, req.Password)
	if errors.Is(err, service.ErrNotFound) {
		// Don't tell anyone which usernames exist.
		err = service.ErrInvalidCredentials
	}
	if err != nil {
		writeServiceError(w, r, err, "")
		return
	}

	h.writeAuthResponse(w, r, http.StatusOK, "Logged in successfully", user)
}

// HandleChangePassword handles POST /api/auth/password
//
//	@Summary		Change password
//	@Description	Replaces the caller's password after checking the current one. Issued tokens stay valid until they expire.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			Authorization	header		string							true	"Bearer token"
//	@Param			request			body		tasksdk.ChangePasswordRequest	true	"current and new password"
//	@Success		200				{object}	tasksdk.MessageResponse			"message"
//	@Failure		400				{object}	tasksdk.APIError				"validation_failed or invalid_credentials"
//	@Failure		401				{object}	tasksdk.APIError				"not_authorized"
//	@Failure		500				{object}	tasksdk.APIError				"server_error"
//	@Router			/api/auth/password [post].
func (h *AuthHandler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req tasksdk.ChangePasswordRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	err := h.CredentialService.ChangePassword(ctx, userID, req.CurrentPassword, req.NewPassword)
	if errors.Is(err, service.ErrNotFound) {
		// The token is valid but its user is gone.
		tasksdk.NewAPIError(http.StatusUnauthorized, tasksdk.ErrorCodeNotAuthorized, httpx.NotAuthorizedMessage).WriteError(w)
		return
	}
	if err != nil {
		writeServiceError(w, r, err, "")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, tasksdk.MessageResponse{Message: "Password changed successfully"})
}

func (h *AuthHandler) writeAuthResponse(w http.ResponseWriter, r *http.Request, code int, message string, user domain.User) {
	token, _, err := h.TokenService.Issue(user.ID)
	if err != nil {
		slogx.FromContext(r.Context()).Error("failed to issue token",
			slog.String("user_id", user.ID),
			slog.Any("error", err),
		)
		writeServiceError(w, r, err, "")
		return
	}

	httpx.WriteJSON(w, code, tasksdk.AuthResponse{
		Message: message,
		User: tasksdk.AuthUser{
			ID:       user.ID,
			Username: user.Username,
		},
		Token: token,
	})
}
