package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/tasks/internal/tasks/domain"
	"github.com/aussiebroadwan/tasks/internal/tasks/store"
	"github.com/aussiebroadwan/tasks/pkg/cryptox"
	"github.com/aussiebroadwan/tasks/pkg/idx"
	"github.com/aussiebroadwan/tasks/pkg/slogx"
)

// CredentialService owns user records and is the only place passwords are
// hashed. Nothing here ever logs a password.
type CredentialService struct {
	Store  store.Store
	Hasher *cryptox.PasswordHasher
}

// Register creates a user with a freshly salted hash of password.
// It performs the following steps:
// 1. Validates username and password
// 2. Checks the username is free
// 3. Hashes the password
// 4. Stores the user, relying on the unique index if someone beat us to it
func (s *CredentialService) Register(ctx context.Context, username, password string) (domain.User, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate input
	username = normalizeUsername(username)
	var v ValidationError
	validateUsername(&v, "username", username)
	validatePassword(&v, "password", password)
	if err := v.err(); err != nil {
		log.Debug("registration rejected", slog.Any("error", err))
		return domain.User{}, err
	}

	// 2. Verify username is available
	_, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err == nil {
		log.Warn("registration attempted with already-taken username",
			slog.String("username", username),
		)
		return domain.User{}, ErrDuplicateHandle
	}
	if !errors.Is(err, store.ErrNotFound) {
		log.Error("failed to check username", slog.Any("error", err))
		return domain.User{}, err
	}

	// 3. Hash the password
	hash, err := s.Hasher.Hash(password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return domain.User{}, err
	}

	// 4. Create the user
	now := time.Now().UTC()
	user := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			log.Warn("registration lost race for username",
				slog.String("username", username),
			)
			return domain.User{}, ErrDuplicateHandle
		}
		log.Error("failed to create user", slog.Any("error", err))
		return domain.User{}, err
	}

	log.Info("user registered",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username),
	)
	return user, nil
}

// Verify returns the user when password matches the stored hash.
// An unknown username is ErrNotFound; callers facing the outside world should
// report it exactly like ErrInvalidCredentials.
func (s *CredentialService) Verify(ctx context.Context, username, password string) (domain.User, error) {
	log := slogx.FromContext(ctx)

	username = normalizeUsername(username)
	var v ValidationError
	if username == "" {
		v.add("username", "is required")
	}
	if password == "" {
		v.add("password", "is required")
	}
	if err := v.err(); err != nil {
		return domain.User{}, err
	}

	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("login attempted for unknown username", slog.String("username", username))
			return domain.User{}, ErrNotFound
		}
		log.Error("failed to fetch user", slog.Any("error", err))
		return domain.User{}, err
	}

	if err := s.Hasher.Verify(password, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			log.Warn("login attempted with wrong password", slog.String("user_id", user.ID))
			return domain.User{}, ErrInvalidCredentials
		}
		log.Error("failed to verify password", slog.String("user_id", user.ID), slog.Any("error", err))
		return domain.User{}, err
	}

	if s.Hasher.NeedsRehash(user.PasswordHash) {
		log.Debug("password hash uses an old cost", slog.String("user_id", user.ID))
	}

	return user, nil
}

// ChangePassword replaces the hash after checking the current password.
// The new password is hashed here and nowhere else.
func (s *CredentialService) ChangePassword(ctx context.Context, userID, current, next string) error {
	log := slogx.FromContext(ctx)

	var v ValidationError
	if current == "" {
		v.add("current_password", "is required")
	}
	validatePassword(&v, "new_password", next)
	if err := v.err(); err != nil {
		return err
	}

	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Token outlived its user.
			log.Warn("password change for unknown user", slog.String("user_id", userID))
			return ErrNotFound
		}
		log.Error("failed to fetch user", slog.Any("error", err))
		return err
	}

	if err := s.Hasher.Verify(current, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			log.Warn("password change with wrong current password", slog.String("user_id", userID))
			return ErrInvalidCredentials
		}
		log.Error("failed to verify password", slog.Any("error", err))
		return err
	}

	hash, err := s.Hasher.Hash(next)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return err
	}

	if err := s.Store.Users().UpdatePasswordHash(ctx, userID, hash); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		log.Error("failed to update password hash", slog.Any("error", err))
		return err
	}

	log.Info("password changed", slog.String("user_id", userID))
	return nil
}
