package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/mutual/internal/match/domain"
	"github.com/aussiebroadwan/mutual/internal/match/store"
	"github.com/aussiebroadwan/mutual/pkg/cryptox"
	"github.com/aussiebroadwan/mutual/pkg/idx"
	"github.com/aussiebroadwan/mutual/pkg/slogx"
)

type UserService struct {
	Store  store.Store
	Tokens *TokenService
}

// Register creates a user. The username is trimmed before it is checked and
// stored; the password must not be blank but is hashed as given.
func (s *UserService) Register(ctx context.Context, username, password string) (domain.User, error) {
	log := slogx.FromContext(ctx)

	username = strings.TrimSpace(username)
	if username == "" || strings.TrimSpace(password) == "" {
		return domain.User{}, ErrInvalidInput
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	u := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Users().GetUserByUsername(ctx, username); err == nil {
			return ErrUsernameTaken
		} else if !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("lookup username: %w", err)
		}

		// The unique constraint catches a concurrent registration on drivers
		// whose transactions do not isolate the lookup above.
		if err := tx.Users().CreateUser(ctx, u); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrUsernameTaken
			}
			return fmt.Errorf("create user: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			log.Info("registration rejected, username taken", slog.String("username", username))
		}
		return domain.User{}, err
	}

	log.Info("user registered", slog.String("user_id", u.ID), slog.String("username", u.Username))
	return u, nil
}

// Authenticate checks the credentials and issues an access token. Unknown
// users and wrong passwords are indistinguishable to the caller.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (domain.AccessToken, error) {
	log := slogx.FromContext(ctx)

	username = strings.TrimSpace(username)
	if username == "" || strings.TrimSpace(password) == "" {
		return domain.AccessToken{}, ErrInvalidInput
	}

	u, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Info("login failed, unknown user", slog.String("username", username))
			return domain.AccessToken{}, ErrInvalidCredentials
		}
		return domain.AccessToken{}, fmt.Errorf("lookup username: %w", err)
	}

	if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			log.Info("login failed, wrong password", slog.String("user_id", u.ID))
			return domain.AccessToken{}, ErrInvalidCredentials
		}
		return domain.AccessToken{}, fmt.Errorf("verify password for %s: %w", u.ID, err)
	}

	tok, err := s.Tokens.Issue(ctx, u)
	if err != nil {
		return domain.AccessToken{}, err
	}

	log.Info("user logged in", slog.String("user_id", u.ID), slog.String("sid", tok.SessionID))
	return tok, nil
}

// ResolveByUsername looks up a user by exact username. A missing user is
// reported through the bool, not as an error.
func (s *UserService) ResolveByUsername(ctx context.Context, username string) (domain.User, bool, error) {
	u, err := s.Store.Users().GetUserByUsername(ctx, username)
	return found(u, err)
}

// ResolveByID looks up a user by id.
func (s *UserService) ResolveByID(ctx context.Context, id string) (domain.User, bool, error) {
	u, err := s.Store.Users().GetUserByID(ctx, id)
	return found(u, err)
}

func found[T any](v T, err error) (T, bool, error) {
	var zero T
	switch {
	case err == nil:
		return v, true, nil
	case errors.Is(err, store.ErrNotFound):
		return zero, false, nil
	default:
		return zero, false, err
	}
}
