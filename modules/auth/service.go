package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/alertflow/relay/pkg/apikey"
	"github.com/alertflow/relay/pkg/logger"
)

// Identity is the result of a successful credential check.
type Identity struct {
	Username string
}

// UserStore is the persistence boundary for API users.
type UserStore interface {
	Find(username string) (*User, error)
	Save(user *User) error
}

// Service issues and validates API keys.
type Service struct {
	store UserStore
	log   *slog.Logger
}

func NewService(store UserStore, log *slog.Logger) *Service {
	return &Service{store: store, log: log}
}

// CreateKey issues a new API key for the username, creating the user on
// first use. The returned secret is the only copy; the store keeps a
// salted hash.
func (s *Service) CreateKey(ctx context.Context, username string) (string, error) {
	if username == "" {
		return "", ErrInvalidCredential
	}

	user, err := s.store.Find(username)
	switch {
	case errors.Is(err, ErrUserNotFound):
		user = &User{
			ID:        uuid.New(),
			Username:  username,
			CreatedAt: time.Now().UTC(),
		}
	case err != nil:
		return "", err
	}

	secret, err := apikey.Generate(username)
	if err != nil {
		return "", err
	}
	salt, err := apikey.NewSalt()
	if err != nil {
		return "", err
	}

	user.Keys = append(user.Keys, KeyRecord{
		ID:        uuid.New(),
		CreatedAt: time.Now().UTC(),
		Salt:      salt,
		Hash:      apikey.Hash(secret, salt),
	})

	if err := s.store.Save(user); err != nil {
		return "", err
	}
	return secret, nil
}

// Validate checks a presented key secret and returns the owning identity.
// The username embedded in the secret selects the user; the secret must
// then match one of that user's key hashes.
func (s *Service) Validate(ctx context.Context, secret string) (Identity, error) {
	username, err := apikey.Username(secret)
	if err != nil {
		s.log.WarnContext(ctx, "api key carries no user information", logger.Component("auth"))
		return Identity{}, ErrInvalidCredential
	}

	user, err := s.store.Find(username)
	switch {
	case errors.Is(err, ErrUserNotFound):
		s.log.WarnContext(ctx, "api key for unknown user",
			logger.Component("auth"), slog.String("username", username))
		return Identity{}, ErrInvalidCredential
	case err != nil:
		return Identity{}, err
	}

	for _, key := range user.Keys {
		if apikey.Matches(key.Hash, secret, key.Salt) {
			return Identity{Username: user.Username}, nil
		}
	}
	return Identity{}, ErrInvalidCredential
}
