package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/codechallenge-go/internal/dependencies/clock"
	"github.com/mcoot/codechallenge-go/internal/model"
	"github.com/mcoot/codechallenge-go/internal/storage"
)

// MaxUsernameLength bounds the names shown on the dashboard
const MaxUsernameLength = 32

// MaxPasswordLength is the longest password bcrypt accepts
const MaxPasswordLength = 72

// Config holds configuration for the auth service
type Config struct {
	BcryptCost int
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		BcryptCost: bcrypt.DefaultCost,
	}
}

// Service checks player credentials. The first login for a username
// registers its password; later logins must match it.
type Service struct {
	storage storage.Credentials
	clock   clock.Clock
	cost    int
	logger  *slog.Logger
}

// New creates a new auth Service
func New(storage storage.Credentials, clock clock.Clock, cfg Config, logger *slog.Logger) *Service {
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = DefaultConfig().BcryptCost
	}
	return &Service{
		storage: storage,
		clock:   clock,
		cost:    cfg.BcryptCost,
		logger:  logger,
	}
}

// ValidateUsername rejects names that cannot be shown or keyed on
func ValidateUsername(username string) error {
	if strings.TrimSpace(username) == "" {
		return fmt.Errorf("%w: empty username", model.ErrMalformedMessage)
	}
	if len(username) > MaxUsernameLength {
		return fmt.Errorf("%w: username longer than %d bytes", model.ErrMalformedMessage, MaxUsernameLength)
	}
	return nil
}

// Authorize logs username in, registering it on first sight. Returns
// model.ErrWrongPassword if the password does not match.
func (s *Service) Authorize(ctx context.Context, username, password string) error {
	if err := ValidateUsername(username); err != nil {
		return err
	}
	if len(password) > MaxPasswordLength {
		return fmt.Errorf("%w: password longer than %d bytes", model.ErrMalformedMessage, MaxPasswordLength)
	}

	cred, err := s.storage.GetCredential(ctx, username)
	if errors.Is(err, model.ErrUsernameNotFound) {
		return s.register(ctx, username, password)
	}
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		s.logger.Info("wrong password", slog.String("username", username))
		return model.ErrWrongPassword
	}
	return nil
}

func (s *Service) register(ctx context.Context, username, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return err
	}

	err = s.storage.SaveCredential(ctx, &model.Credential{
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    s.clock.Now(),
	})
	if errors.Is(err, model.ErrUsernameExists) {
		// Lost a race with a concurrent first login; check against theirs
		return s.Authorize(ctx, username, password)
	}
	if err != nil {
		return err
	}

	s.logger.Info("username registered", slog.String("username", username))
	return nil
}
