// Package jsonfile implements the on-disk stores of the admin backend.
// Both stores persist whole JSON documents: users.json holds the list of
// administrator accounts, catalog-data.json holds the catalog document.
// There is no partial update; every save rewrites the full file.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"github.com/bimax-pro/bimax-admin/internal/domain"
	"github.com/bimax-pro/bimax-admin/internal/pkg/crypto"
)

// UserStore reads and writes the credential store (users.json).
// The file is created lazily with a default admin account on first access.
type UserStore struct {
	path            string
	defaultPassword string
	mu              sync.Mutex
	logger          zerolog.Logger
}

// NewUserStore creates a UserStore backed by the given file. When the file
// is absent it is created with a single admin user whose password is
// defaultPassword.
func NewUserStore(path, defaultPassword string, logger zerolog.Logger) *UserStore {
	return &UserStore{
		path:            path,
		defaultPassword: defaultPassword,
		logger:          logger.With().Str("store", "users").Logger(),
	}
}

// Load returns all stored users, creating the file with the default admin
// account if it does not exist yet. Read or parse failures are logged and
// yield an empty list; callers treat missing users as failed lookups.
func (s *UserStore) Load(ctx context.Context) []domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *UserStore) loadLocked() []domain.User {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return s.initialize()
		}
		s.logger.Error().Err(err).Str("path", s.path).Msg("failed to read users file")
		return nil
	}

	var users []domain.User
	if err := json.Unmarshal(data, &users); err != nil {
		s.logger.Error().Err(err).Str("path", s.path).Msg("failed to parse users file")
		return nil
	}
	return users
}

// initialize writes the first-boot users file with the default admin.
func (s *UserStore) initialize() []domain.User {
	hash, err := crypto.HashPassword(s.defaultPassword)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to hash default admin password")
		return nil
	}

	users := []domain.User{{
		ID:           "1",
		Username:     domain.DefaultAdminUsername,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
	}}

	if err := s.writeLocked(users); err != nil {
		s.logger.Error().Err(err).Msg("failed to create users file")
		return nil
	}

	s.logger.Info().Str("path", s.path).Msg("created users file with default admin account")
	return users
}

// GetByUsername returns the user with the exact username.
func (s *UserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	for _, u := range s.Load(ctx) {
		if u.Username == username {
			user := u
			return &user, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// Save rewrites the users file with the given list.
func (s *UserStore) Save(ctx context.Context, users []domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeLocked(users)
}

func (s *UserStore) writeLocked(users []domain.User) error {
	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal users: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write users file: %w", err)
	}
	return nil
}
