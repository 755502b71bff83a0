// Package service provides the business logic of the Bimax Pro admin
// backend, between the HTTP handlers and the on-disk stores.
package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/bimax-pro/bimax-admin/internal/auth"
	"github.com/bimax-pro/bimax-admin/internal/domain"
	"github.com/bimax-pro/bimax-admin/internal/pkg/crypto"
)

// UserLookup is the part of the credential store the session service needs.
type UserLookup interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

// SessionService authenticates administrators and issues access tokens.
type SessionService struct {
	users  UserLookup
	issuer *auth.TokenIssuer
	logger zerolog.Logger
}

// NewSessionService creates a new SessionService.
func NewSessionService(users UserLookup, issuer *auth.TokenIssuer, logger zerolog.Logger) *SessionService {
	return &SessionService{
		users:  users,
		issuer: issuer,
		logger: logger.With().Str("service", "session").Logger(),
	}
}

// LoginInput contains the credentials presented by the client.
type LoginInput struct {
	Username string
	Password string
}

// LoginOutput contains the issued token and the public user view.
type LoginOutput struct {
	Token string
	User  domain.PublicUser
}

// Login verifies the credentials and issues a signed, time-limited access
// token. Unknown usernames and wrong passwords both yield
// domain.ErrInvalidCredentials so callers cannot probe for accounts.
func (s *SessionService) Login(ctx context.Context, input LoginInput) (*LoginOutput, error) {
	user, err := s.users.GetByUsername(ctx, input.Username)
	if err != nil {
		s.logger.Debug().Str("username", input.Username).Msg("user not found during login")
		return nil, domain.ErrInvalidCredentials
	}

	if !crypto.VerifyPassword(input.Password, user.PasswordHash) {
		s.logger.Debug().Str("username", input.Username).Msg("invalid password during login")
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(user.ID, user.Role)
	if err != nil {
		s.logger.Error().Err(err).Str("username", input.Username).Msg("failed to issue token")
		return nil, err
	}

	s.logger.Info().
		Str("user_id", user.ID).
		Str("username", user.Username).
		Msg("user authenticated")

	return &LoginOutput{Token: token, User: user.PublicView()}, nil
}
