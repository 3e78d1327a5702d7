package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/Grupo-NovaTI/BlogApi-sub000/internal/domain"
)

// TokenIssuer mints access tokens for authenticated users.
// Implemented by the JWT issuer in internal/auth.
type TokenIssuer interface {
	Issue(user *domain.User) (token string, expiresAt time.Time, err error)
}

// AuthService handles registration, login and password changes.
type AuthService struct {
	users  *UserService
	issuer TokenIssuer
	logger zerolog.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(users *UserService, issuer TokenIssuer, logger zerolog.Logger) *AuthService {
	return &AuthService{
		users:  users,
		issuer: issuer,
		logger: logger.With().Str("service", "auth").Logger(),
	}
}

// RegisterInput contains the data needed to register a new account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Name     string
	LastName string
}

// RegisterOutput contains the created user and a fresh access token.
type RegisterOutput struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

// Register creates a regular user account and issues a token for it.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*RegisterOutput, error) {
	out, err := s.users.Create(ctx, CreateUserInput{
		Username: input.Username,
		Email:    input.Email,
		Password: input.Password,
		Name:     input.Name,
		LastName: input.LastName,
		Role:     domain.RoleUser,
	})
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := s.issuer.Issue(out.User)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", out.User.ID).Msg("failed to issue token")
		return nil, ErrInternalError
	}

	s.logger.Info().
		Int64("user_id", out.User.ID).
		Str("username", out.User.Username).
		Msg("user registered")

	return &RegisterOutput{
		User:      out.User,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// LoginInput contains the credentials for a login attempt.
type LoginInput struct {
	Username string
	Password string
}

// LoginOutput contains the authenticated user and a fresh access token.
type LoginOutput struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

// Login verifies credentials and issues a token.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginOutput, error) {
	user, err := s.users.Authenticate(ctx, input.Username, input.Password)
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := s.issuer.Issue(user)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", user.ID).Msg("failed to issue token")
		return nil, ErrInternalError
	}

	return &LoginOutput{
		User:      user,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// UpdatePassword changes the password of the authenticated user.
func (s *AuthService) UpdatePassword(ctx context.Context, input UpdatePasswordInput) error {
	return s.users.UpdatePassword(ctx, input)
}
