package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"agenda/internal/auth"
	apperrors "agenda/internal/errors"
	"agenda/internal/mail"
	"agenda/internal/model"
	"agenda/internal/repository"
)

const bcryptCost = 10

// AuthService handles registration, login sessions, and the password-reset flow.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*model.User, error)
	Login(ctx context.Context, email, password string) (token string, user *model.User, err error)
	Logout(ctx context.Context, sessionID string) error
	RequestPasswordReset(ctx context.Context, email string) error
	VerifyResetToken(ctx context.Context, token string) (*model.User, error)
	ResetPassword(ctx context.Context, token, newPassword string) error
}

type authService struct {
	users    repository.UserRepository
	tokens   *auth.TokenService
	sessions auth.SessionStoreInterface
	mailer   mail.Mailer

	baseURL    string
	sessionTTL time.Duration
	resetTTL   time.Duration
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	users repository.UserRepository,
	tokens *auth.TokenService,
	sessions auth.SessionStoreInterface,
	mailer mail.Mailer,
	baseURL string,
	sessionTTL, resetTTL time.Duration,
) AuthService {
	return &authService{
		users:      users,
		tokens:     tokens,
		sessions:   sessions,
		mailer:     mailer,
		baseURL:    baseURL,
		sessionTTL: sessionTTL,
		resetTTL:   resetTTL,
	}
}

// Register creates a new user with a hashed password. Username and email
// uniqueness are pre-checked so each collision surfaces as a field error.
func (s *authService) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	if existing, err := s.users.FindByUsername(ctx, username); err == nil && existing != nil {
		return nil, apperrors.ErrUsernameTaken
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check username: %w", err)
	}

	if existing, err := s.users.FindByEmail(ctx, email); err == nil && existing != nil {
		return nil, apperrors.ErrEmailTaken
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	if err := s.users.Create(ctx, user); err != nil {
		// Pre-check raced with a concurrent registration.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if _, uerr := s.users.FindByUsername(ctx, username); uerr == nil {
				return nil, apperrors.ErrUsernameTaken
			}
			return nil, apperrors.ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login authenticates a user and establishes a session. Failures are always
// the same generic error regardless of which check failed.
func (s *authService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	sessionID, token, err := s.tokens.IssueSessionToken(user.ID, s.sessionTTL)
	if err != nil {
		return "", nil, fmt.Errorf("issue session token: %w", err)
	}

	if err := s.sessions.Store(ctx, sessionID, user.ID, s.sessionTTL); err != nil {
		return "", nil, fmt.Errorf("store session: %w", err)
	}

	return token, user, nil
}

// Logout revokes the server-side session record. Succeeds for any caller.
func (s *authService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.sessions.Delete(ctx, sessionID)
}

// RequestPasswordReset issues a reset token and mails it as a link. The
// outcome is identical whether or not the email belongs to an account, so
// the endpoint never reveals account existence.
func (s *authService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("find user: %w", err)
	}

	token, err := s.tokens.IssueResetToken(user.ID, s.resetTTL)
	if err != nil {
		return fmt.Errorf("issue reset token: %w", err)
	}

	body := fmt.Sprintf("To reset your password, visit the following link:\n%s/reset_password/%s", s.baseURL, token)
	if err := s.mailer.Send(user.Email, "Password Reset Request", body); err != nil {
		return fmt.Errorf("send reset mail: %w", err)
	}
	return nil
}

// VerifyResetToken resolves the user behind a reset token. Any failure,
// including a user that no longer exists, maps to ErrTokenInvalid.
func (s *authService) VerifyResetToken(ctx context.Context, token string) (*model.User, error) {
	claims, err := s.tokens.VerifyReset(token)
	if err != nil {
		return nil, apperrors.ErrTokenInvalid
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, apperrors.ErrTokenInvalid
	}
	return user, nil
}

// ResetPassword verifies the token and replaces the user's password hash.
func (s *authService) ResetPassword(ctx context.Context, token, newPassword string) error {
	user, err := s.VerifyResetToken(ctx, token)
	if err != nil {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, user, string(hashedPassword)); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}
