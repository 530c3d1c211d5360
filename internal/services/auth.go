package services

import (
	"context"
	"errors"
	"time"

	"github.com/vbazhenov/user-accounts/internal/audit"
	"github.com/vbazhenov/user-accounts/internal/logger"
	"github.com/vbazhenov/user-accounts/internal/models"
	"github.com/vbazhenov/user-accounts/internal/repositories"
	"golang.org/x/crypto/bcrypt"
)

// Error variables
var (
	ErrUsernameExists     = errors.New("username already registered")
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrResetTokenInvalid  = errors.New("invalid or expired reset token")
)

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByUsernameOrEmail(ctx context.Context, username, email *string) (*models.UserDB, error)
	GetByID(ctx context.Context, id int64) (*models.UserDB, error)
	ListAll(ctx context.Context) ([]models.UserDB, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Create(ctx context.Context, username, email, passwordHash string) (*models.UserDB, error)
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
}

// ResetTokener mints and validates password-reset tokens.
type ResetTokener interface {
	Generate(ctx context.Context, userID int64) (token, jti string, err error)
	Parse(ctx context.Context, token string) (userID int64, jti string, err error)
}

// UsedTokenStore tracks consumed reset-token ids.
type UsedTokenStore interface {
	MarkUsed(ctx context.Context, jti string, ttl time.Duration) error
	IsUsed(ctx context.Context, jti string) (bool, error)
}

// AuditPublisher records account lifecycle events.
type AuditPublisher interface {
	Publish(ctx context.Context, event audit.Event) error
}

// AuthService handles registration, login, and the password-reset flow.
// It is the single choke point where plaintext passwords are hashed; nothing
// below this layer ever sees a plaintext password.
type AuthService struct {
	reader     UserReader
	writer     UserWriter
	tokens     ResetTokener
	usedTokens UsedTokenStore
	audit      AuditPublisher
	resetTTL   time.Duration
}

// NewAuthService creates a new AuthService instance. auditPub may be nil.
func NewAuthService(
	reader UserReader,
	writer UserWriter,
	tokens ResetTokener,
	usedTokens UsedTokenStore,
	auditPub AuditPublisher,
	resetTTL time.Duration,
) *AuthService {
	return &AuthService{
		reader:     reader,
		writer:     writer,
		tokens:     tokens,
		usedTokens: usedTokens,
		audit:      auditPub,
		resetTTL:   resetTTL,
	}
}

// HashPassword hashes a plaintext password with bcrypt. Each call produces a
// different hash for the same input because of the random salt.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword reports whether the plaintext matches the stored hash.
// Malformed hashes simply fail verification.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Register creates a new user with a unique username and email and returns
// the public projection of the created record.
func (svc *AuthService) Register(ctx context.Context, username, password, email string) (*models.UserPublic, error) {
	existing, err := svc.reader.GetByUsernameOrEmail(ctx, &username, nil)
	if err != nil {
		logger.Log.Errorw("failed to check username", "err", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameExists
	}

	existing, err = svc.reader.GetByUsernameOrEmail(ctx, nil, &email)
	if err != nil {
		logger.Log.Errorw("failed to check email", "err", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	hashedPassword, err := HashPassword(password)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return nil, err
	}

	user, err := svc.writer.Create(ctx, username, email, hashedPassword)
	if err != nil {
		// The unique constraint decides under concurrent registrations;
		// the pre-checks above are only a fast path.
		switch {
		case errors.Is(err, repositories.ErrUsernameTaken):
			return nil, ErrUsernameExists
		case errors.Is(err, repositories.ErrEmailTaken):
			return nil, ErrEmailExists
		}
		logger.Log.Errorw("failed to save user", "err", err)
		return nil, err
	}

	svc.publishAudit(ctx, audit.EventUserRegistered, user)

	public := user.Public()
	return &public, nil
}

// Login authenticates a user by username or email. Every failure returns
// ErrInvalidCredentials so callers cannot learn which part was wrong.
func (svc *AuthService) Login(ctx context.Context, username, email, password string) (*models.UserPublic, error) {
	var usernameFilter, emailFilter *string
	if username != "" {
		usernameFilter = &username
	}
	if email != "" {
		emailFilter = &email
	}

	user, err := svc.reader.GetByUsernameOrEmail(ctx, usernameFilter, emailFilter)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if !CheckPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	svc.publishAudit(ctx, audit.EventUserLoggedIn, user)

	public := user.Public()
	return &public, nil
}

// ListUsers returns the public projection of every registered user.
func (svc *AuthService) ListUsers(ctx context.Context) ([]models.UserPublic, error) {
	users, err := svc.reader.ListAll(ctx)
	if err != nil {
		logger.Log.Errorw("failed to list users", "err", err)
		return nil, err
	}

	public := make([]models.UserPublic, 0, len(users))
	for i := range users {
		public = append(public, users[i].Public())
	}

	return public, nil
}

// ForgotPassword issues a reset token for the named user and returns the
// reset link path the user should follow.
func (svc *AuthService) ForgotPassword(ctx context.Context, username string) (string, error) {
	user, err := svc.reader.GetByUsernameOrEmail(ctx, &username, nil)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return "", err
	}
	if user == nil {
		return "", ErrUserNotFound
	}

	resetToken, _, err := svc.tokens.Generate(ctx, user.ID)
	if err != nil {
		logger.Log.Errorw("failed to generate reset token", "err", err)
		return "", err
	}

	return "/reset-password/" + resetToken, nil
}

// ResetPassword validates the reset token and overwrites the target user's
// password hash. Tokens are single-use: the jti is consumed on success.
func (svc *AuthService) ResetPassword(ctx context.Context, tokenString, newPassword, confirmPassword string) error {
	if newPassword != confirmPassword {
		return ErrPasswordMismatch
	}

	userID, jti, err := svc.tokens.Parse(ctx, tokenString)
	if err != nil {
		logger.Log.Infow("reset token rejected", "err", err)
		return ErrResetTokenInvalid
	}

	used, err := svc.usedTokens.IsUsed(ctx, jti)
	if err != nil {
		logger.Log.Errorw("failed to check reset token", "err", err)
		return err
	}
	if used {
		return ErrResetTokenInvalid
	}

	user, err := svc.reader.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	hashedPassword, err := HashPassword(newPassword)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return err
	}

	if err := svc.writer.UpdatePassword(ctx, user.ID, hashedPassword); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return ErrUserNotFound
		}
		logger.Log.Errorw("failed to update password", "err", err)
		return err
	}

	if err := svc.usedTokens.MarkUsed(ctx, jti, svc.resetTTL); err != nil {
		// The password is already changed; the token will still expire on
		// its own, so this failure is logged rather than surfaced.
		logger.Log.Errorw("failed to mark reset token used", "err", err)
	}

	svc.publishAudit(ctx, audit.EventPasswordReset, user)
	return nil
}

func (svc *AuthService) publishAudit(ctx context.Context, eventType string, user *models.UserDB) {
	if svc.audit == nil {
		return
	}

	err := svc.audit.Publish(ctx, audit.Event{
		Type:     eventType,
		Username: user.Username,
		Email:    user.Email,
	})
	if err != nil {
		logger.Log.Errorw("failed to publish audit event", "type", eventType, "err", err)
	}
}
