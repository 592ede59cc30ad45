package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/napat-t/task-tracker-api/internal/config"
	"github.com/napat-t/task-tracker-api/internal/model"
	"github.com/napat-t/task-tracker-api/internal/repository"
	"github.com/napat-t/task-tracker-api/internal/security"
	"github.com/napat-t/task-tracker-api/internal/token"
)

// PasswordResetUsecase defines the business logic for password reset operations.
type PasswordResetUsecase interface {
	// RequestReset initiates the password reset process for a given email.
	RequestReset(ctx context.Context, email string) error

	// CompleteReset sets a new password for the user holding the token and
	// consumes the token.
	CompleteReset(ctx context.Context, tokenValue, newPassword string) error

	// ValidateResetToken checks that the token exists and has not expired.
	ValidateResetToken(ctx context.Context, tokenValue string) error
}

// ResetMailer delivers the password reset email.
type ResetMailer interface {
	SendHTML(to []string, subject, htmlBody string) error
}

type passwordResetUsecase struct {
	userRepo repository.UserRepository
	tokens   *token.Generator
	mailer   ResetMailer
	cfg      *config.Config
}

// NewPasswordResetUsecase creates a new instance of PasswordResetUsecase.
func NewPasswordResetUsecase(
	userRepo repository.UserRepository,
	tokens *token.Generator,
	mailer ResetMailer,
	cfg *config.Config,
) PasswordResetUsecase {
	return &passwordResetUsecase{
		userRepo: userRepo,
		tokens:   tokens,
		mailer:   mailer,
		cfg:      cfg,
	}
}

func (u *passwordResetUsecase) RequestReset(ctx context.Context, email string) error {
	user, err := u.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// To prevent email enumeration, do not reveal that the email does not exist.
			return nil
		}
		return &StorageError{Op: "get user by email", Err: err}
	}

	tokenValue, expiresAt, err := u.tokens.NewResetToken()
	if err != nil {
		return err
	}

	// Overwrites any outstanding token; only the newest one stays valid.
	if _, err := u.userRepo.SetResetToken(ctx, user.ID.Hex(), tokenValue, expiresAt); err != nil {
		return &StorageError{Op: "set reset token", Err: err}
	}

	resetLink := fmt.Sprintf("%s/%s", u.cfg.ResetBaseURL, tokenValue)
	htmlBody := fmt.Sprintf(`
		<p>Hi,</p>
		<p>We received a request to reset the password for your account.</p>
		<p>If you made this request, please click the link below to create a new password:</p>

		<p><a href="%s">%s</a></p>

		<p>This link will expire in %s for your security.</p>
		<p>If you did not request a password reset, you can safely ignore this email.</p>

		<p>Thank you,</p>
		<p>Task Tracker Team</p>
	`, resetLink, resetLink, u.cfg.ResetTokenTTL)

	// The token is already persisted and stays usable even when delivery
	// fails; the caller decides whether to retry the notification.
	if err := u.mailer.SendHTML([]string{user.Email}, "Password Reset Request", htmlBody); err != nil {
		return &NotificationError{Op: "send reset email", Err: err}
	}

	return nil
}

func (u *passwordResetUsecase) CompleteReset(ctx context.Context, tokenValue, newPassword string) error {
	user, err := u.lookupByToken(ctx, tokenValue)
	if err != nil {
		return err
	}

	passwordHash, err := security.HashPassword(newPassword)
	if err != nil {
		return err
	}

	if _, err := u.userRepo.UpdatePassword(ctx, user.ID.Hex(), passwordHash); err != nil {
		return &StorageError{Op: "update password", Err: err}
	}

	// Consume the token so it cannot be replayed. A failed clear fails the
	// whole call; the caller must not report success while the token is
	// still live.
	if _, err := u.userRepo.ClearResetToken(ctx, user.ID.Hex()); err != nil {
		return &StorageError{Op: "clear reset token", Err: err}
	}

	return nil
}

func (u *passwordResetUsecase) ValidateResetToken(ctx context.Context, tokenValue string) error {
	_, err := u.lookupByToken(ctx, tokenValue)
	return err
}

func (u *passwordResetUsecase) lookupByToken(ctx context.Context, tokenValue string) (*model.User, error) {
	if tokenValue == "" {
		return nil, ErrInvalidToken
	}

	user, err := u.userRepo.GetUserByResetToken(ctx, tokenValue)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrInvalidToken
		}
		return nil, &StorageError{Op: "get user by reset token", Err: err}
	}

	if user.ResetToken == nil || user.ResetTokenExpiresAt == nil || *user.ResetToken != tokenValue {
		return nil, ErrInvalidToken
	}

	if !time.Now().Before(*user.ResetTokenExpiresAt) {
		return nil, ErrTokenExpired
	}

	return user, nil
}
