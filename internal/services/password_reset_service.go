package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/mentorwise/mentorwise-api/config"
	"github.com/mentorwise/mentorwise-api/internal/models"
	"github.com/mentorwise/mentorwise-api/internal/repository"
	"github.com/mentorwise/mentorwise-api/pkg/logger"
	"github.com/mentorwise/mentorwise-api/pkg/mailer"
	"github.com/mentorwise/mentorwise-api/pkg/metrics"
)

const resetTokenBytes = 32

var (
	ErrWrongAuthProvider = errors.New("account uses google sign-in")
	ErrEmailDelivery     = errors.New("failed to send reset email")
	ErrInvalidResetToken = errors.New("invalid or expired reset token")
)

// PasswordResetService issues and redeems single-use password reset tokens.
// Only the sha256 of a token is stored; the plaintext token exists solely in
// the emailed link.
type PasswordResetService struct {
	userRepo    repository.UserDataSource
	mail        mailer.Sender
	frontendURL string
	tokenTTL    time.Duration
}

// NewPasswordResetService creates a new PasswordResetService
func NewPasswordResetService(userRepo repository.UserDataSource, mail mailer.Sender, cfg *config.Config) *PasswordResetService {
	return &PasswordResetService{
		userRepo:    userRepo,
		mail:        mail,
		frontendURL: cfg.Server.FrontendURL,
		tokenTTL:    time.Duration(cfg.Auth.ResetTokenTTLMinutes) * time.Minute,
	}
}

// RequestReset starts the reset flow for a local account. An unknown email
// returns nil so the endpoint cannot be used to enumerate accounts; a Google
// account returns ErrWrongAuthProvider since it has no password to reset.
// If the email cannot be delivered the stored token is rolled back so a
// half-issued token never lingers.
func (s *PasswordResetService) RequestReset(ctx context.Context, email string) error {
	metrics.PasswordResetRequests.Inc()

	user, err := s.userRepo.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logger.Info("Password reset requested for unknown email")
			return nil
		}
		return err
	}

	if user.AuthProvider == models.ProviderGoogle {
		return ErrWrongAuthProvider
	}

	token, tokenHash, err := newResetToken()
	if err != nil {
		return err
	}

	expires := time.Now().UTC().Add(s.tokenTTL)
	if err := s.userRepo.SetResetToken(ctx, user.ID, tokenHash, expires); err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/reset-password/%s", s.frontendURL, token)
	if err := s.mail.SendPasswordResetEmail(user.Email, resetURL); err != nil {
		logger.Error("Reset email delivery failed, rolling back token",
			zap.String("user_id", user.ID.Hex()), zap.Error(err))
		if clearErr := s.userRepo.ClearResetToken(ctx, user.ID); clearErr != nil {
			logger.Error("Failed to roll back reset token",
				zap.String("user_id", user.ID.Hex()), zap.Error(clearErr))
		}
		return ErrEmailDelivery
	}

	logger.Info("Password reset email sent", zap.String("user_id", user.ID.Hex()))
	return nil
}

// CompleteReset redeems a reset token and sets the new password. The token is
// matched by its sha256 with the expiry checked in the same query, and the
// password update clears the token state in one write so the token cannot be
// redeemed twice.
func (s *PasswordResetService) CompleteReset(ctx context.Context, token, newPassword string) error {
	tokenHash := hashResetToken(token)

	user, err := s.userRepo.GetByResetToken(ctx, tokenHash, time.Now().UTC())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidResetToken
		}
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return err
	}

	if err := s.userRepo.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return err
	}

	metrics.PasswordResetCompletions.Inc()
	logger.Info("Password reset completed", zap.String("user_id", user.ID.Hex()))
	return nil
}

// newResetToken returns the plaintext token and its stored sha256 hex
func newResetToken() (token, tokenHash string, err error) {
	raw := make([]byte, resetTokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", "", fmt.Errorf("failed to generate reset token: %w", err)
	}
	token = hex.EncodeToString(raw)
	return token, hashResetToken(token), nil
}

func hashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
