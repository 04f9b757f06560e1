package services

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/matrixgesnet/proyecto-cursos/internal/metrics"
	"github.com/matrixgesnet/proyecto-cursos/internal/models"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ErrResetTokenInvalid is returned when a reset token does not match any user
// or has expired. The two cases are indistinguishable to the caller.
var ErrResetTokenInvalid = errors.New("reset_token_invalid")

const resetTokenTTL = time.Hour

// Notifier delivers a reset token to the user out of band. Delivery failures
// never fail token issuance.
type Notifier interface {
	SendPasswordReset(email, token string) error
}

// LogNotifier writes the reset link to the application log instead of sending
// real mail. It stands in for an email provider in development.
type LogNotifier struct{}

func (LogNotifier) SendPasswordReset(email, token string) error {
	log.WithFields(log.Fields{
		"email": email,
		"token": token,
	}).Info("Password reset requested, delivering token out of band")
	return nil
}

// PasswordResetService issues time-limited single-use tokens and redeems them
// to rotate a user's credential.
type PasswordResetService interface {
	// RequestReset issues a token for the given email. It reports success even
	// when the email is unknown so callers cannot probe which addresses exist.
	RequestReset(email string) error
	// Redeem rotates the credential of the user holding the token, then
	// clears the token so it can never validate again.
	Redeem(token, newPassword string) error
}

type passwordResetService struct {
	db       *gorm.DB
	notifier Notifier
}

func NewPasswordResetService(db *gorm.DB, notifier Notifier) PasswordResetService {
	return &passwordResetService{db: db, notifier: notifier}
}

func (s *passwordResetService) RequestReset(email string) error {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Same outcome as the happy path; no account enumeration.
			return nil
		}
		return err
	}

	token, err := generateResetToken()
	if err != nil {
		return fmt.Errorf("generating reset token: %w", err)
	}

	expiresAt := time.Now().UTC().Add(resetTokenTTL)
	err = s.db.Model(&user).Updates(map[string]interface{}{
		"reset_token":            token,
		"reset_token_expires_at": expiresAt,
	}).Error
	if err != nil {
		return err
	}

	metrics.ResetTokensIssuedTotal.Inc()

	// Fire and forget: the token is already committed, delivery problems are
	// logged but do not surface to the caller.
	go func(email, token string) {
		if err := s.notifier.SendPasswordReset(email, token); err != nil {
			log.WithError(err).WithField("email", email).Error("Failed to deliver password reset token")
		}
	}(email, token)

	return nil
}

func (s *passwordResetService) Redeem(token, newPassword string) error {
	if token == "" {
		metrics.ResetRedemptionsTotal.WithLabelValues("invalid").Inc()
		return ErrResetTokenInvalid
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Where("reset_token = ?", token).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrResetTokenInvalid
			}
			return err
		}

		if user.ResetTokenExpiresAt == nil || !user.ResetTokenExpiresAt.After(time.Now().UTC()) {
			return ErrResetTokenInvalid
		}

		// Rotation goes through the user service, scoped to this transaction
		// so the rehash and the token clearing commit together; a redeemed
		// token must never validate again.
		if err := NewUserService(tx).ChangePassword(user.ID, newPassword); err != nil {
			return err
		}

		return tx.Model(&user).Updates(map[string]interface{}{
			"reset_token":            "",
			"reset_token_expires_at": nil,
		}).Error
	})

	if err != nil {
		if errors.Is(err, ErrResetTokenInvalid) {
			metrics.ResetRedemptionsTotal.WithLabelValues("invalid").Inc()
		}
		return err
	}

	metrics.ResetRedemptionsTotal.WithLabelValues("success").Inc()
	return nil
}

// generateResetToken returns a 256-bit random token in URL-safe base64.
func generateResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
