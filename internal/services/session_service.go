package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/matrixgesnet/proyecto-cursos/internal/metrics"
	"github.com/matrixgesnet/proyecto-cursos/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrInvalidCredentials is returned for any authentication failure,
	// whether the email is unknown or the password is wrong. Callers must not
	// be able to tell which.
	ErrInvalidCredentials = errors.New("invalid_credentials")

	// ErrNoSession is returned when a token does not resolve to a live session.
	ErrNoSession = errors.New("no_session")
)

const sessionTTL = 24 * time.Hour

// SessionService authenticates users and binds a principal to a bearer token
// backed by a server-side session row. Terminating a session deletes the row,
// so the token dies immediately even though its signature stays valid.
type SessionService interface {
	Authenticate(email, password string) (*models.User, error)
	Establish(user *models.User) (string, error)
	Current(token string) (*models.Principal, error)
	Terminate(token string) error
}

type sessionService struct {
	db     *gorm.DB
	secret []byte
}

func NewSessionService(db *gorm.DB, jwtSecret string) SessionService {
	return &sessionService{db: db, secret: []byte(jwtSecret)}
}

func (s *sessionService) Authenticate(email, password string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, ErrInvalidCredentials
	}
	if !user.CheckPassword(password) {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, ErrInvalidCredentials
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return &user, nil
}

func (s *sessionService) Establish(user *models.User) (string, error) {
	session := models.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: time.Now().UTC().Add(sessionTTL),
	}
	if err := s.db.Create(&session).Error; err != nil {
		return "", fmt.Errorf("creating session: %w", err)
	}

	claims := jwt.MapClaims{
		"sid": session.ID,
		"uid": float64(user.ID),
		"adm": user.IsAdmin,
		"exp": session.ExpiresAt.Unix(),
		"iat": time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing session token: %w", err)
	}
	return signed, nil
}

func (s *sessionService) Current(token string) (*models.Principal, error) {
	sid, err := s.parseSessionID(token)
	if err != nil {
		return nil, ErrNoSession
	}

	var session models.Session
	if err := s.db.First(&session, "id = ?", sid).Error; err != nil {
		return nil, ErrNoSession
	}
	if !session.ExpiresAt.After(time.Now().UTC()) {
		return nil, ErrNoSession
	}

	var user models.User
	if err := s.db.First(&user, session.UserID).Error; err != nil {
		return nil, ErrNoSession
	}

	return &models.Principal{UserID: user.ID, Email: user.Email, IsAdmin: user.IsAdmin}, nil
}

func (s *sessionService) Terminate(token string) error {
	sid, err := s.parseSessionID(token)
	if err != nil {
		// Terminating without a live session is a no-op success.
		return nil
	}
	return s.db.Delete(&models.Session{}, "id = ?", sid).Error
}

// parseSessionID validates the token signature and extracts the session ID.
// Signing method is pinned to HMAC to prevent algorithm confusion.
func (s *sessionService) parseSessionID(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", errors.New("token is invalid")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid token claims format")
	}
	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return "", errors.New("token missing sid claim")
	}
	return sid, nil
}
