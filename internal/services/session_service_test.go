package services

import (
	"testing"
	"time"

	"github.com/matrixgesnet/proyecto-cursos/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testJWTSecret = "test-jwt-secret-key-32-characters"

func registerTestUser(t *testing.T, db *gorm.DB, email, password string) *models.User {
	t.Helper()
	user, err := NewUserService(db).Register(email, password)
	require.NoError(t, err)
	return user
}

func TestAuthenticateSuccess(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSessionService(db, testJWTSecret)
	registerTestUser(t, db, "a@x.com", "pw1secret")

	user, err := svc.Authenticate("a@x.com", "pw1secret")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", user.Email)
}

func TestAuthenticateFailureIsGeneric(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSessionService(db, testJWTSecret)
	registerTestUser(t, db, "a@x.com", "pw1secret")

	// Wrong password and unknown email must be indistinguishable.
	_, errWrongPassword := svc.Authenticate("a@x.com", "nope")
	_, errUnknownEmail := svc.Authenticate("nobody@x.com", "pw1secret")

	assert.ErrorIs(t, errWrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, errUnknownEmail, ErrInvalidCredentials)
	assert.Equal(t, errWrongPassword, errUnknownEmail)
}

func TestEstablishAndCurrent(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSessionService(db, testJWTSecret)
	user := registerTestUser(t, db, "a@x.com", "pw1secret")

	token, err := svc.Establish(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	principal, err := svc.Current(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, principal.UserID)
	assert.Equal(t, "a@x.com", principal.Email)
	assert.False(t, principal.IsAdmin)
}

func TestCurrentRejectsGarbageToken(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSessionService(db, testJWTSecret)

	_, err := svc.Current("not-a-token")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestCurrentRejectsForeignSignature(t *testing.T) {
	db := setupTestDB(t)
	user := registerTestUser(t, db, "a@x.com", "pw1secret")

	other := NewSessionService(db, "some-other-secret-entirely-here!!")
	token, err := other.Establish(user)
	require.NoError(t, err)

	svc := NewSessionService(db, testJWTSecret)
	_, err = svc.Current(token)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestTerminateInvalidatesToken(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSessionService(db, testJWTSecret)
	user := registerTestUser(t, db, "a@x.com", "pw1secret")

	token, err := svc.Establish(user)
	require.NoError(t, err)

	require.NoError(t, svc.Terminate(token))

	// The signature is still valid but the session row is gone.
	_, err = svc.Current(token)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestTerminateWithoutSessionIsNoop(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSessionService(db, testJWTSecret)

	assert.NoError(t, svc.Terminate(""))
	assert.NoError(t, svc.Terminate("garbage"))
}

func TestCurrentRejectsExpiredSession(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSessionService(db, testJWTSecret)
	user := registerTestUser(t, db, "a@x.com", "pw1secret")

	token, err := svc.Establish(user)
	require.NoError(t, err)

	// Age the session row past its expiry.
	err = db.Model(&models.Session{}).
		Where("user_id = ?", user.ID).
		Update("expires_at", time.Now().UTC().Add(-time.Minute)).Error
	require.NoError(t, err)

	_, err = svc.Current(token)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestEachLoginGetsFreshSession(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSessionService(db, testJWTSecret)
	user := registerTestUser(t, db, "a@x.com", "pw1secret")

	first, err := svc.Establish(user)
	require.NoError(t, err)
	second, err := svc.Establish(user)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	// Terminating one session leaves the other alive.
	require.NoError(t, svc.Terminate(first))
	_, err = svc.Current(second)
	assert.NoError(t, err)
}
