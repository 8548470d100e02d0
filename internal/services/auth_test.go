package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huddle-dev/huddle/internal/apperrors"
	"github.com/huddle-dev/huddle/internal/auth"
	"github.com/huddle-dev/huddle/internal/models"
)

func newAuthFixture(t *testing.T) (*AuthService, *fakeUserStore) {
	t.Helper()

	users := newFakeUserStore()
	tokens := auth.NewTokenService("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)
	return NewAuthService(users, tokens), users
}

func TestRegister(t *testing.T) {
	service, _ := newAuthFixture(t)

	response, err := service.Register(RegisterInput{
		Login:    "alice",
		Password: "correct horse",
		Email:    "Alice@Example.COM",
	})
	require.NoError(t, err)

	assert.Equal(t, "alice", response.User.Login)
	// Name falls back to the login, email is normalized.
	assert.Equal(t, "alice", response.User.Name)
	assert.Equal(t, "alice@example.com", response.User.Email)
	assert.Equal(t, models.UserRoleUser, response.User.Role)
	assert.True(t, response.User.IsActive)
	assert.NotEmpty(t, response.Tokens.AccessToken)
	assert.NotEmpty(t, response.Tokens.RefreshToken)

	// The issued access token is immediately usable.
	payload, err := service.ValidateToken(response.Tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, response.User.ID, payload.UserID)
	assert.Equal(t, "alice", payload.Login)
}

func TestRegisterConflicts(t *testing.T) {
	service, _ := newAuthFixture(t)

	_, err := service.Register(RegisterInput{Login: "alice", Password: "pw-one-two", Email: "alice@example.com"})
	require.NoError(t, err)

	_, err = service.Register(RegisterInput{Login: "alice", Password: "pw-one-two"})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	_, err = service.Register(RegisterInput{Login: "alice2", Password: "pw-one-two", Email: "ALICE@example.com"})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	_, err = service.Register(RegisterInput{Login: "   ", Password: "pw-one-two"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestLogin(t *testing.T) {
	service, users := newAuthFixture(t)

	registered, err := service.Register(RegisterInput{Login: "alice", Password: "correct horse"})
	require.NoError(t, err)

	response, err := service.Login("alice", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, response.User.ID)

	// Unknown login and wrong password are indistinguishable.
	_, wrongPassword := service.Login("alice", "wrong")
	assert.ErrorIs(t, wrongPassword, apperrors.ErrInvalidCredential)

	_, unknownLogin := service.Login("nobody", "correct horse")
	assert.ErrorIs(t, unknownLogin, apperrors.ErrInvalidCredential)
	assert.Equal(t, wrongPassword.Error(), unknownLogin.Error())

	user, err := users.ByID(registered.User.ID)
	require.NoError(t, err)
	user.IsActive = false
	require.NoError(t, users.Save(user))

	_, err = service.Login("alice", "correct horse")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredential)
}

func TestRefresh(t *testing.T) {
	service, users := newAuthFixture(t)

	registered, err := service.Register(RegisterInput{Login: "alice", Password: "correct horse"})
	require.NoError(t, err)

	refreshed, err := service.Refresh(registered.Tokens.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, refreshed.User.ID)
	assert.NotEmpty(t, refreshed.Tokens.AccessToken)

	// An access token is not accepted as a refresh token.
	_, err = service.Refresh(registered.Tokens.AccessToken)
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredential)

	user, err := users.ByID(registered.User.ID)
	require.NoError(t, err)
	user.IsActive = false
	require.NoError(t, users.Save(user))

	_, err = service.Refresh(registered.Tokens.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredential)
}

func TestValidateToken(t *testing.T) {
	service, users := newAuthFixture(t)

	registered, err := service.Register(RegisterInput{Login: "alice", Password: "correct horse"})
	require.NoError(t, err)

	_, err = service.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredential)

	// A valid signature is not enough once the subject is gone.
	delete(users.users, registered.User.ID)

	_, err = service.ValidateToken(registered.Tokens.AccessToken)
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredential)
}

func TestUpdateProfile(t *testing.T) {
	service, _ := newAuthFixture(t)

	registered, err := service.Register(RegisterInput{Login: "alice", Password: "correct horse"})
	require.NoError(t, err)

	name := "Alice A."
	email := "New@Example.com"

	updated, err := service.UpdateProfile(registered.User.ID, UpdateProfileInput{Name: &name, Email: &email})
	require.NoError(t, err)
	assert.Equal(t, "Alice A.", updated.Name)
	assert.Equal(t, "new@example.com", updated.Email)
	// Login is not patchable.
	assert.Equal(t, "alice", updated.Login)

	blank := "  "
	_, err = service.UpdateProfile(registered.User.ID, UpdateProfileInput{Name: &blank})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	_, err = service.UpdateProfile(999, UpdateProfileInput{Name: &name})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestChangePassword(t *testing.T) {
	service, _ := newAuthFixture(t)

	registered, err := service.Register(RegisterInput{Login: "alice", Password: "correct horse"})
	require.NoError(t, err)

	err = service.ChangePassword(registered.User.ID, "wrong", "new password")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	require.NoError(t, service.ChangePassword(registered.User.ID, "correct horse", "new password"))

	_, err = service.Login("alice", "correct horse")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredential)

	_, err = service.Login("alice", "new password")
	assert.NoError(t, err)
}
