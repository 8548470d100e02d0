package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huddle-dev/huddle/internal/apperrors"
	"github.com/huddle-dev/huddle/internal/models"
)

func testUser() *models.User {
	user := &models.User{
		Login:    "alice",
		Name:     "Alice",
		Role:     models.UserRoleUser,
		IsActive: true,
	}
	user.ID = 42
	return user
}

func TestIssueAndParseAccess(t *testing.T) {
	service := NewTokenService("access-secret", "refresh-secret", time.Minute, time.Hour)

	pair, err := service.Issue(testUser())
	require.NoError(t, err)

	payload, err := service.ParseAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint(42), payload.UserID)
	assert.Equal(t, "alice", payload.Login)
	assert.Equal(t, models.UserRoleUser, payload.Role)
}

func TestIssueAndParseRefresh(t *testing.T) {
	service := NewTokenService("access-secret", "refresh-secret", time.Minute, time.Hour)

	pair, err := service.Issue(testUser())
	require.NoError(t, err)

	userID, err := service.ParseRefresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

// The two token types use independent secrets and are not
// interchangeable.
func TestTokenTypesAreNotInterchangeable(t *testing.T) {
	service := NewTokenService("access-secret", "refresh-secret", time.Minute, time.Hour)

	pair, err := service.Issue(testUser())
	require.NoError(t, err)

	_, err = service.ParseRefresh(pair.AccessToken)
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredential)

	_, err = service.ParseAccess(pair.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredential)
}

func TestParseAccessRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenService("access-secret", "refresh-secret", time.Minute, time.Hour)
	verifier := NewTokenService("other-secret", "refresh-secret", time.Minute, time.Hour)

	pair, err := issuer.Issue(testUser())
	require.NoError(t, err)

	_, err = verifier.ParseAccess(pair.AccessToken)
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredential)
}

func TestParseAccessRejectsExpiredToken(t *testing.T) {
	service := NewTokenService("access-secret", "refresh-secret", -time.Minute, -time.Minute)

	pair, err := service.Issue(testUser())
	require.NoError(t, err)

	_, err = service.ParseAccess(pair.AccessToken)
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredential)

	_, err = service.ParseRefresh(pair.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredential)
}

func TestParseAccessRejectsGarbage(t *testing.T) {
	service := NewTokenService("access-secret", "refresh-secret", time.Minute, time.Hour)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		_, err := service.ParseAccess(token)
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredential)
	}
}
