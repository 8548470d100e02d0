package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/huddle-dev/huddle/internal/apperrors"
	"github.com/huddle-dev/huddle/internal/models"
)

// TokenPayload is what an access token carries about its subject.
type TokenPayload struct {
	UserID uint   `json:"id"`
	Login  string `json:"login"`
	Role   string `json:"role"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type accessClaims struct {
	Login string `json:"login"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

type refreshClaims struct {
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 access/refresh token pairs.
// Access and refresh tokens are signed with independent secrets so a
// leaked refresh secret cannot mint access tokens.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewTokenService(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *TokenService {
	return &TokenService{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// Issue returns a fresh access/refresh pair for user. The access token
// encodes id, login and role; the refresh token only the id.
func (s *TokenService) Issue(user *models.User) (TokenPair, error) {
	now := time.Now()

	access := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims{
		Login: user.Login,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   itoa(user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
	})

	accessToken, err := access.SignedString(s.accessSecret)
	if err != nil {
		return TokenPair{}, err
	}

	refresh := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   itoa(user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.refreshTTL)),
		},
	})

	refreshToken, err := refresh.SignedString(s.refreshSecret)
	if err != nil {
		return TokenPair{}, err
	}

	return TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// ParseAccess verifies an access token and returns its payload. It does
// not check that the subject still exists; callers needing a live user
// must re-read it.
func (s *TokenService) ParseAccess(tokenString string) (TokenPayload, error) {
	var claims accessClaims

	if err := s.parse(tokenString, &claims, s.accessSecret); err != nil {
		return TokenPayload{}, err
	}

	userID, err := atoi(claims.Subject)
	if err != nil {
		return TokenPayload{}, apperrors.InvalidCredential("invalid token subject")
	}

	return TokenPayload{UserID: userID, Login: claims.Login, Role: claims.Role}, nil
}

// ParseRefresh verifies a refresh token and returns the subject user id.
func (s *TokenService) ParseRefresh(tokenString string) (uint, error) {
	var claims refreshClaims

	if err := s.parse(tokenString, &claims, s.refreshSecret); err != nil {
		return 0, err
	}

	userID, err := atoi(claims.Subject)
	if err != nil {
		return 0, apperrors.InvalidCredential("invalid token subject")
	}

	return userID, nil
}

func (s *TokenService) parse(tokenString string, claims jwt.Claims, secret []byte) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})

	if err != nil || !token.Valid {
		return apperrors.InvalidCredential("invalid or expired token")
	}

	return nil
}
