package services

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/huddle-dev/huddle/internal/apperrors"
	"github.com/huddle-dev/huddle/internal/auth"
	"github.com/huddle-dev/huddle/internal/models"
)

type RegisterInput struct {
	Login    string
	Password string
	Name     string
	Email    string
	Avatar   string
}

type UpdateProfileInput struct {
	Name   *string
	Email  *string
	Avatar *string
}

type AuthResponse struct {
	User   UserResponse   `json:"user"`
	Tokens auth.TokenPair `json:"tokens"`
}

// AuthService registers and authenticates users and fronts the credential
// service for the rest of the system.
type AuthService struct {
	users  UserStore
	tokens *auth.TokenService
}

func NewAuthService(users UserStore, tokens *auth.TokenService) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Register creates an active user with role "user" and issues a token
// pair. Login and email must both be unused.
func (s *AuthService) Register(input RegisterInput) (*AuthResponse, error) {
	login := strings.TrimSpace(input.Login)
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if login == "" {
		return nil, apperrors.InvalidInput("login is required")
	}

	_, err := s.users.ByLoginOrEmail(login, email)

	if err == nil {
		return nil, apperrors.Conflict("login or email already in use")
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, classifyStorageError(err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)

	if err != nil {
		return nil, apperrors.Internal(err)
	}

	name := input.Name
	if name == "" {
		name = login
	}

	user := &models.User{
		Login:        login,
		PasswordHash: string(passwordHash),
		Name:         name,
		Email:        email,
		Avatar:       input.Avatar,
		Role:         models.UserRoleUser,
		IsActive:     true,
	}

	if err := s.users.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Conflict("login or email already in use")
		}
		return nil, classifyStorageError(err)
	}

	return s.respondWithTokens(user)
}

// Login verifies credentials. Unknown login and wrong password produce
// the same error.
func (s *AuthService) Login(login, password string) (*AuthResponse, error) {
	user, err := s.users.ByLogin(login)

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.InvalidCredential("invalid login or password")
		}
		return nil, classifyStorageError(err)
	}

	if !user.IsActive {
		return nil, apperrors.InvalidCredential("account is deactivated")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.InvalidCredential("invalid login or password")
	}

	return s.respondWithTokens(user)
}

// Refresh exchanges a valid refresh token for a fresh pair, re-checking
// that the subject still exists and is active.
func (s *AuthService) Refresh(refreshToken string) (*AuthResponse, error) {
	userID, err := s.tokens.ParseRefresh(refreshToken)

	if err != nil {
		return nil, err
	}

	user, err := s.liveUser(userID)

	if err != nil {
		return nil, err
	}

	return s.respondWithTokens(user)
}

// ValidateToken verifies an access token and confirms its subject is
// still an active user. Used by the auth middleware on every request.
func (s *AuthService) ValidateToken(accessToken string) (auth.TokenPayload, error) {
	payload, err := s.tokens.ParseAccess(accessToken)

	if err != nil {
		return auth.TokenPayload{}, err
	}

	if _, err := s.liveUser(payload.UserID); err != nil {
		return auth.TokenPayload{}, err
	}

	return payload, nil
}

func (s *AuthService) GetProfile(userID uint) (*UserResponse, error) {
	user, err := s.users.ByID(userID)

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, classifyStorageError(err)
	}

	response := newUserResponse(user)
	return &response, nil
}

// UpdateProfile patches display fields only. Login, password hash, role
// and the active flag are never patchable here.
func (s *AuthService) UpdateProfile(userID uint, input UpdateProfileInput) (*UserResponse, error) {
	user, err := s.users.ByID(userID)

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, classifyStorageError(err)
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, apperrors.InvalidInput("name cannot be empty")
		}
		user.Name = strings.TrimSpace(*input.Name)
	}

	if input.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*input.Email))
	}

	if input.Avatar != nil {
		user.Avatar = *input.Avatar
	}

	if err := s.users.Save(user); err != nil {
		return nil, classifyStorageError(err)
	}

	response := newUserResponse(user)
	return &response, nil
}

// ChangePassword re-verifies the current password before hashing the new
// one.
func (s *AuthService) ChangePassword(userID uint, currentPassword, newPassword string) error {
	user, err := s.users.ByID(userID)

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("user not found")
		}
		return classifyStorageError(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return apperrors.InvalidInput("current password is incorrect")
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)

	if err != nil {
		return apperrors.Internal(err)
	}

	user.PasswordHash = string(passwordHash)

	if err := s.users.Save(user); err != nil {
		return classifyStorageError(err)
	}

	return nil
}

// liveUser loads a user for credential checks; a missing or deactivated
// account is a credential failure, not a lookup failure.
func (s *AuthService) liveUser(userID uint) (*models.User, error) {
	user, err := s.users.ByID(userID)

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.InvalidCredential("user no longer exists")
		}
		return nil, classifyStorageError(err)
	}

	if !user.IsActive {
		return nil, apperrors.InvalidCredential("account is deactivated")
	}

	return user, nil
}

func (s *AuthService) respondWithTokens(user *models.User) (*AuthResponse, error) {
	tokens, err := s.tokens.Issue(user)

	if err != nil {
		return nil, apperrors.Internal(err)
	}

	return &AuthResponse{User: newUserResponse(user), Tokens: tokens}, nil
}
