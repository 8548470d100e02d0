package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/huddle-dev/huddle/internal/services"
)

// AuthenticatedUser is the identity placed in the request context after
// token validation.
type AuthenticatedUser struct {
	ID    uint   `json:"id"`
	Login string `json:"login"`
	Role  string `json:"role"`
}

const ContextUserKey = "user"

// Auth validates the Bearer token on every request and resolves it to an
// actor identity. Tokens for deleted or deactivated accounts are rejected
// by the auth service.
func Auth(authService *services.AuthService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")

		if authHeader == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization token is required"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)

		if len(parts) != 2 || parts[0] != "Bearer" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		payload, err := authService.ValidateToken(parts[1])

		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		ctx.Set(ContextUserKey, AuthenticatedUser{
			ID:    payload.UserID,
			Login: payload.Login,
			Role:  payload.Role,
		})
		ctx.Next()
	}
}
