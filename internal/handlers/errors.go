package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/huddle-dev/huddle/internal/apperrors"
)

// respondError maps a domain error kind to a transport status. Anything
// unclassified is logged and hidden behind a generic 500.
func respondError(ctx *gin.Context, logger *zap.Logger, err error) {
	var status int

	switch {
	case errors.Is(err, apperrors.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, apperrors.ErrInvalidCredential):
		status = http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrPermissionDenied):
		status = http.StatusForbidden
	case errors.Is(err, apperrors.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperrors.ErrConflict):
		status = http.StatusConflict
	default:
		logger.Error("unhandled error", zap.Error(err), zap.String("path", ctx.FullPath()))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(status, gin.H{"error": err.Error()})
}
