package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/ledger_reconciler/internal/apperrors"
)

// writeServiceError maps a service error to a status code and JSON body.
// Persistence failures are checked first: they may wrap a not-found from inside a transaction.
func writeServiceError(c *gin.Context, logger *slog.Logger, err error, action string) {
	var (
		vErr *apperrors.ValidationError
		pErr *apperrors.PermissionError
	)
	switch {
	case errors.Is(err, apperrors.ErrPersistence):
		logger.Error("Failed to "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
	case errors.As(err, &vErr):
		logger.Warn("Validation error", slog.String("kind", string(vErr.Kind)), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": vErr.Kind})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNoReference), errors.Is(err, apperrors.ErrUnsupportedReferenceKind):
		logger.Warn("Entry cannot be processed", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.As(err, &pErr):
		logger.Warn("Permission denied", slog.String("kind", string(pErr.Kind)), slog.String("error", err.Error()))
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error(), "kind": pErr.Kind})
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("Permission denied", slog.String("error", err.Error()))
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, apperrors.ErrConflict):
		logger.Warn("Conflicting update", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": "The entry was changed by someone else, reload and retry"})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	default:
		logger.Error("Failed to "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
	}
}
