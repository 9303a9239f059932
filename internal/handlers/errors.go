package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/rokkam_money_app/internal/apperrors"
	"github.com/gin-gonic/gin"
)

const insufficientFundsMessage = "Insufficient funds in operating account"

// respondError maps a service error onto a status code and JSON body.
// fallback is the message clients see for unexpected errors.
func respondError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	var appErr *apperrors.AppError
	switch {
	case errors.As(err, &appErr):
		logger.Warn(appErr.Message, slog.String("error", err.Error()))
		c.JSON(appErr.Code, gin.H{"error": appErr.Message})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrInvalidTransition), errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Conflicting invoice state", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrInsufficientFunds):
		logger.Warn("Insufficient funds", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": insufficientFundsMessage})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
