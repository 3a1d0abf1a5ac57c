package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"delish/services"
)

// respondError maps the service error taxonomy onto HTTP statuses:
// validation errors are form errors, not-found style errors surface as
// 404 with a user-facing message, authorization as 403, and anything
// else as an opaque 500.
func respondError(c *gin.Context, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message, "field": verr.Field})
	case errors.Is(err, services.ErrNotFound),
		errors.Is(err, services.ErrInvalidResetToken),
		errors.Is(err, services.ErrUnknownEmail):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
	}
}
