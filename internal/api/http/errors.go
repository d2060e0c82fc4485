package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/safra-cheia/budget-backend/internal/apperr"
	projdomain "github.com/safra-cheia/budget-backend/internal/projects/domain"
	txdomain "github.com/safra-cheia/budget-backend/internal/transactions/domain"
)

// RespondError maps domain errors onto the API's status codes and the
// gin.H{"ok": false, ...} envelope. Field-level validation failures carry
// the failing field so the form can key its message.
func RespondError(c *gin.Context, err error) {
	if ve := apperr.AsValidation(err); ve != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": ve.Message, "field": ve.Field})
		return
	}
	if errors.Is(err, apperr.ErrUnauthenticated) {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "not authenticated"})
		return
	}
	if errors.Is(err, projdomain.ErrNotFound) || errors.Is(err, txdomain.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": err.Error()})
		return
	}
	// Storage and unexpected errors surface verbatim, no retry.
	c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
}
