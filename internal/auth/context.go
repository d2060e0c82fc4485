package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// CurrentUserID returns the internal user id set by the auth middleware,
// or "" when the request is unauthenticated.
func CurrentUserID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxUserDBID))
}
