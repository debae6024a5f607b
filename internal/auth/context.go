package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	CtxUserEmail = "user_email"
)

// UserEmail extracts the authenticated email from the Gin context.
// This is set by middleware.RequireToken
func UserEmail(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxUserEmail))
}
