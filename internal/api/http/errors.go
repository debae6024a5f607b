package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// GenericErrorMessage is the only detail a client sees for unexpected failures.
const GenericErrorMessage = "Internal server error"

// Error aborts with a {"message": ...} body.
func Error(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"message": message})
}

// InternalError aborts with the generic 500 body. Callers log the cause first.
func InternalError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, GenericErrorMessage)
}

// AllowedMethods maps a route path to the methods it serves.
type AllowedMethods map[string][]string

// MethodNotAllowed is installed as the engine's NoMethod handler. It answers 405 and lists
// the permitted methods of the requested path in the Allow header.
func MethodNotAllowed(allowed AllowedMethods) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if len(path) > 1 {
			path = strings.TrimSuffix(path, "/")
		}
		if methods, ok := allowed[path]; ok {
			c.Header("Allow", strings.Join(methods, ", "))
		}
		Error(c, http.StatusMethodNotAllowed, "Method not allowed")
	}
}
