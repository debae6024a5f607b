package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	httpapi "github.com/devfolio/portfolio-api/internal/api/http"
	"github.com/devfolio/portfolio-api/internal/logging"
)

// Recovery turns a panic into the generic 500 response and logs it.
func Recovery(log *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if recovered := recover(); recovered != nil {
				log.Error(c.Request.Context(), "panic recovered",
					zap.String("panic", fmt.Sprint(recovered)),
					zap.String("path", c.Request.URL.Path),
					zap.Stack("stack"),
				)
				httpapi.InternalError(c)
			}
		}()
		c.Next()
	}
}
