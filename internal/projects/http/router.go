package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Methods lists the methods served on the projects collection, for the Allow header.
var Methods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete}

// Register attaches project routes to the given router group. writeMiddleware runs
// before the mutating endpoints only.
func (h *Handler) Register(rg *gin.RouterGroup, writeMiddleware ...gin.HandlerFunc) {
	write := func(handler gin.HandlerFunc) []gin.HandlerFunc {
		chain := make([]gin.HandlerFunc, 0, len(writeMiddleware)+1)
		chain = append(chain, writeMiddleware...)
		return append(chain, handler)
	}

	rg.GET("", h.list)
	rg.POST("", write(h.create)...)
	rg.PUT("", write(h.update)...)
	rg.DELETE("", write(h.delete)...)
}
