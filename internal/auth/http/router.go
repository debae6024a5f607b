package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Methods lists the methods served on the auth endpoint, for the Allow header.
var Methods = []string{http.MethodPost}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("", h.Login)
}
