package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	httpapi "github.com/devfolio/portfolio-api/internal/api/http"
	"github.com/devfolio/portfolio-api/internal/auth/domain"
)

// Login exchanges email and password for a signed session token.
func (h *Handler) Login(c *gin.Context) {
	var creds domain.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		httpapi.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	session, err := h.authenticator.Authenticate(c.Request.Context(), creds)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			h.log.Warn(c.Request.Context(), "login rejected")
			httpapi.Error(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		h.log.Error(c.Request.Context(), "login failed", zap.Error(err))
		httpapi.InternalError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": session.Token, "user": session.User})
}
