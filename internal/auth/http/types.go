package http

import (
	"github.com/devfolio/portfolio-api/internal/auth/service"
	"github.com/devfolio/portfolio-api/internal/logging"
)

type Handler struct {
	authenticator service.Authenticator
	log           *logging.Logger
}

func New(authenticator service.Authenticator, log *logging.Logger) *Handler {
	if log == nil {
		log = logging.NewNop()
	}
	return &Handler{
		authenticator: authenticator,
		log:           log,
	}
}
