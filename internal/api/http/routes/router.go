package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	httpapi "github.com/devfolio/portfolio-api/internal/api/http"
	"github.com/devfolio/portfolio-api/internal/api/http/middleware"
	authhttp "github.com/devfolio/portfolio-api/internal/auth/http"
	authmw "github.com/devfolio/portfolio-api/internal/auth/middleware"
	authservice "github.com/devfolio/portfolio-api/internal/auth/service"
	"github.com/devfolio/portfolio-api/internal/logging"
	projectshttp "github.com/devfolio/portfolio-api/internal/projects/http"
	"github.com/devfolio/portfolio-api/internal/projects/service"
)

const (
	ProjectsPath = "/api/projects"
	AuthPath     = "/api/auth"
)

type Deps struct {
	ServiceName string
	Version     string
	Logger      *logging.Logger

	Projects      *service.ProjectService
	Authenticator authservice.Authenticator
	// Verifier is required when ProtectWrites is set.
	Verifier      authmw.TokenVerifier
	ProtectWrites bool

	CORSAllowedOrigins []string
	// RateLimiter is optional; nil disables rate limiting.
	RateLimiter *middleware.RateLimiter
}

// NewRouter builds the gin engine serving the portfolio API.
func NewRouter(dep Deps) *gin.Engine {
	log := dep.Logger
	if log == nil {
		log = logging.NewNop()
	}

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(middleware.RequestIDMiddleware(log), middleware.Recovery(log))
	if len(dep.CORSAllowedOrigins) > 0 {
		r.Use(cors.New(corsConfig(dep.CORSAllowedOrigins)))
	}

	r.NoMethod(httpapi.MethodNotAllowed(httpapi.AllowedMethods{
		ProjectsPath: projectshttp.Methods,
		AuthPath:     authhttp.Methods,
	}))
	r.NoRoute(func(c *gin.Context) {
		httpapi.Error(c, http.StatusNotFound, "Not found")
	})

	httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Projects).RegisterRoutes(r)

	api := r.Group("")
	if dep.RateLimiter != nil {
		api.Use(dep.RateLimiter.Middleware())
	}

	var writeMiddleware []gin.HandlerFunc
	if dep.ProtectWrites {
		writeMiddleware = append(writeMiddleware, authmw.RequireToken(dep.Verifier))
	}
	projectshttp.New(dep.Projects, log).Register(api.Group(ProjectsPath), writeMiddleware...)
	authhttp.New(dep.Authenticator, log).Register(api.Group(AuthPath))

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	if len(origins) == 1 && origins[0] == "*" {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	cfg.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader}
	cfg.ExposeHeaders = []string{middleware.RequestIDHeader}
	return cfg
}
