package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	httpapi "github.com/devfolio/portfolio-api/internal/api/http"
	"github.com/devfolio/portfolio-api/internal/projects/domain"
)

func (h *Handler) list(c *gin.Context) {
	f := domain.Filter{
		Category:   c.Query("category"),
		Technology: c.Query("technology"),
		// only the literal "false" shows drafts
		IncludeUnpublished: c.DefaultQuery("published", "true") == "false",
	}

	items, err := h.svc.List(c.Request.Context(), f)
	if err != nil {
		h.internalError(c, "list projects", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": items})
}

func (h *Handler) create(c *gin.Context) {
	var req domain.NewProject
	if err := c.ShouldBindJSON(&req); err != nil {
		httpapi.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	p, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidProject) {
			httpapi.Error(c, http.StatusBadRequest, err.Error())
			return
		}
		h.internalError(c, "create project", err)
		return
	}

	h.log.Info(c.Request.Context(), "project created", zap.String("project_id", p.ID))
	c.JSON(http.StatusCreated, gin.H{"project": p})
}

func (h *Handler) update(c *gin.Context) {
	id := c.Query("id")

	var patch domain.Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		httpapi.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	p, err := h.svc.Update(c.Request.Context(), id, patch)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			httpapi.Error(c, http.StatusNotFound, "Project not found")
			return
		}
		if errors.Is(err, domain.ErrInvalidProject) {
			httpapi.Error(c, http.StatusBadRequest, err.Error())
			return
		}
		h.internalError(c, "update project", err)
		return
	}

	h.log.Info(c.Request.Context(), "project updated", zap.String("project_id", p.ID))
	c.JSON(http.StatusOK, gin.H{"project": p})
}

func (h *Handler) delete(c *gin.Context) {
	id := c.Query("id")

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			httpapi.Error(c, http.StatusNotFound, "Project not found")
			return
		}
		h.internalError(c, "delete project", err)
		return
	}

	h.log.Info(c.Request.Context(), "project deleted", zap.String("project_id", id))
	c.JSON(http.StatusOK, gin.H{"message": "Project deleted successfully"})
}

// internalError logs the cause and answers with the fixed generic 500 body.
func (h *Handler) internalError(c *gin.Context, operation string, err error) {
	h.log.Error(c.Request.Context(), "request failed",
		zap.String("operation", operation),
		zap.Error(err),
	)
	httpapi.InternalError(c)
}
