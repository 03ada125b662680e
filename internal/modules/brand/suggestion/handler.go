package suggestion

import (
	"errors"

	"github.com/brandhub/core/internal/middleware"
	"github.com/brandhub/core/internal/modules/brand/profile"
	"github.com/brandhub/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/profiles/:id/suggestions")
	g.POST("/diff", h.diff)
	g.POST("/accept", h.accept)
}

// POST /profiles/:id/suggestions/diff
func (h *Handler) diff(c *gin.Context) {
	var s Suggestions
	if err := c.ShouldBindJSON(&s); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	changes, err := h.svc.Diff(c.Request.Context(), c.Param("id"), &s)
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, changes)
}

// POST /profiles/:id/suggestions/accept
func (h *Handler) accept(c *gin.Context) {
	var dto AcceptDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if !dto.All && len(dto.Paths) == 0 {
		response.BadRequest(c, "paths is required unless all is set")
		return
	}
	p, applied, err := h.svc.Accept(c.Request.Context(), middleware.CurrentSession(c), c.Param("id"), &dto)
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, gin.H{"profile": p, "applied": applied})
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, profile.ErrNotFound):
		response.NotFoundMsg(c, err.Error())
	case errors.Is(err, ErrUnknownPath),
		errors.Is(err, profile.ErrNameRequired),
		errors.Is(err, profile.ErrInvalidPersona),
		errors.Is(err, profile.ErrInvalidProgram):
		response.BadRequest(c, err.Error())
	default:
		response.InternalError(c, err)
	}
}
