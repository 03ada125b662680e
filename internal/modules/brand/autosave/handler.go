package autosave

import (
	"errors"

	"github.com/brandhub/core/internal/middleware"
	"github.com/brandhub/core/internal/models"
	"github.com/brandhub/core/internal/modules/brand/profile"
	"github.com/brandhub/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	d *Debouncer
}

func NewHandler(d *Debouncer) *Handler {
	return &Handler{d: d}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.PUT("/profiles/:id/draft", h.draft)
}

// PUT /profiles/:id/draft
func (h *Handler) draft(c *gin.Context) {
	var p models.BusinessProfile
	if err := c.ShouldBindJSON(&p); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	p.ID = c.Param("id")
	if err := h.d.Schedule(middleware.CurrentSession(c), &p); err != nil {
		switch {
		case errors.Is(err, profile.ErrNameRequired), errors.Is(err, profile.ErrNotFound):
			response.BadRequest(c, err.Error())
		case errors.Is(err, ErrStopped):
			response.ServiceUnavailable(c, err.Error())
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.Accepted(c, gin.H{"pending": true, "idle_seconds": int(h.d.Idle().Seconds())})
}
