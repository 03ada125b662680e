package campaign

import (
	"errors"
	"net/http"

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
	rg.POST("/profiles/:id/campaigns", h.importLegacy)
	rg.GET("/profiles/:id/campaigns", h.listByProfile)

	g := rg.Group("/campaigns")
	g.GET("/:id", h.get)
	g.GET("/:id/export", h.export)
	g.DELETE("/:id", h.delete)
}

// POST /profiles/:id/campaigns
func (h *Handler) importLegacy(c *gin.Context) {
	var dto ImportLegacyDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	out, err := h.svc.ImportLegacy(c.Request.Context(), c.Param("id"), &dto)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Created(c, toView(out))
}

// GET /profiles/:id/campaigns
func (h *Handler) listByProfile(c *gin.Context) {
	items, err := h.svc.ListByProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	out := make([]View, len(items))
	for i := range items {
		out[i] = toView(&items[i])
	}
	response.OK(c, out)
}

// GET /campaigns/:id
func (h *Handler) get(c *gin.Context) {
	out, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, toView(out))
}

// GET /campaigns/:id/export?format=markdown|html
func (h *Handler) export(c *gin.Context) {
	format := c.DefaultQuery("format", FormatMarkdown)
	doc, err := h.svc.Export(c.Request.Context(), c.Param("id"), format)
	if err != nil {
		writeError(c, err)
		return
	}
	contentType := "text/markdown; charset=utf-8"
	if format == FormatHTML {
		contentType = "text/html; charset=utf-8"
	}
	c.Data(http.StatusOK, contentType, []byte(doc))
}

// DELETE /campaigns/:id
func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	response.NoContent(c)
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrProfileNotFound):
		response.NotFoundMsg(c, err.Error())
	case errors.Is(err, ErrGoalRequired), errors.Is(err, ErrUnknownFormat):
		response.BadRequest(c, err.Error())
	case errors.Is(err, ErrDuplicate):
		response.Conflict(c, err.Error())
	default:
		response.InternalError(c, err)
	}
}
