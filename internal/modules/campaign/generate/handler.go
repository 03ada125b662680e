package generate

import (
	"errors"

	"github.com/brandhub/core/internal/pkg/llm"
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
	rg.POST("/generate-campaign", h.generate)
}

// POST /generate-campaign
func (h *Handler) generate(c *gin.Context) {
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	out, err := h.svc.Generate(c.Request.Context(), &req)
	if err != nil {
		WriteError(c, err)
		return
	}
	response.OK(c, out)
}

// WriteError maps generation failures: bad input is 400, upstream trouble 502.
func WriteError(c *gin.Context, err error) {
	var llmErr *llm.Error
	switch {
	case errors.Is(err, ErrMissingParameter), errors.Is(err, ErrUnknownStage):
		response.BadRequest(c, err.Error())
	case errors.Is(err, llm.ErrNoProvider), errors.As(err, &llmErr):
		response.BadGateway(c, err)
	default:
		response.InternalError(c, err)
	}
}
