package wizard

import (
	"errors"
	"strconv"

	"github.com/brandhub/core/internal/middleware"
	"github.com/brandhub/core/internal/models"
	"github.com/brandhub/core/internal/modules/brand/profile"
	"github.com/brandhub/core/internal/modules/campaign/generate"
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
	g := rg.Group("/wizards")

	g.POST("", h.start)
	g.GET("/:id", h.get)
	g.POST("/:id/brief", h.brief)
	g.POST("/:id/back", h.back)

	g.PUT("/:id/strategies/:index", h.updateStrategy)
	g.POST("/:id/strategies", h.addStrategy)
	g.DELETE("/:id/strategies/:index", h.removeStrategy)
	g.POST("/:id/strategies/approve", h.approveStrategies)

	g.POST("/:id/copy", h.generateCopy)
	g.PATCH("/:id/posts/:index", h.editPost)
	g.POST("/:id/posts/:index/regenerate", h.regeneratePost)
	g.POST("/:id/posts/:index/approve", h.approvePost)
	g.POST("/:id/posts/approve-all", h.approveAll)
}

type View struct {
	*State
	StageName       string `json:"stage_name"`
	StrategiesValid bool   `json:"strategies_valid"`
	ApprovedCount   int    `json:"approved_count"`
}

func toView(st *State) View {
	return View{
		State:           st,
		StageName:       st.Stage.String(),
		StrategiesValid: StrategiesValid(st.PersonaStrategies),
		ApprovedCount:   st.ApprovedCount(),
	}
}

type StartDTO struct {
	ProfileID string `json:"profile_id"`
}

type AddStrategyDTO struct {
	Persona string `json:"persona" binding:"required"`
}

// POST /wizards
func (h *Handler) start(c *gin.Context) {
	var dto StartDTO
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&dto); err != nil {
			response.BadRequest(c, err.Error())
			return
		}
	}
	st, err := h.svc.Start(c.Request.Context(), middleware.CurrentSession(c), dto.ProfileID)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Created(c, toView(st))
}

// GET /wizards/:id
func (h *Handler) get(c *gin.Context) {
	st, err := h.svc.Get(c.Request.Context(), middleware.CurrentSession(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, toView(st))
}

// POST /wizards/:id/brief
func (h *Handler) brief(c *gin.Context) {
	var brief models.Brief
	if err := c.ShouldBindJSON(&brief); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	h.reply(c)(h.svc.SubmitBrief(c.Request.Context(), middleware.CurrentSession(c), c.Param("id"), brief))
}

// POST /wizards/:id/back
func (h *Handler) back(c *gin.Context) {
	h.reply(c)(h.svc.Back(c.Request.Context(), middleware.CurrentSession(c), c.Param("id")))
}

// PUT /wizards/:id/strategies/:index
func (h *Handler) updateStrategy(c *gin.Context) {
	index, ok := indexParam(c)
	if !ok {
		return
	}
	var st models.PersonaStrategy
	if err := c.ShouldBindJSON(&st); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	h.reply(c)(h.svc.UpdateStrategy(c.Request.Context(), middleware.CurrentSession(c), c.Param("id"), index, st))
}

// POST /wizards/:id/strategies
func (h *Handler) addStrategy(c *gin.Context) {
	var dto AddStrategyDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	h.reply(c)(h.svc.AddStrategy(c.Request.Context(), middleware.CurrentSession(c), c.Param("id"), dto.Persona))
}

// DELETE /wizards/:id/strategies/:index
func (h *Handler) removeStrategy(c *gin.Context) {
	index, ok := indexParam(c)
	if !ok {
		return
	}
	h.reply(c)(h.svc.RemoveStrategy(c.Request.Context(), middleware.CurrentSession(c), c.Param("id"), index))
}

// POST /wizards/:id/strategies/approve
func (h *Handler) approveStrategies(c *gin.Context) {
	h.reply(c)(h.svc.ApproveStrategies(c.Request.Context(), middleware.CurrentSession(c), c.Param("id")))
}

// POST /wizards/:id/copy
func (h *Handler) generateCopy(c *gin.Context) {
	h.reply(c)(h.svc.GenerateCopy(c.Request.Context(), middleware.CurrentSession(c), c.Param("id")))
}

// PATCH /wizards/:id/posts/:index
func (h *Handler) editPost(c *gin.Context) {
	index, ok := indexParam(c)
	if !ok {
		return
	}
	var edit PostEdit
	if err := c.ShouldBindJSON(&edit); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	h.reply(c)(h.svc.EditPost(c.Request.Context(), middleware.CurrentSession(c), c.Param("id"), index, edit))
}

// POST /wizards/:id/posts/:index/regenerate
func (h *Handler) regeneratePost(c *gin.Context) {
	index, ok := indexParam(c)
	if !ok {
		return
	}
	h.reply(c)(h.svc.RegeneratePost(c.Request.Context(), middleware.CurrentSession(c), c.Param("id"), index))
}

// POST /wizards/:id/posts/:index/approve
func (h *Handler) approvePost(c *gin.Context) {
	index, ok := indexParam(c)
	if !ok {
		return
	}
	h.reply(c)(h.svc.ApprovePost(c.Request.Context(), middleware.CurrentSession(c), c.Param("id"), index))
}

// POST /wizards/:id/posts/approve-all
func (h *Handler) approveAll(c *gin.Context) {
	h.reply(c)(h.svc.ApproveAll(c.Request.Context(), middleware.CurrentSession(c), c.Param("id")))
}

func (h *Handler) reply(c *gin.Context) func(*State, error) {
	return func(st *State, err error) {
		if err != nil {
			writeError(c, err)
			return
		}
		response.OK(c, toView(st))
	}
}

func indexParam(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		response.BadRequest(c, "index must be a non-negative integer")
		return 0, false
	}
	return index, true
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, profile.ErrNotFound):
		response.NotFoundMsg(c, err.Error())
	case errors.Is(err, ErrCompleted), errors.Is(err, ErrInvalidTransition):
		response.Conflict(c, err.Error())
	case errors.Is(err, ErrGoalRequired), errors.Is(err, ErrIndexOutOfRange), errors.Is(err, ErrPersonaNotFound):
		response.BadRequest(c, err.Error())
	case errors.Is(err, ErrStrategiesIncomplete), errors.Is(err, ErrNoPlannedPosts):
		response.UnprocessableEntity(c, err.Error())
	default:
		generate.WriteError(c, err)
	}
}
