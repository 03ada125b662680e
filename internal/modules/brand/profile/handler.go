package profile

import (
	"errors"
	"fmt"

	"github.com/brandhub/core/internal/middleware"
	"github.com/brandhub/core/internal/models"
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
	g := rg.Group("/profiles")

	g.GET("", h.getAll)
	g.GET("/current", h.current)
	g.GET("/:id", h.get)
	g.POST("", h.create)
	g.PUT("/:id", h.save)
	g.DELETE("/:id", h.delete)
	g.POST("/:id/select", h.selectProfile)

	g.POST("/:id/locations", h.addLocation)
	g.DELETE("/:id/locations", h.removeLocation)
	g.POST("/:id/services", h.addService)
	g.DELETE("/:id/services", h.removeService)

	g.PUT("/:id/personas", h.upsertPersona)
	g.DELETE("/:id/personas/:personaId", h.removePersona)
	g.POST("/:id/personas/:personaId/psychographics/:list", h.addPsychographic)
	g.POST("/:id/personas/:personaId/sets/:list", h.togglePersonaSet)
	g.PUT("/:id/programs", h.upsertProgram)
	g.DELETE("/:id/programs/:programId", h.removeProgram)
}

// GET /profiles
func (h *Handler) getAll(c *gin.Context) {
	items, err := h.svc.GetAll(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, items)
}

// GET /profiles/current
func (h *Handler) current(c *gin.Context) {
	response.OK(c, h.svc.GetCurrent(c.Request.Context(), middleware.CurrentSession(c)))
}

// GET /profiles/:id
func (h *Handler) get(c *gin.Context) {
	p, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if p == nil {
		response.NotFoundMsg(c, ErrNotFound.Error())
		return
	}
	response.OK(c, p)
}

// POST /profiles
func (h *Handler) create(c *gin.Context) {
	var p models.BusinessProfile
	if err := c.ShouldBindJSON(&p); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	saved, err := h.svc.Save(c.Request.Context(), middleware.CurrentSession(c), &p)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Created(c, saved)
}

// PUT /profiles/:id — full replacement, last write wins
func (h *Handler) save(c *gin.Context) {
	var p models.BusinessProfile
	if err := c.ShouldBindJSON(&p); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	p.ID = c.Param("id")
	saved, err := h.svc.Save(c.Request.Context(), middleware.CurrentSession(c), &p)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.OK(c, saved)
}

// DELETE /profiles/:id
func (h *Handler) delete(c *gin.Context) {
	deleted, err := h.svc.Delete(c.Request.Context(), middleware.CurrentSession(c), c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if !deleted {
		response.NotFoundMsg(c, ErrNotFound.Error())
		return
	}
	response.NoContent(c)
}

// POST /profiles/:id/select
func (h *Handler) selectProfile(c *gin.Context) {
	p, err := h.svc.Select(c.Request.Context(), middleware.CurrentSession(c), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.OK(c, SelectResponse{CurrentProfileID: p.ID, Profile: p})
}

func (h *Handler) addLocation(c *gin.Context) {
	h.mutateList(c, AddLocation)
}

func (h *Handler) removeLocation(c *gin.Context) {
	h.mutateList(c, RemoveLocation)
}

func (h *Handler) addService(c *gin.Context) {
	h.mutateList(c, AddService)
}

func (h *Handler) removeService(c *gin.Context) {
	h.mutateList(c, RemoveService)
}

func (h *Handler) mutateList(c *gin.Context, apply func(*models.BusinessProfile, string)) {
	var dto ValueDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	p, err := h.svc.Update(c.Request.Context(), middleware.CurrentSession(c), c.Param("id"), func(p *models.BusinessProfile) error {
		apply(p, dto.Value)
		return nil
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.OK(c, p)
}

// PUT /profiles/:id/personas — create or replace by persona id
func (h *Handler) upsertPersona(c *gin.Context) {
	var persona models.Persona
	if err := c.ShouldBindJSON(&persona); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	p, err := h.svc.Update(c.Request.Context(), middleware.CurrentSession(c), c.Param("id"), func(p *models.BusinessProfile) error {
		_, err := UpsertPersona(p, persona)
		return err
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.OK(c, p)
}

// DELETE /profiles/:id/personas/:personaId
func (h *Handler) removePersona(c *gin.Context) {
	p, err := h.svc.Update(c.Request.Context(), middleware.CurrentSession(c), c.Param("id"), func(p *models.BusinessProfile) error {
		if !RemovePersona(p, c.Param("personaId")) {
			return errPersonaNotFound
		}
		return nil
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.OK(c, p)
}

// POST /profiles/:id/personas/:personaId/psychographics/:list
// Adds to pain_points, goals or values; full lists and duplicates are left as is.
func (h *Handler) addPsychographic(c *gin.Context) {
	list := PsychList(c.Param("list"))
	h.mutatePersona(c, func(persona *models.Persona, value string) bool {
		return AddPsychographic(persona, list, value)
	})
}

// POST /profiles/:id/personas/:personaId/sets/:list
func (h *Handler) togglePersonaSet(c *gin.Context) {
	list := SetList(c.Param("list"))
	h.mutatePersona(c, func(persona *models.Persona, value string) bool {
		return TogglePersonaSet(persona, list, value)
	})
}

func (h *Handler) mutatePersona(c *gin.Context, apply func(*models.Persona, string) bool) {
	var dto ValueDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	p, err := h.svc.Update(c.Request.Context(), middleware.CurrentSession(c), c.Param("id"), func(p *models.BusinessProfile) error {
		persona := personaByID(p, c.Param("personaId"))
		if persona == nil {
			return errPersonaNotFound
		}
		if !apply(persona, dto.Value) {
			return fmt.Errorf("%w: %s", ErrUnknownList, c.Param("list"))
		}
		return nil
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.OK(c, p)
}

// PUT /profiles/:id/programs
func (h *Handler) upsertProgram(c *gin.Context) {
	var program models.Program
	if err := c.ShouldBindJSON(&program); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	p, err := h.svc.Update(c.Request.Context(), middleware.CurrentSession(c), c.Param("id"), func(p *models.BusinessProfile) error {
		_, err := UpsertProgram(p, program)
		return err
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.OK(c, p)
}

// DELETE /profiles/:id/programs/:programId
func (h *Handler) removeProgram(c *gin.Context) {
	p, err := h.svc.Update(c.Request.Context(), middleware.CurrentSession(c), c.Param("id"), func(p *models.BusinessProfile) error {
		if !RemoveProgram(p, c.Param("programId")) {
			return errProgramNotFound
		}
		return nil
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.OK(c, p)
}

var (
	errPersonaNotFound = errors.New("persona not found")
	errProgramNotFound = errors.New("program not found")
)

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, errPersonaNotFound), errors.Is(err, errProgramNotFound):
		response.NotFoundMsg(c, err.Error())
	case errors.Is(err, ErrNameRequired), errors.Is(err, ErrInvalidPersona), errors.Is(err, ErrInvalidProgram),
		errors.Is(err, ErrUnknownList):
		response.BadRequest(c, err.Error())
	default:
		response.InternalError(c, err)
	}
}
