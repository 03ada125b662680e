package profile

import (
	"errors"

	"github.com/brandhub/core/internal/models"
)

var (
	ErrNotFound       = errors.New("profile not found")
	ErrNameRequired   = errors.New("business_name is required")
	ErrInvalidPersona = errors.New("invalid persona")
	ErrInvalidProgram = errors.New("invalid program")
	ErrUnknownList    = errors.New("unknown persona list")
)

// ValueDTO carries a single list entry, e.g. a location or a service.
type ValueDTO struct {
	Value string `json:"value" binding:"required"`
}

// SelectResponse is returned after switching the session's current profile.
type SelectResponse struct {
	CurrentProfileID string                  `json:"current_profile_id"`
	Profile          *models.BusinessProfile `json:"profile"`
}
