package generate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/brandhub/core/internal/models"
)

// Stage discriminates generate-campaign requests.
const (
	StagePersonaStrategy = "persona_strategy"
	StageContentCalendar = "content_calendar"
	StageCopywriter      = "copywriter"
)

var (
	ErrMissingParameter = errors.New("missing required parameter")
	ErrUnknownStage     = errors.New("unknown stage")
)

// MissingParamError lists the parameters a stage needed but did not get.
type MissingParamError struct {
	Stage  string
	Params []string
}

func (e *MissingParamError) Error() string {
	return fmt.Sprintf("stage %s requires: %s", e.Stage, strings.Join(e.Params, ", "))
}

func (e *MissingParamError) Is(target error) bool { return target == ErrMissingParameter }

// Request is the generate-campaign body. Which fields are required depends on Stage.
type Request struct {
	Stage              string                   `json:"stage"`
	Profile            *models.BusinessProfile  `json:"profile"`
	Persona            *models.Persona          `json:"persona"`
	Brief              *models.Brief            `json:"brief"`
	ApprovedStrategies []models.PersonaStrategy `json:"approvedStrategies"`
	PostStrategy       *models.PlannedPost      `json:"postStrategy"`
}

type PersonaStrategyResult struct {
	PersonaStrategies []models.PersonaStrategy `json:"persona_strategies"`
}

// CopyResult is the copywriter output for one post.
type CopyResult struct {
	Hook            string   `json:"hook"`
	Script          string   `json:"script"`
	Hashtags        []string `json:"hashtags"`
	VisualDirection string   `json:"visual_direction"`
}

func (r *Request) validate() error {
	var missing []string
	need := func(ok bool, name string) {
		if !ok {
			missing = append(missing, name)
		}
	}
	switch r.Stage {
	case StagePersonaStrategy:
		need(r.Profile != nil, "profile")
		need(r.Brief != nil && strings.TrimSpace(r.Brief.Goal) != "", "brief.goal")
	case StageContentCalendar:
		need(r.Profile != nil, "profile")
		need(r.Brief != nil && strings.TrimSpace(r.Brief.Goal) != "", "brief.goal")
		need(len(r.ApprovedStrategies) > 0, "approvedStrategies")
	case StageCopywriter:
		need(r.Profile != nil, "profile")
		need(r.Persona != nil, "persona")
		need(r.PostStrategy != nil, "postStrategy")
	case "":
		return &MissingParamError{Stage: "(none)", Params: []string{"stage"}}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStage, r.Stage)
	}
	if len(missing) > 0 {
		return &MissingParamError{Stage: r.Stage, Params: missing}
	}
	return nil
}
