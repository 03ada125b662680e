package campaign

import (
	"encoding/json"
	"errors"

	"github.com/brandhub/core/internal/models"
)

var (
	ErrNotFound        = errors.New("campaign not found")
	ErrProfileNotFound = errors.New("profile not found")
	ErrDuplicate       = errors.New("campaign already exists")
	ErrGoalRequired    = errors.New("goal is required")
	ErrUnknownFormat   = errors.New("format must be markdown or html")
)

// Export formats.
const (
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
)

// ImportLegacyDTO imports a campaign produced by the single-shot flow.
type ImportLegacyDTO struct {
	ID            string          `json:"id"`
	Goal          string          `json:"goal"`
	TargetOutcome string          `json:"target_outcome"`
	DurationDays  int             `json:"duration_days"`
	Strategy      string          `json:"strategy"`
	Scripts       json.RawMessage `json:"scripts"`
	Visuals       json.RawMessage `json:"visuals"`
}

// View is a campaign plus the shape it was stored in.
type View struct {
	*models.Campaign
	Shape string `json:"shape"`
}

func toView(c *models.Campaign) View {
	return View{Campaign: c, Shape: c.Shape()}
}
