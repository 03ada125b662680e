package models

import "gorm.io/datatypes"

const (
	CampaignStatusApproved = "approved"
	CampaignStatusDraft    = "draft"
)

// Campaign shapes. Both live in the same table and are both readable.
const (
	CampaignShapeLegacy = "legacy"
	CampaignShapeStaged = "staged"
)

// Brief is the stage-1 input of the campaign wizard.
type Brief struct {
	Goal          string `json:"goal"`
	TargetOutcome string `json:"target_outcome"`
	DurationDays  int    `json:"duration_days"`
}

// PersonaStrategy is the per-persona plan produced by the persona_strategy stage.
type PersonaStrategy struct {
	PersonaID         string   `json:"persona_id"`
	PersonaName       string   `json:"persona_name"`
	KeyMessage        string   `json:"key_message"`
	Platforms         []string `json:"platforms"`
	ContentPillars    []string `json:"content_pillars"`
	DesiredEmotion    string   `json:"desired_emotion"`
	ImmediateAction   string   `json:"immediate_action"`
	ActionIntentLevel string   `json:"action_intent_level"`
	Rationale         string   `json:"rationale"`
}

// PlannedPost is one calendar slot from the content_calendar stage.
type PlannedPost struct {
	PostID       string `json:"post_id"`
	Day          int    `json:"day"`
	Platform     string `json:"platform"`
	Format       string `json:"format"`
	Persona      string `json:"persona"`
	Theme        string `json:"theme"`
	Angle        string `json:"angle"`
	Objective    string `json:"objective"`
	CallToAction string `json:"call_to_action"`
}

type ContentCalendar struct {
	Summary string        `json:"summary"`
	Posts   []PlannedPost `json:"posts"`
}

// GeneratedCopy is the copywriter output for one planned post.
type GeneratedCopy struct {
	PostID          string   `json:"post_id"`
	Day             int      `json:"day"`
	Platform        string   `json:"platform"`
	Format          string   `json:"format"`
	Persona         string   `json:"persona"`
	Hook            string   `json:"hook"`
	Script          string   `json:"script"`
	Hashtags        []string `json:"hashtags"`
	VisualDirection string   `json:"visual_direction"`
	Approved        bool     `json:"approved"`
	Edited          bool     `json:"edited"`
}

// Campaign is a goal-scoped set of generated social posts plus the strategy
// that produced them. Persona references are names only.
type Campaign struct {
	Base          `bson:",inline"`
	ProfileID     string `json:"profile_id"     gorm:"type:char(36);index"`
	Goal          string `json:"goal"           gorm:"type:text"`
	TargetOutcome string `json:"target_outcome" gorm:"type:text"`
	DurationDays  int    `json:"duration_days"`

	Strategy string         `json:"strategy,omitempty" gorm:"type:text"`
	Scripts  datatypes.JSON `json:"scripts,omitempty"`
	Visuals  datatypes.JSON `json:"visuals,omitempty"`

	PersonaStrategies []PersonaStrategy `json:"persona_strategies,omitempty" gorm:"type:text;serializer:json"`
	ContentCalendar   *ContentCalendar  `json:"content_calendar,omitempty"   gorm:"type:text;serializer:json"`
	GeneratedCopy     []GeneratedCopy   `json:"generated_copy,omitempty"     gorm:"type:text;serializer:json"`
	Status            string            `json:"status,omitempty"             gorm:"size:32"`
}

func (Campaign) TableName() string { return "campaigns" }

// Shape reports which flow produced the campaign.
func (c *Campaign) Shape() string {
	if len(c.GeneratedCopy) > 0 || len(c.PersonaStrategies) > 0 || c.ContentCalendar != nil {
		return CampaignShapeStaged
	}
	return CampaignShapeLegacy
}
