package models

// IncomeTier buckets a persona's spending power.
type IncomeTier string

const (
	IncomeBudget   IncomeTier = "budget"
	IncomeModerate IncomeTier = "moderate"
	IncomeAffluent IncomeTier = "affluent"
	IncomeLuxury   IncomeTier = "luxury"
)

func (t IncomeTier) Valid() bool {
	switch t {
	case "", IncomeBudget, IncomeModerate, IncomeAffluent, IncomeLuxury:
		return true
	}
	return false
}

type ProgramType string

const (
	ProgramReferral   ProgramType = "referral"
	ProgramLoyalty    ProgramType = "loyalty"
	ProgramMembership ProgramType = "membership"
	ProgramOther      ProgramType = "other"
)

func (t ProgramType) Valid() bool {
	switch t {
	case ProgramReferral, ProgramLoyalty, ProgramMembership, ProgramOther:
		return true
	}
	return false
}

// BusinessProfile is the aggregate describing one business's brand, voice,
// personas and services. Nested records are stored as JSON columns.
type BusinessProfile struct {
	Base          `bson:",inline"`
	BusinessName  string         `json:"business_name"  gorm:"size:191;not null"`
	Niche         string         `json:"niche"          gorm:"size:191"`
	OwnerName     string         `json:"owner_name"     gorm:"size:191"`
	Locations     StringArray    `json:"locations"      gorm:"type:text"`
	Services      StringArray    `json:"services"       gorm:"type:text"`
	BrandIdentity BrandIdentity  `json:"brand_identity" gorm:"type:text;serializer:json"`
	Voice         Voice          `json:"voice"          gorm:"type:text;serializer:json"`
	ContentRules  ContentRules   `json:"content_rules"  gorm:"type:text;serializer:json"`
	Business      BusinessInfo   `json:"business"       gorm:"type:text;serializer:json"`
	Personas      []Persona      `json:"personas"       gorm:"type:text;serializer:json"`
	Programs      []Program      `json:"programs"       gorm:"type:text;serializer:json"`
	Audience      Audience       `json:"audience"       gorm:"type:text;serializer:json"`
	UploadedFiles []UploadedFile `json:"uploaded_files" gorm:"type:text;serializer:json"`
}

func (BusinessProfile) TableName() string { return "business_profiles" }

type BrandIdentity struct {
	Colors      []string `json:"colors"`
	Personality []string `json:"personality"`
	VisualStyle string   `json:"visual_style"`
}

type Voice struct {
	Tones       []string `json:"tones"`
	LovedWords  []string `json:"loved_words"`
	BannedWords []string `json:"banned_words"`
}

type ContentRules struct {
	ShowPrices    bool     `json:"show_prices"`
	ShowFaces     bool     `json:"show_faces"`
	ShowLocation  bool     `json:"show_location"`
	TopicsToAvoid []string `json:"topics_to_avoid"`
}

type BusinessInfo struct {
	Location   string   `json:"location"`
	PricePoint string   `json:"price_point"`
	Capacity   string   `json:"capacity"`
	USPs       []string `json:"usps"`
}

type Audience struct {
	PrimarySegments []string `json:"primary_segments"`
	Platforms       []string `json:"platforms"`
}

type UploadedFile struct {
	Name       string `json:"name"`
	URL        string `json:"url"`
	FileType   string `json:"file_type"`
	Size       int64  `json:"size"`
	UploadedAt string `json:"uploaded_at"`
}

// Persona is a named customer segment used to target campaign content.
type Persona struct {
	ID               string         `json:"id"`
	Name             string         `json:"name"`
	Emoji            string         `json:"emoji"`
	Description      string         `json:"description"`
	RealWorldExample string         `json:"real_world_example"`
	Demographics     Demographics   `json:"demographics"`
	Psychographics   Psychographics `json:"psychographics"`
	SocialBehavior   SocialBehavior `json:"social_behavior"`
}

type Demographics struct {
	AgeRange      string     `json:"age_range"`
	IncomeTier    IncomeTier `json:"income_tier"`
	LocationTypes []string   `json:"location_types"`
	FamilyStatus  []string   `json:"family_status"`
}

// Psychographics lists are capped, see profile.AddCapped.
type Psychographics struct {
	PainPoints []string `json:"pain_points"`
	Goals      []string `json:"goals"`
	Values     []string `json:"values"`
}

type SocialBehavior struct {
	Platforms    []string `json:"platforms"`
	ContentTypes []string `json:"content_types"`
	BestTimes    []string `json:"best_times"`
}

type Program struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Type        ProgramType `json:"type"`
	Description string      `json:"description"`
	Details     string      `json:"details"`
}
