package suggestion

import (
	"errors"

	"github.com/brandhub/core/internal/models"
)

var ErrUnknownPath = errors.New("unknown suggestion path")

// Suggestions is a partial BusinessProfile: a nil field was not suggested.
type Suggestions struct {
	BusinessName  *string                  `json:"business_name,omitempty"`
	Niche         *string                  `json:"niche,omitempty"`
	OwnerName     *string                  `json:"owner_name,omitempty"`
	Locations     *[]string                `json:"locations,omitempty"`
	Services      *[]string                `json:"services,omitempty"`
	BrandIdentity *BrandIdentitySuggestion `json:"brand_identity,omitempty"`
	Voice         *VoiceSuggestion         `json:"voice,omitempty"`
	ContentRules  *ContentRulesSuggestion  `json:"content_rules,omitempty"`
	Business      *BusinessSuggestion      `json:"business,omitempty"`
	Audience      *AudienceSuggestion      `json:"audience,omitempty"`
	Personas      *[]models.Persona        `json:"personas,omitempty"`
	Programs      *[]models.Program        `json:"programs,omitempty"`
}

type BrandIdentitySuggestion struct {
	Colors      *[]string `json:"colors,omitempty"`
	Personality *[]string `json:"personality,omitempty"`
	VisualStyle *string   `json:"visual_style,omitempty"`
}

type VoiceSuggestion struct {
	Tones       *[]string `json:"tones,omitempty"`
	LovedWords  *[]string `json:"loved_words,omitempty"`
	BannedWords *[]string `json:"banned_words,omitempty"`
}

type ContentRulesSuggestion struct {
	ShowPrices    *bool     `json:"show_prices,omitempty"`
	ShowFaces     *bool     `json:"show_faces,omitempty"`
	ShowLocation  *bool     `json:"show_location,omitempty"`
	TopicsToAvoid *[]string `json:"topics_to_avoid,omitempty"`
}

type BusinessSuggestion struct {
	Location   *string   `json:"location,omitempty"`
	PricePoint *string   `json:"price_point,omitempty"`
	Capacity   *string   `json:"capacity,omitempty"`
	USPs       *[]string `json:"usps,omitempty"`
}

type AudienceSuggestion struct {
	PrimarySegments *[]string `json:"primary_segments,omitempty"`
	Platforms       *[]string `json:"platforms,omitempty"`
}

// Change is one field where a suggestion differs from the stored profile.
type Change struct {
	Path      string      `json:"path"`
	Label     string      `json:"label"`
	Current   interface{} `json:"current"`
	Suggested interface{} `json:"suggested"`
}

type AcceptDTO struct {
	Suggestions Suggestions `json:"suggestions"`
	Paths       []string    `json:"paths"`
	All         bool        `json:"all"`
}
