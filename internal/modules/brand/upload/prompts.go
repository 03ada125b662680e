package upload

import (
	"fmt"
	"strings"

	"github.com/brandhub/core/internal/models"
)

const extractionSystemPrompt = "You extract structured brand information from business documents. " +
	"Reply with a single JSON object and nothing else. Omit any field the document does not support."

var schemaByFileType = map[string]string{
	FileTypeBusinessInfo: `{
  "business_name": string,
  "niche": string,
  "owner_name": string,
  "locations": [string],
  "services": [string],
  "business": {"location": string, "price_point": string, "capacity": string, "usps": [string]},
  "programs": [{"name": string, "type": "referral"|"loyalty"|"membership"|"other", "description": string, "details": string}]
}`,
	FileTypeBrandVoice: `{
  "voice": {"tones": [string], "loved_words": [string], "banned_words": [string]},
  "brand_identity": {"colors": [string], "personality": [string], "visual_style": string},
  "content_rules": {"show_prices": bool, "show_faces": bool, "show_location": bool, "topics_to_avoid": [string]}
}`,
	FileTypePersonaResearch: `{
  "personas": [{
    "name": string, "emoji": string, "description": string, "real_world_example": string,
    "demographics": {"age_range": string, "income_tier": "budget"|"moderate"|"affluent"|"luxury", "location_types": [string], "family_status": [string]},
    "psychographics": {"pain_points": [string], "goals": [string], "values": [string]},
    "social_behavior": {"platforms": [string], "content_types": [string], "best_times": [string]}
  }],
  "audience": {"primary_segments": [string], "platforms": [string]}
}`,
}

var focusByFileType = map[string]string{
	FileTypeBusinessInfo:    "the business itself: name, niche, owner, locations, services, positioning and any referral or loyalty programs",
	FileTypeBrandVoice:      "how the brand speaks and looks: tone, words to use or avoid, colors, personality and content rules",
	FileTypePersonaResearch: "the customers: distinct personas with demographics, pain points, goals, values and social media habits (at most 5 entries per psychographic list)",
}

func buildExtractionPrompt(fileType, text string, p *models.BusinessProfile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Read the document below and extract %s.\n\n", focusByFileType[fileType])
	if p != nil {
		fmt.Fprintf(&b, "The document belongs to %q", p.BusinessName)
		if p.Niche != "" {
			fmt.Fprintf(&b, " (%s)", p.Niche)
		}
		b.WriteString(".\n\n")
	}
	b.WriteString("Respond with JSON matching this schema:\n")
	b.WriteString(schemaByFileType[fileType])
	b.WriteString("\n\nDocument:\n\"\"\"\n")
	b.WriteString(text)
	b.WriteString("\n\"\"\"")
	return b.String()
}
