package generate

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/brandhub/core/internal/models"
)

const systemPrompt = "You are a social media strategist for small local businesses. " +
	"You always reply with one JSON object that matches the requested schema, with no commentary."

// brandContext is the part of the profile every prompt carries.
type brandContext struct {
	BusinessName  string               `json:"business_name"`
	Niche         string               `json:"niche"`
	Locations     []string             `json:"locations"`
	Services      []string             `json:"services"`
	BrandIdentity models.BrandIdentity `json:"brand_identity"`
	Voice         models.Voice         `json:"voice"`
	ContentRules  models.ContentRules  `json:"content_rules"`
	Business      models.BusinessInfo  `json:"business"`
	Programs      []models.Program     `json:"programs"`
	Audience      models.Audience      `json:"audience"`
}

func renderBrand(p *models.BusinessProfile) string {
	ctx := brandContext{
		BusinessName:  p.BusinessName,
		Niche:         p.Niche,
		Locations:     p.Locations,
		Services:      p.Services,
		BrandIdentity: p.BrandIdentity,
		Voice:         p.Voice,
		ContentRules:  p.ContentRules,
		Business:      p.Business,
		Programs:      p.Programs,
		Audience:      p.Audience,
	}
	return mustJSON(ctx)
}

func mustJSON(v interface{}) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(b)
}

func renderBrief(b models.Brief) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Goal: %s\n", b.Goal)
	if b.TargetOutcome != "" {
		fmt.Fprintf(&sb, "Target outcome: %s\n", b.TargetOutcome)
	}
	if b.DurationDays > 0 {
		fmt.Fprintf(&sb, "Duration: %d days\n", b.DurationDays)
	}
	return sb.String()
}

func personaStrategyPrompt(p *models.BusinessProfile, brief models.Brief) string {
	var sb strings.Builder
	sb.WriteString("Business:\n")
	sb.WriteString(renderBrand(p))
	sb.WriteString("\n\nPersonas:\n")
	sb.WriteString(mustJSON(p.Personas))
	sb.WriteString("\n\nCampaign brief:\n")
	sb.WriteString(renderBrief(brief))
	sb.WriteString(`
For each persona worth targeting with this campaign, decide the message and the action we want.
Respond with:
{"persona_strategies": [{
  "persona_name": string,
  "key_message": string,
  "platforms": [string],
  "content_pillars": [string],
  "desired_emotion": string,
  "immediate_action": string,
  "action_intent_level": "low"|"medium"|"high",
  "rationale": string
}]}`)
	return sb.String()
}

func contentCalendarPrompt(p *models.BusinessProfile, brief models.Brief, approved []models.PersonaStrategy) string {
	var sb strings.Builder
	sb.WriteString("Business:\n")
	sb.WriteString(renderBrand(p))
	sb.WriteString("\n\nCampaign brief:\n")
	sb.WriteString(renderBrief(brief))
	sb.WriteString("\nApproved persona strategies:\n")
	sb.WriteString(mustJSON(approved))
	sb.WriteString(`
Plan the posts for the whole campaign. Only use the platforms listed in the strategies.
Respond with:
{"summary": string, "posts": [{
  "post_id": string,
  "day": number,
  "platform": string,
  "format": string,
  "persona": string,
  "theme": string,
  "angle": string,
  "objective": string,
  "call_to_action": string
}]}`)
	return sb.String()
}

func copywriterPrompt(p *models.BusinessProfile, persona *models.Persona, post models.PlannedPost) string {
	var sb strings.Builder
	sb.WriteString("Business:\n")
	sb.WriteString(renderBrand(p))
	sb.WriteString("\n\nTarget persona:\n")
	sb.WriteString(mustJSON(persona))
	sb.WriteString("\n\nPost plan:\n")
	sb.WriteString(mustJSON(post))
	if len(p.Voice.BannedWords) > 0 {
		fmt.Fprintf(&sb, "\n\nNever use these words: %s.", strings.Join(p.Voice.BannedWords, ", "))
	}
	sb.WriteString(`
Write this post in the brand's voice.
Respond with:
{"hook": string, "script": string, "hashtags": [string], "visual_direction": string}`)
	return sb.String()
}
