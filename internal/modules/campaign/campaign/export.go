package campaign

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"strings"

	"github.com/brandhub/core/internal/models"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"
)

var markdownEngine = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Typographer,
	),
	goldmark.WithRendererOptions(
		htmlrenderer.WithHardWraps(),
		htmlrenderer.WithXHTML(),
	),
)

const exportStyle = `body{font-family:system-ui,sans-serif;max-width:760px;margin:2rem auto;padding:0 1rem;line-height:1.55;color:#222}
table{border-collapse:collapse;width:100%}th,td{border:1px solid #ddd;padding:.35rem .5rem;text-align:left}
blockquote{margin:0;padding-left:1rem;border-left:3px solid #ddd;color:#555}`

// RenderMarkdown writes a readable brief of either campaign shape.
func RenderMarkdown(c *models.Campaign) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", c.Goal)
	if c.TargetOutcome != "" {
		fmt.Fprintf(&b, "**Target outcome:** %s  \n", c.TargetOutcome)
	}
	if c.DurationDays > 0 {
		fmt.Fprintf(&b, "**Duration:** %d days  \n", c.DurationDays)
	}
	if c.Status != "" {
		fmt.Fprintf(&b, "**Status:** %s  \n", c.Status)
	}
	fmt.Fprintf(&b, "**Created:** %s\n\n", c.CreatedAt.Format("2006-01-02"))

	if c.Shape() == models.CampaignShapeLegacy {
		writeLegacy(&b, c)
		return b.String()
	}
	writeStaged(&b, c)
	return b.String()
}

func writeLegacy(b *strings.Builder, c *models.Campaign) {
	if c.Strategy != "" {
		fmt.Fprintf(b, "## Strategy\n\n%s\n\n", c.Strategy)
	}
	writeJSONSection(b, "Scripts", c.Scripts)
	writeJSONSection(b, "Visuals", c.Visuals)
}

func writeJSONSection(b *strings.Builder, title string, raw []byte) {
	if len(raw) == 0 {
		return
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, raw, "", "  "); err != nil {
		pretty.Reset()
		pretty.Write(raw)
	}
	fmt.Fprintf(b, "## %s\n\n```json\n%s\n```\n\n", title, pretty.String())
}

func writeStaged(b *strings.Builder, c *models.Campaign) {
	if len(c.PersonaStrategies) > 0 {
		b.WriteString("## Persona strategies\n\n")
		for _, st := range c.PersonaStrategies {
			fmt.Fprintf(b, "### %s\n\n", st.PersonaName)
			fmt.Fprintf(b, "- **Key message:** %s\n", st.KeyMessage)
			fmt.Fprintf(b, "- **Platforms:** %s\n", strings.Join(st.Platforms, ", "))
			if len(st.ContentPillars) > 0 {
				fmt.Fprintf(b, "- **Content pillars:** %s\n", strings.Join(st.ContentPillars, ", "))
			}
			fmt.Fprintf(b, "- **Desired emotion:** %s\n", st.DesiredEmotion)
			fmt.Fprintf(b, "- **Immediate action:** %s (%s intent)\n\n", st.ImmediateAction, st.ActionIntentLevel)
		}
	}

	if cal := c.ContentCalendar; cal != nil && len(cal.Posts) > 0 {
		b.WriteString("## Content calendar\n\n")
		if cal.Summary != "" {
			fmt.Fprintf(b, "%s\n\n", cal.Summary)
		}
		b.WriteString("| Day | Platform | Format | Persona | Theme |\n|---|---|---|---|---|\n")
		for _, p := range cal.Posts {
			fmt.Fprintf(b, "| %d | %s | %s | %s | %s |\n", p.Day, cell(p.Platform), cell(p.Format), cell(p.Persona), cell(p.Theme))
		}
		b.WriteString("\n")
	}

	if len(c.GeneratedCopy) > 0 {
		b.WriteString("## Posts\n\n")
		for _, p := range c.GeneratedCopy {
			fmt.Fprintf(b, "### Day %d: %s %s for %s\n\n", p.Day, p.Platform, p.Format, p.Persona)
			if p.Hook != "" {
				fmt.Fprintf(b, "> %s\n\n", p.Hook)
			}
			if p.Script != "" {
				fmt.Fprintf(b, "%s\n\n", p.Script)
			}
			if len(p.Hashtags) > 0 {
				fmt.Fprintf(b, "%s\n\n", strings.Join(p.Hashtags, " "))
			}
			if p.VisualDirection != "" {
				fmt.Fprintf(b, "*Visual direction:* %s\n\n", p.VisualDirection)
			}
		}
	}
}

func cell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}

// RenderHTML converts RenderMarkdown output into a standalone HTML page.
func RenderHTML(c *models.Campaign) (string, error) {
	var body bytes.Buffer
	if err := markdownEngine.Convert([]byte(RenderMarkdown(c)), &body); err != nil {
		return "", fmt.Errorf("render campaign html: %w", err)
	}
	return fmt.Sprintf("<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\"><title>%s</title><style>%s</style></head><body><article>%s</article></body></html>\n",
		template.HTMLEscapeString(c.Goal), exportStyle, body.String()), nil
}
