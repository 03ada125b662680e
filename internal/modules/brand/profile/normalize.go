package profile

import (
	"fmt"
	"strings"

	"github.com/brandhub/core/internal/models"
	"github.com/google/uuid"
)

// normalizeProfile trims identity fields, replaces nil lists with empty ones and
// re-applies persona list rules.
func normalizeProfile(p *models.BusinessProfile) error {
	p.BusinessName = strings.TrimSpace(p.BusinessName)
	p.Niche = strings.TrimSpace(p.Niche)
	p.OwnerName = strings.TrimSpace(p.OwnerName)
	if p.BusinessName == "" {
		return ErrNameRequired
	}

	p.Locations = rebuild(p.Locations, AddValue)
	p.Services = rebuild(p.Services, AddValue)
	p.BrandIdentity.Colors = nonNil(p.BrandIdentity.Colors)
	p.BrandIdentity.Personality = nonNil(p.BrandIdentity.Personality)
	p.Voice.Tones = rebuild(p.Voice.Tones, AddValue)
	p.Voice.LovedWords = nonNil(p.Voice.LovedWords)
	p.Voice.BannedWords = nonNil(p.Voice.BannedWords)
	p.ContentRules.TopicsToAvoid = nonNil(p.ContentRules.TopicsToAvoid)
	p.Business.USPs = nonNil(p.Business.USPs)
	p.Audience.PrimarySegments = nonNil(p.Audience.PrimarySegments)
	p.Audience.Platforms = rebuild(p.Audience.Platforms, AddValue)
	if p.UploadedFiles == nil {
		p.UploadedFiles = []models.UploadedFile{}
	}

	if p.Personas == nil {
		p.Personas = []models.Persona{}
	}
	for i := range p.Personas {
		if err := normalizePersona(&p.Personas[i]); err != nil {
			return err
		}
	}
	if p.Programs == nil {
		p.Programs = []models.Program{}
	}
	for i := range p.Programs {
		if err := normalizeProgram(&p.Programs[i]); err != nil {
			return err
		}
	}
	return nil
}

func normalizePersona(p *models.Persona) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return fmt.Errorf("%w: persona name is required", ErrInvalidPersona)
	}
	if !p.Demographics.IncomeTier.Valid() {
		return fmt.Errorf("%w: income_tier %q", ErrInvalidPersona, p.Demographics.IncomeTier)
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	p.Psychographics.PainPoints = rebuild(p.Psychographics.PainPoints, AddCapped)
	p.Psychographics.Goals = rebuild(p.Psychographics.Goals, AddCapped)
	p.Psychographics.Values = rebuild(p.Psychographics.Values, AddCapped)
	p.Demographics.LocationTypes = rebuild(p.Demographics.LocationTypes, AddValue)
	p.Demographics.FamilyStatus = rebuild(p.Demographics.FamilyStatus, AddValue)
	p.SocialBehavior.Platforms = rebuild(p.SocialBehavior.Platforms, AddValue)
	p.SocialBehavior.ContentTypes = rebuild(p.SocialBehavior.ContentTypes, AddValue)
	p.SocialBehavior.BestTimes = rebuild(p.SocialBehavior.BestTimes, AddValue)
	return nil
}

func normalizeProgram(p *models.Program) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return fmt.Errorf("%w: program name is required", ErrInvalidProgram)
	}
	if p.Type == "" {
		p.Type = models.ProgramOther
	}
	if !p.Type.Valid() {
		return fmt.Errorf("%w: type %q", ErrInvalidProgram, p.Type)
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}

// UpsertPersona replaces the persona with the same id or appends it.
func UpsertPersona(p *models.BusinessProfile, persona models.Persona) (models.Persona, error) {
	if err := normalizePersona(&persona); err != nil {
		return persona, err
	}
	for i := range p.Personas {
		if p.Personas[i].ID == persona.ID {
			p.Personas[i] = persona
			return persona, nil
		}
	}
	p.Personas = append(p.Personas, persona)
	return persona, nil
}

// RemovePersona drops the persona with id and reports whether it existed.
func RemovePersona(p *models.BusinessProfile, id string) bool {
	for i := range p.Personas {
		if p.Personas[i].ID == id {
			p.Personas = append(p.Personas[:i], p.Personas[i+1:]...)
			return true
		}
	}
	return false
}

func UpsertProgram(p *models.BusinessProfile, program models.Program) (models.Program, error) {
	if err := normalizeProgram(&program); err != nil {
		return program, err
	}
	for i := range p.Programs {
		if p.Programs[i].ID == program.ID {
			p.Programs[i] = program
			return program, nil
		}
	}
	p.Programs = append(p.Programs, program)
	return program, nil
}

func RemoveProgram(p *models.BusinessProfile, id string) bool {
	for i := range p.Programs {
		if p.Programs[i].ID == id {
			p.Programs = append(p.Programs[:i], p.Programs[i+1:]...)
			return true
		}
	}
	return false
}

// FindPersona returns the persona named name (case-insensitive), or nil.
func FindPersona(p *models.BusinessProfile, name string) *models.Persona {
	for i := range p.Personas {
		if strings.EqualFold(p.Personas[i].Name, strings.TrimSpace(name)) {
			return &p.Personas[i]
		}
	}
	return nil
}
