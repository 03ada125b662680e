package profile

import (
	"strings"

	"github.com/brandhub/core/internal/models"
)

// MaxPsychographicEntries caps each persona psychographic list.
const MaxPsychographicEntries = 5

// AddValue appends value when it is non-blank and not already present.
func AddValue(list []string, value string) []string {
	value = strings.TrimSpace(value)
	if value == "" || contains(list, value) {
		return list
	}
	return append(list, value)
}

// RemoveValue drops every occurrence of value, keeping the order of the rest.
// value is trimmed the same way AddValue trims it.
func RemoveValue(list []string, value string) []string {
	value = strings.TrimSpace(value)
	out := make([]string, 0, len(list))
	for _, item := range list {
		if item != value {
			out = append(out, item)
		}
	}
	return out
}

// AddCapped appends value unless it is blank, a duplicate, or the list already
// holds MaxPsychographicEntries entries.
func AddCapped(list []string, value string) []string {
	if len(list) >= MaxPsychographicEntries {
		return list
	}
	return AddValue(list, value)
}

// ToggleSetValue removes value when present, else adds it.
func ToggleSetValue(set []string, value string) []string {
	value = strings.TrimSpace(value)
	if contains(set, value) {
		return RemoveValue(set, value)
	}
	return AddValue(set, value)
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}

func AddLocation(p *models.BusinessProfile, location string) {
	p.Locations = AddValue(p.Locations, location)
}

func RemoveLocation(p *models.BusinessProfile, location string) {
	p.Locations = RemoveValue(p.Locations, location)
}

func AddService(p *models.BusinessProfile, service string) {
	p.Services = AddValue(p.Services, service)
}

func RemoveService(p *models.BusinessProfile, service string) {
	p.Services = RemoveValue(p.Services, service)
}

// PsychList names one of a persona's capped psychographic lists.
type PsychList string

const (
	PainPoints PsychList = "pain_points"
	Goals      PsychList = "goals"
	Values     PsychList = "values"
)

func (l PsychList) of(p *models.Persona) *[]string {
	switch l {
	case PainPoints:
		return &p.Psychographics.PainPoints
	case Goals:
		return &p.Psychographics.Goals
	case Values:
		return &p.Psychographics.Values
	}
	return nil
}

// AddPsychographic adds value to the named capped list.
func AddPsychographic(p *models.Persona, list PsychList, value string) bool {
	target := list.of(p)
	if target == nil {
		return false
	}
	*target = AddCapped(*target, value)
	return true
}

// SetList names one of a persona's de-duplicated sets.
type SetList string

const (
	LocationTypes SetList = "location_types"
	FamilyStatus  SetList = "family_status"
	Platforms     SetList = "platforms"
	ContentTypes  SetList = "content_types"
	BestTimes     SetList = "best_times"
)

func (l SetList) of(p *models.Persona) *[]string {
	switch l {
	case LocationTypes:
		return &p.Demographics.LocationTypes
	case FamilyStatus:
		return &p.Demographics.FamilyStatus
	case Platforms:
		return &p.SocialBehavior.Platforms
	case ContentTypes:
		return &p.SocialBehavior.ContentTypes
	case BestTimes:
		return &p.SocialBehavior.BestTimes
	}
	return nil
}

// TogglePersonaSet flips value in the named set.
func TogglePersonaSet(p *models.Persona, list SetList, value string) bool {
	target := list.of(p)
	if target == nil {
		return false
	}
	*target = ToggleSetValue(*target, value)
	return true
}

// personaByID returns the persona with id, or nil.
func personaByID(p *models.BusinessProfile, id string) *models.Persona {
	for i := range p.Personas {
		if p.Personas[i].ID == id {
			return &p.Personas[i]
		}
	}
	return nil
}

// rebuild replays values through add, which re-applies uniqueness and caps.
func rebuild(values []string, add func([]string, string) []string) []string {
	out := []string{}
	for _, v := range values {
		out = add(out, v)
	}
	return out
}
