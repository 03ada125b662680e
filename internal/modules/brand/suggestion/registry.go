package suggestion

import (
	"bytes"
	"encoding/json"
	"reflect"

	"github.com/brandhub/core/internal/models"
)

// field binds one leaf path to its suggestion and profile accessors.
type field struct {
	path      string
	label     string
	suggested func(*Suggestions) (interface{}, bool)
	current   func(*models.BusinessProfile) interface{}
	apply     func(*models.BusinessProfile, *Suggestions) bool
}

func makeField[T any](path, label string, sug func(*Suggestions) *T, cur func(*models.BusinessProfile) *T) field {
	return field{
		path:  path,
		label: label,
		suggested: func(s *Suggestions) (interface{}, bool) {
			v := sug(s)
			if v == nil {
				return nil, false
			}
			return *v, true
		},
		current: func(p *models.BusinessProfile) interface{} {
			return *cur(p)
		},
		apply: func(p *models.BusinessProfile, s *Suggestions) bool {
			v := sug(s)
			if v == nil {
				return false
			}
			*cur(p) = *v
			return true
		},
	}
}

func brand(s *Suggestions) *BrandIdentitySuggestion {
	if s.BrandIdentity == nil {
		return &BrandIdentitySuggestion{}
	}
	return s.BrandIdentity
}

func voice(s *Suggestions) *VoiceSuggestion {
	if s.Voice == nil {
		return &VoiceSuggestion{}
	}
	return s.Voice
}

func rules(s *Suggestions) *ContentRulesSuggestion {
	if s.ContentRules == nil {
		return &ContentRulesSuggestion{}
	}
	return s.ContentRules
}

func business(s *Suggestions) *BusinessSuggestion {
	if s.Business == nil {
		return &BusinessSuggestion{}
	}
	return s.Business
}

func audience(s *Suggestions) *AudienceSuggestion {
	if s.Audience == nil {
		return &AudienceSuggestion{}
	}
	return s.Audience
}

// registry lists every mergeable leaf in display order.
var registry = []field{
	makeField("business_name", "Business name",
		func(s *Suggestions) *string { return s.BusinessName },
		func(p *models.BusinessProfile) *string { return &p.BusinessName }),
	makeField("niche", "Niche",
		func(s *Suggestions) *string { return s.Niche },
		func(p *models.BusinessProfile) *string { return &p.Niche }),
	makeField("owner_name", "Owner name",
		func(s *Suggestions) *string { return s.OwnerName },
		func(p *models.BusinessProfile) *string { return &p.OwnerName }),
	makeField("locations", "Locations",
		func(s *Suggestions) *[]string { return s.Locations },
		func(p *models.BusinessProfile) *[]string { return (*[]string)(&p.Locations) }),
	makeField("services", "Services",
		func(s *Suggestions) *[]string { return s.Services },
		func(p *models.BusinessProfile) *[]string { return (*[]string)(&p.Services) }),

	makeField("brand_identity.colors", "Brand colors",
		func(s *Suggestions) *[]string { return brand(s).Colors },
		func(p *models.BusinessProfile) *[]string { return &p.BrandIdentity.Colors }),
	makeField("brand_identity.personality", "Brand personality",
		func(s *Suggestions) *[]string { return brand(s).Personality },
		func(p *models.BusinessProfile) *[]string { return &p.BrandIdentity.Personality }),
	makeField("brand_identity.visual_style", "Visual style",
		func(s *Suggestions) *string { return brand(s).VisualStyle },
		func(p *models.BusinessProfile) *string { return &p.BrandIdentity.VisualStyle }),

	makeField("voice.tones", "Tones",
		func(s *Suggestions) *[]string { return voice(s).Tones },
		func(p *models.BusinessProfile) *[]string { return &p.Voice.Tones }),
	makeField("voice.loved_words", "Words we love",
		func(s *Suggestions) *[]string { return voice(s).LovedWords },
		func(p *models.BusinessProfile) *[]string { return &p.Voice.LovedWords }),
	makeField("voice.banned_words", "Words we never use",
		func(s *Suggestions) *[]string { return voice(s).BannedWords },
		func(p *models.BusinessProfile) *[]string { return &p.Voice.BannedWords }),

	makeField("content_rules.show_prices", "Show prices",
		func(s *Suggestions) *bool { return rules(s).ShowPrices },
		func(p *models.BusinessProfile) *bool { return &p.ContentRules.ShowPrices }),
	makeField("content_rules.show_faces", "Show faces",
		func(s *Suggestions) *bool { return rules(s).ShowFaces },
		func(p *models.BusinessProfile) *bool { return &p.ContentRules.ShowFaces }),
	makeField("content_rules.show_location", "Show location",
		func(s *Suggestions) *bool { return rules(s).ShowLocation },
		func(p *models.BusinessProfile) *bool { return &p.ContentRules.ShowLocation }),
	makeField("content_rules.topics_to_avoid", "Topics to avoid",
		func(s *Suggestions) *[]string { return rules(s).TopicsToAvoid },
		func(p *models.BusinessProfile) *[]string { return &p.ContentRules.TopicsToAvoid }),

	makeField("business.location", "Business location",
		func(s *Suggestions) *string { return business(s).Location },
		func(p *models.BusinessProfile) *string { return &p.Business.Location }),
	makeField("business.price_point", "Price point",
		func(s *Suggestions) *string { return business(s).PricePoint },
		func(p *models.BusinessProfile) *string { return &p.Business.PricePoint }),
	makeField("business.capacity", "Capacity",
		func(s *Suggestions) *string { return business(s).Capacity },
		func(p *models.BusinessProfile) *string { return &p.Business.Capacity }),
	makeField("business.usps", "Unique selling points",
		func(s *Suggestions) *[]string { return business(s).USPs },
		func(p *models.BusinessProfile) *[]string { return &p.Business.USPs }),

	makeField("audience.primary_segments", "Primary segments",
		func(s *Suggestions) *[]string { return audience(s).PrimarySegments },
		func(p *models.BusinessProfile) *[]string { return &p.Audience.PrimarySegments }),
	makeField("audience.platforms", "Platforms",
		func(s *Suggestions) *[]string { return audience(s).Platforms },
		func(p *models.BusinessProfile) *[]string { return &p.Audience.Platforms }),

	makeField("personas", "Personas",
		func(s *Suggestions) *[]models.Persona { return s.Personas },
		func(p *models.BusinessProfile) *[]models.Persona { return &p.Personas }),
	makeField("programs", "Programs",
		func(s *Suggestions) *[]models.Program { return s.Programs },
		func(p *models.BusinessProfile) *[]models.Program { return &p.Programs }),
}

var registryIndex = func() map[string]*field {
	out := make(map[string]*field, len(registry))
	for i := range registry {
		out[registry[i].path] = &registry[i]
	}
	return out
}()

// Paths lists every known leaf path.
func Paths() []string {
	out := make([]string, len(registry))
	for i, f := range registry {
		out[i] = f.path
	}
	return out
}

// sameJSON compares serializations, treating a nil slice like an empty one.
func sameJSON(a, b interface{}) bool {
	ab, errA := marshalCanonical(a)
	bb, errB := marshalCanonical(b)
	if errA != nil || errB != nil {
		return false
	}
	return bytes.Equal(ab, bb)
}

func marshalCanonical(v interface{}) ([]byte, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice && rv.IsNil() {
		return []byte("[]"), nil
	}
	return json.Marshal(v)
}
