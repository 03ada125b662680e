package profile

import "github.com/brandhub/core/internal/models"

// DefaultBusinessName names the profile seeded into an empty store.
const DefaultBusinessName = "Stack Creamery"

// DefaultProfile returns a fresh copy of the seed profile. The id is left empty
// so Save assigns one.
func DefaultProfile() *models.BusinessProfile {
	return &models.BusinessProfile{
		BusinessName: DefaultBusinessName,
		Niche:        "Artisan ice cream shop",
		OwnerName:    "Maya",
		Locations:    models.StringArray{"Downtown"},
		Services:     models.StringArray{"Scoops & cones", "Ice cream cakes", "Event catering"},
		BrandIdentity: models.BrandIdentity{
			Colors:      []string{"#F7C6D9", "#6B3E26", "#FFF4E0"},
			Personality: []string{"playful", "warm", "crafty"},
			VisualStyle: "Bright, close-up shots of stacked scoops on pastel backgrounds",
		},
		Voice: models.Voice{
			Tones:       []string{"playful", "friendly"},
			LovedWords:  []string{"small-batch", "stacked", "scoop"},
			BannedWords: []string{"cheap", "diet"},
		},
		ContentRules: models.ContentRules{
			ShowPrices:    false,
			ShowFaces:     true,
			ShowLocation:  true,
			TopicsToAvoid: []string{"politics"},
		},
		Business: models.BusinessInfo{
			Location:   "Main Street, Downtown",
			PricePoint: "moderate",
			Capacity:   "30 seats",
			USPs:       []string{"Flavours churned in-house daily", "Seasonal local ingredients"},
		},
		Personas: []models.Persona{
			{
				Name:             "Weekend Families",
				Emoji:            "👨‍👩‍👧",
				Description:      "Parents looking for an easy treat outing with kids.",
				RealWorldExample: "A couple with two kids stopping by after Saturday soccer.",
				Demographics: models.Demographics{
					AgeRange:      "30-45",
					IncomeTier:    models.IncomeModerate,
					LocationTypes: []string{"suburban"},
					FamilyStatus:  []string{"parents"},
				},
				Psychographics: models.Psychographics{
					PainPoints: []string{"Few kid-friendly spots downtown"},
					Goals:      []string{"Make weekends memorable"},
					Values:     []string{"Quality time", "Value for money"},
				},
				SocialBehavior: models.SocialBehavior{
					Platforms:    []string{"instagram", "facebook"},
					ContentTypes: []string{"photos", "reels"},
					BestTimes:    []string{"weekend mornings"},
				},
			},
			{
				Name:             "Dessert Explorers",
				Emoji:            "🍦",
				Description:      "Young adults who chase new flavours and share them online.",
				RealWorldExample: "A college student filming a first taste of the monthly special.",
				Demographics: models.Demographics{
					AgeRange:      "18-29",
					IncomeTier:    models.IncomeBudget,
					LocationTypes: []string{"urban"},
					FamilyStatus:  []string{"single"},
				},
				Psychographics: models.Psychographics{
					PainPoints: []string{"Bored of chain dessert menus"},
					Goals:      []string{"Discover something new to post"},
					Values:     []string{"Novelty", "Authenticity"},
				},
				SocialBehavior: models.SocialBehavior{
					Platforms:    []string{"tiktok", "instagram"},
					ContentTypes: []string{"short video", "stories"},
					BestTimes:    []string{"weekday evenings"},
				},
			},
		},
		Programs: []models.Program{
			{
				Name:        "Scoop Club",
				Type:        models.ProgramLoyalty,
				Description: "Stamp card loyalty program.",
				Details:     "Every 10th scoop is free.",
			},
		},
		Audience: models.Audience{
			PrimarySegments: []string{"families", "students"},
			Platforms:       []string{"instagram", "tiktok", "facebook"},
		},
	}
}
