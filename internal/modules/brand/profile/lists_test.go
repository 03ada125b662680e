package profile

import (
	"fmt"
	"testing"

	"github.com/brandhub/core/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddThenRemoveLocationRestoresList(t *testing.T) {
	for n := 0; n < 4; n++ {
		p := &models.BusinessProfile{}
		for i := 0; i < n; i++ {
			p.Locations = append(p.Locations, fmt.Sprintf("Store %d", i))
		}
		before := append(models.StringArray{}, p.Locations...)

		AddLocation(p, "Airport kiosk")
		require.Len(t, p.Locations, n+1)
		RemoveLocation(p, "Airport kiosk")

		assert.Equal(t, []string(before), []string(p.Locations), "n=%d", n)

		AddLocation(p, " Airport kiosk ")
		require.Len(t, p.Locations, n+1)
		assert.Equal(t, "Airport kiosk", p.Locations[n])
		RemoveLocation(p, " Airport kiosk ")
		assert.Equal(t, []string(before), []string(p.Locations), "padded, n=%d", n)
	}
}

func TestAddThenRemoveServiceWithPadding(t *testing.T) {
	p := &models.BusinessProfile{Services: models.StringArray{"Catering"}}
	AddService(p, "\tWedding cakes  ")
	RemoveService(p, "Wedding cakes ")
	assert.Equal(t, []string{"Catering"}, []string(p.Services))
}

func TestAddValueIgnoresBlankAndDuplicates(t *testing.T) {
	list := AddValue(nil, "  ")
	assert.Empty(t, list)

	list = AddValue(list, " Scoops ")
	list = AddValue(list, "Scoops")
	assert.Equal(t, []string{"Scoops"}, list)
}

func TestRemoveValueDropsEveryOccurrence(t *testing.T) {
	got := RemoveValue([]string{"a", "b", "a", "c"}, "a")
	assert.Equal(t, []string{"b", "c"}, got)
	assert.Equal(t, []string{"b", "c"}, RemoveValue(got, "missing"))
}

func TestAddCappedNeverExceedsFive(t *testing.T) {
	var list []string
	for i := 0; i < MaxPsychographicEntries; i++ {
		list = AddCapped(list, fmt.Sprintf("goal %d", i))
	}
	require.Len(t, list, MaxPsychographicEntries)

	assert.Equal(t, list, AddCapped(list, "goal 6"), "sixth distinct entry")
	assert.Equal(t, list, AddCapped(list, "goal 0"), "duplicate entry")

	short := []string{"x"}
	assert.Equal(t, []string{"x"}, AddCapped(short, "x"))
}

func TestToggleSetValue(t *testing.T) {
	set := ToggleSetValue(nil, "instagram")
	set = ToggleSetValue(set, "tiktok")
	assert.Equal(t, []string{"instagram", "tiktok"}, set)

	set = ToggleSetValue(set, "instagram")
	assert.Equal(t, []string{"tiktok"}, set)

	set = ToggleSetValue(set, " tiktok ")
	assert.Empty(t, set)
}

func TestPersonaListSelectors(t *testing.T) {
	var persona models.Persona
	for i := 0; i < 7; i++ {
		assert.True(t, AddPsychographic(&persona, PainPoints, fmt.Sprintf("pain %d", i)))
	}
	assert.Len(t, persona.Psychographics.PainPoints, MaxPsychographicEntries)
	assert.False(t, AddPsychographic(&persona, PsychList("nope"), "x"))

	assert.True(t, TogglePersonaSet(&persona, BestTimes, "evenings"))
	assert.Equal(t, []string{"evenings"}, persona.SocialBehavior.BestTimes)
	assert.True(t, TogglePersonaSet(&persona, BestTimes, "evenings"))
	assert.Empty(t, persona.SocialBehavior.BestTimes)
	assert.False(t, TogglePersonaSet(&persona, SetList("nope"), "x"))
}

func TestUpsertAndRemovePersona(t *testing.T) {
	p := &models.BusinessProfile{}

	created, err := UpsertPersona(p, models.Persona{Name: "Night Owls"})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Len(t, p.Personas, 1)

	created.Description = "Late shift workers"
	_, err = UpsertPersona(p, created)
	require.NoError(t, err)
	require.Len(t, p.Personas, 1)
	assert.Equal(t, "Late shift workers", p.Personas[0].Description)

	_, err = UpsertPersona(p, models.Persona{Name: "Bad", Demographics: models.Demographics{IncomeTier: "gold"}})
	assert.ErrorIs(t, err, ErrInvalidPersona)

	assert.True(t, RemovePersona(p, created.ID))
	assert.False(t, RemovePersona(p, created.ID))
	assert.Empty(t, p.Personas)
}

func TestUpsertProgramValidatesType(t *testing.T) {
	p := &models.BusinessProfile{}

	prog, err := UpsertProgram(p, models.Program{Name: "Refer a friend"})
	require.NoError(t, err)
	assert.Equal(t, models.ProgramOther, prog.Type)

	_, err = UpsertProgram(p, models.Program{Name: "VIP", Type: "vip"})
	assert.ErrorIs(t, err, ErrInvalidProgram)

	assert.True(t, RemoveProgram(p, prog.ID))
	assert.Empty(t, p.Programs)
}

func TestNormalizeProfileCapsPersonaLists(t *testing.T) {
	p := &models.BusinessProfile{
		BusinessName: "  Corner Bakery ",
		Personas: []models.Persona{{
			Name: "Commuters",
			Psychographics: models.Psychographics{
				Goals: []string{"a", "b", "a", "c", "d", "e", "f"},
			},
		}},
	}
	require.NoError(t, normalizeProfile(p))

	assert.Equal(t, "Corner Bakery", p.BusinessName)
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, p.Personas[0].Psychographics.Goals)
	assert.NotNil(t, p.Locations)
	assert.NotNil(t, p.Programs)
	assert.NotNil(t, p.Voice.Tones)

	assert.ErrorIs(t, normalizeProfile(&models.BusinessProfile{}), ErrNameRequired)
}
