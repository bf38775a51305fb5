package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultValidates(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestDefaultShape(t *testing.T) {
	cat := Default()
	assert.Len(t, cat.Locations, 8)
	assert.Len(t, cat.Commodities, 9)

	loc, ok := cat.Location("loc_mars")
	require.True(t, ok)
	_, special := loc.SpecialDemand["com_grain"]
	assert.True(t, special)

	_, ok = cat.Location("loc_nowhere")
	assert.False(t, ok)

	assert.Equal(t, 0, cat.LocationIndex("loc_earth"))
	assert.Equal(t, -1, cat.LocationIndex("loc_nowhere"))
}

func TestGalacticAverageIsMidpoint(t *testing.T) {
	cat := Default()
	com, ok := cat.Commodity("com_water")
	require.True(t, ok)
	assert.Equal(t, (com.BaseMin+com.BaseMax)/2, com.GalacticAverage())
}

func TestModifierDefaultsToOne(t *testing.T) {
	cat := Default()
	loc, _ := cat.Location("loc_earth")
	assert.Equal(t, 1.0, loc.Modifier("com_not_listed"))
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cat, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)
	assert.Len(t, cat.Locations, 8)
	assert.Equal(t, 8000.0, cat.Constants.StartingCredits)
}

func TestLoadPartialOverrideKeepsDefaultSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orbital_config.yml")
	override := `
constants:
  starting_credits: 12000
  starting_debt: 30000
`
	require.NoError(t, os.WriteFile(path, []byte(override), 0o644))

	cat, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 12000.0, cat.Constants.StartingCredits)
	assert.Equal(t, 30000, cat.Constants.StartingDebt)

	// Untouched constants and whole sections fall back to defaults.
	assert.Equal(t, 0.07, cat.Constants.RandomEventChance)
	assert.Len(t, cat.Locations, 8)
	assert.Len(t, cat.Ships, 5)
	require.NoError(t, cat.Validate())
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(path, []byte("locations: [what"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidateCatchesDanglingReferences(t *testing.T) {
	cat := Default()
	cat.Constants.StartShip = "ship_ghost"
	assert.Error(t, cat.Validate())

	cat = Default()
	cat.Locations[0].SpecialDemand = map[string]SpecialDemand{"com_ghost": {Bonus: 2}}
	assert.Error(t, cat.Validate())
}
