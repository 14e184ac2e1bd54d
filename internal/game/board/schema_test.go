package board

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassicIsValid(t *testing.T) {
	schema := Classic()
	require.NoError(t, schema.Validate())
	assert.Equal(t, 40, schema.Length())
	assert.Len(t, schema.Chance, 15)
	assert.Len(t, schema.CommunityChest, 16)
}

func TestValidateRejectsGapsAndOverlaps(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(s *Schema)
	}{
		{"gap", func(s *Schema) { s.Locations[1].Start, s.Locations[1].End = 2, 3 }},
		{"duplicate name", func(s *Schema) { s.Locations[3].Name = s.Locations[1].Name }},
		{"unknown kind", func(s *Schema) { s.Locations[0].Kind = "lake" }},
		{"bad railroad dues", func(s *Schema) { s.Locations[5].Dues = []int{25} }},
		{"missing house rents", func(s *Schema) { s.Locations[1].RentHouses = nil }},
		{"go off board", func(s *Schema) { s.GoPosition = 40 }},
		{"unknown card destination", func(s *Schema) { s.Chance[0].Destination = "Atlantis" }},
		{"no dice", func(s *Schema) { s.Dice = nil }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			schema := Classic()
			tc.mutate(schema)
			assert.ErrorIs(t, schema.Validate(), ErrInvalidSchema)
		})
	}
}

func TestLoadFileRoundTrip(t *testing.T) {
	data, err := Classic().Marshal()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "classic.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Classic().Locations[39], loaded.Locations[39])
	assert.Equal(t, 10, loaded.Locations[12].Multipliers[2])
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
