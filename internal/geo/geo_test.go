package geo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mietwert/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleStates() map[string]map[string][]string {
	return map[string]map[string][]string{
		"Bayern": {
			"Muenchen":  {"80331", "80333"},
			"Nuernberg": {"90402"},
		},
		"Sachsen": {
			"Dresden": {"01067"},
		},
	}
}

func TestLoadReadsReferenceFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "geo_data.json")
	content := `{"Bayern": {"Muenchen": ["80331", "80333"]}, "Sachsen": {"Dresden": ["01067"]}}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	ref, err := Load(path)
	require.NoError(t, err)
	assert.True(t, ref.Contains("Bayern", "Muenchen", "80331"))
	assert.True(t, ref.Contains("Sachsen", "Dresden", "01067"))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, domain.ErrReferenceDataUnavailable)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "geo_data.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	_, err := Load(path)
	assert.ErrorIs(t, err, domain.ErrReferenceDataUnavailable)
}

func TestLoadEmptyTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "geo_data.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))

	_, err := Load(path)
	assert.ErrorIs(t, err, domain.ErrReferenceDataUnavailable)
}

func TestLookupPLZ(t *testing.T) {
	ref := New(sampleStates())

	loc, ok := ref.LookupPLZ("90402")
	require.True(t, ok)
	assert.Equal(t, Location{State: "Bayern", City: "Nuernberg"}, loc)

	// Leading zeros are significant.
	loc, ok = ref.LookupPLZ("01067")
	require.True(t, ok)
	assert.Equal(t, "Dresden", loc.City)

	_, ok = ref.LookupPLZ("1067")
	assert.False(t, ok)
}

func TestContains(t *testing.T) {
	ref := New(sampleStates())

	assert.True(t, ref.Contains("Bayern", "Muenchen", "80333"))
	assert.False(t, ref.Contains("Bayern", "Muenchen", "90402"))
	assert.False(t, ref.Contains("Bayern", "Augsburg", "86150"))
	assert.False(t, ref.Contains("Berlin", "Berlin", "10115"))
}
