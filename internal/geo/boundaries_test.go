package geo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureGeoJSON = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "properties": {"REGION": "Metropolitan Manila", "NAME_2": "Quezon City", "NAME_3": "Bagbag"},
      "geometry": {"type": "Polygon", "coordinates": [[[121.0, 14.7], [121.01, 14.7], [121.01, 14.71], [121.0, 14.71], [121.0, 14.7]]]}
    },
    {
      "type": "Feature",
      "properties": {"REGION": "Metropolitan Manila", "NAME_2": "Quezon City", "NAME_3": "Constitution Hills"},
      "geometry": {"type": "Polygon", "coordinates": [[[121.08, 14.69], [121.09, 14.69], [121.09, 14.7], [121.08, 14.7], [121.08, 14.69]]]}
    },
    {
      "type": "Feature",
      "properties": {"REGION": "Metropolitan Manila", "NAME_2": "Manila", "NAME_3": "Tondo"},
      "geometry": {"type": "Polygon", "coordinates": [[[120.95, 14.6], [120.96, 14.6], [120.96, 14.61], [120.95, 14.61], [120.95, 14.6]]]}
    },
    {
      "type": "Feature",
      "properties": {"REGION": "Calabarzon", "NAME_2": "Quezon City", "NAME_3": "Impostor"},
      "geometry": {"type": "Polygon", "coordinates": [[[121.2, 14.0], [121.21, 14.0], [121.21, 14.01], [121.2, 14.01], [121.2, 14.0]]]}
    }
  ]
}`

func writeFixture(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "boundaries.geojson")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o640))
	return path
}

func TestLoadFiltersToCity(t *testing.T) {
	loader := NewLoader(TargetRegion, TargetCity)

	boundaries, err := loader.Load(writeFixture(t, fixtureGeoJSON))
	require.NoError(t, err)
	require.Len(t, boundaries, 2, "only Quezon City features in Metro Manila survive the filter")

	names := []string{boundaries[0].Barangay, boundaries[1].Barangay}
	assert.Contains(t, names, "Bagbag")
	assert.Contains(t, names, "Commonwealth", "boundary-side alias must rename Constitution Hills")
	assert.NotContains(t, names, "Tondo")
	assert.NotContains(t, names, "Impostor")
}

func TestLoadLabelInsidePolygon(t *testing.T) {
	loader := NewLoader(TargetRegion, TargetCity)

	boundaries, err := loader.Load(writeFixture(t, fixtureGeoJSON))
	require.NoError(t, err)

	for _, b := range boundaries {
		bound := b.Geometry.Bound()
		assert.True(t, bound.Contains(b.Label), "label for %s outside its bound", b.Barangay)
	}
}

func TestLoadEmptyFilterIsError(t *testing.T) {
	loader := NewLoader("Nowhere", "No City")

	_, err := loader.Load(writeFixture(t, fixtureGeoJSON))
	assert.Error(t, err, "a filter matching nothing signals a schema mismatch")
}

func TestLoadBadFile(t *testing.T) {
	loader := NewLoader(TargetRegion, TargetCity)

	_, err := loader.Load(filepath.Join(t.TempDir(), "absent.geojson"))
	assert.Error(t, err)

	_, err = loader.Load(writeFixture(t, "{not geojson"))
	assert.Error(t, err)
}
