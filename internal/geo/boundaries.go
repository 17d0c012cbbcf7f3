package geo

import (
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

const (
	// Attribute values identifying the target city in the boundary dataset.
	TargetRegion = "Metropolitan Manila"
	TargetCity   = "Quezon City"

	// Boundary dataset property keys.
	regionKey   = "REGION"
	cityKey     = "NAME_2"
	barangayKey = "NAME_3"
)

// boundaryAliases corrects barangay names on the boundary side. The dataset
// carries one stale name observed in practice.
var boundaryAliases = map[string]string{
	"Constitution Hills": "Commonwealth",
}

// Boundary is one known barangay: its polygon and a label anchor point.
type Boundary struct {
	Barangay string
	Geometry orb.Geometry
	Label    orb.Point
}

// Loader reads barangay boundaries for one city out of a GeoJSON file.
type Loader struct {
	region string
	city   string
}

// NewLoader creates a loader filtered to the given region and city.
func NewLoader(region, city string) *Loader {
	return &Loader{region: region, city: city}
}

// Load parses the GeoJSON feature collection, keeps features matching the
// configured region and city, and derives a representative label point per
// polygon. An empty filter result means the dataset schema does not match
// and is an error, not an empty map.
func (l *Loader) Load(path string) ([]Boundary, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read boundary file: %w", err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(raw)
	if err != nil {
		return nil, fmt.Errorf("cannot parse boundary file %s: %w", path, err)
	}

	var boundaries []Boundary
	for _, feature := range fc.Features {
		if feature.Properties.MustString(regionKey, "") != l.region {
			continue
		}
		if feature.Properties.MustString(cityKey, "") != l.city {
			continue
		}

		name := feature.Properties.MustString(barangayKey, "")
		if canonical, ok := boundaryAliases[name]; ok {
			name = canonical
		}

		boundaries = append(boundaries, Boundary{
			Barangay: name,
			Geometry: feature.Geometry,
			Label:    RepresentativePoint(feature.Geometry),
		})
	}

	if len(boundaries) == 0 {
		return nil, fmt.Errorf("no features in %s match region %q and city %q",
			path, l.region, l.city)
	}

	return boundaries, nil
}
