package dataset

import (
	"log"
	"strconv"
	"strings"

	"github.com/paulmach/orb"

	"github.com/ginoasuncion/qc-covid-cases-mapping/internal/geo"
	"github.com/ginoasuncion/qc-covid-cases-mapping/internal/pdf"
)

// Counts holds the four case tallies for one barangay.
type Counts struct {
	Active    int
	Died      int
	Recovered int
	Total     int
}

// JoinedRecord is one known barangay with its geometry and the day's
// counts. Barangays absent from the day's report carry zero counts and
// Reported=false.
type JoinedRecord struct {
	Barangay string
	Geometry orb.Geometry
	Label    orb.Point
	Counts
	Reported bool
}

// Preprocessor normalizes a raw report record set and joins it onto the
// authoritative barangay boundaries.
type Preprocessor struct {
	loader *geo.Loader
}

// NewPreprocessor creates a preprocessor targeting the Quezon City boundary
// subset.
func NewPreprocessor() *Preprocessor {
	return &Preprocessor{
		loader: geo.NewLoader(geo.TargetRegion, geo.TargetCity),
	}
}

// Preprocess produces exactly one JoinedRecord per known barangay,
// regardless of how complete the day's report was. Report rows naming a
// barangay the boundary dataset does not know are dropped; that loss is
// counted and logged but deliberately not an error.
func (p *Preprocessor) Preprocess(records []pdf.RawRecord, boundariesPath string) ([]JoinedRecord, error) {
	boundaries, err := p.loader.Load(boundariesPath)
	if err != nil {
		return nil, err
	}
	return Join(boundaries, records), nil
}

// Join left-joins boundaries (authoritative) against normalized report
// records on barangay name. Duplicate report rows for one barangay keep the
// first occurrence.
func Join(boundaries []geo.Boundary, records []pdf.RawRecord) []JoinedRecord {
	coerced := 0
	byName := make(map[string]Counts, len(records))
	for _, rec := range records {
		name := CanonicalName(rec.Barangay)
		if _, seen := byName[name]; seen {
			continue
		}
		byName[name] = Counts{
			Active:    coerceCount(rec.Active, &coerced),
			Died:      coerceCount(rec.Died, &coerced),
			Recovered: coerceCount(rec.Recovered, &coerced),
			Total:     coerceCount(rec.Total, &coerced),
		}
	}

	known := make(map[string]bool, len(boundaries))
	joined := make([]JoinedRecord, 0, len(boundaries))
	for _, b := range boundaries {
		known[b.Barangay] = true
		counts, reported := byName[b.Barangay]
		joined = append(joined, JoinedRecord{
			Barangay: b.Barangay,
			Geometry: b.Geometry,
			Label:    b.Label,
			Counts:   counts,
			Reported: reported,
		})
	}

	dropped := 0
	for name := range byName {
		if !known[name] {
			dropped++
		}
	}
	if dropped > 0 {
		log.Printf("preprocess: dropped %d report rows with no matching boundary", dropped)
	}
	if coerced > 0 {
		log.Printf("preprocess: coerced %d unparseable count cells to zero", coerced)
	}

	return joined
}

// coerceCount converts a report cell to an integer. Anything unparseable,
// including empty cells, becomes zero rather than an error; the tally of
// such cells feeds the observability log line.
func coerceCount(s string, coerced *int) int {
	cleaned := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if cleaned == "" {
		*coerced++
		return 0
	}
	if n, err := strconv.Atoi(cleaned); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(cleaned, 64); err == nil {
		return int(f)
	}
	*coerced++
	return 0
}
