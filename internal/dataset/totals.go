package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// DailyTotals is the citywide aggregate published alongside the per-barangay
// table, used for the map's headline annotation.
type DailyTotals struct {
	Date       time.Time
	Active     int
	Deaths     int
	Recoveries int
	Total      int
}

// totalsDateLayouts are the date formats seen in the totals CSV.
var totalsDateLayouts = []string{"2006-01-02", "January 2, 2006", "January 2 2006", "1/2/2006"}

// LoadTotals reads the daily totals CSV (columns Date, Active, Deaths,
// Recoveries, Total).
func LoadTotals(path string) ([]DailyTotals, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open totals file: %w", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("cannot parse totals file %s: %w", path, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("totals file %s has no data rows", path)
	}

	idx := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, col := range []string{"date", "active", "deaths", "recoveries", "total"} {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("totals file %s is missing column %q", path, col)
		}
	}

	totals := make([]DailyTotals, 0, len(rows)-1)
	for n, row := range rows[1:] {
		date, err := parseTotalsDate(row[idx["date"]])
		if err != nil {
			return nil, fmt.Errorf("totals file %s row %d: %w", path, n+2, err)
		}

		t := DailyTotals{Date: date}
		for col, dst := range map[string]*int{
			"active":     &t.Active,
			"deaths":     &t.Deaths,
			"recoveries": &t.Recoveries,
			"total":      &t.Total,
		} {
			v, err := strconv.Atoi(strings.ReplaceAll(strings.TrimSpace(row[idx[col]]), ",", ""))
			if err != nil {
				return nil, fmt.Errorf("totals file %s row %d: bad %s value %q", path, n+2, col, row[idx[col]])
			}
			*dst = v
		}
		totals = append(totals, t)
	}

	return totals, nil
}

// TotalsFor finds the aggregate row for a calendar date.
func TotalsFor(totals []DailyTotals, date time.Time) (DailyTotals, error) {
	y, m, d := date.Date()
	for _, t := range totals {
		ty, tm, td := t.Date.Date()
		if ty == y && tm == m && td == d {
			return t, nil
		}
	}
	return DailyTotals{}, fmt.Errorf("no totals row for %s", date.Format("January 02, 2006"))
}

func parseTotalsDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range totalsDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
