package dataset

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTotals(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "totals.csv")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o640))
	return path
}

func TestLoadTotals(t *testing.T) {
	path := writeTotals(t, "Date,Active,Deaths,Recoveries,Total\n"+
		"2021-01-05,1200,45,3300,4545\n"+
		"\"January 6, 2021\",\"1,150\",46,3400,4596\n")

	totals, err := LoadTotals(path)
	require.NoError(t, err)
	require.Len(t, totals, 2)

	assert.Equal(t, 1200, totals[0].Active)
	assert.Equal(t, 45, totals[0].Deaths)
	assert.Equal(t, 3300, totals[0].Recoveries)
	assert.Equal(t, 4545, totals[0].Total)

	// Both date formats and grouped thousands parse.
	assert.Equal(t, 1150, totals[1].Active)
	assert.Equal(t, time.January, totals[1].Date.Month())
	assert.Equal(t, 6, totals[1].Date.Day())
}

func TestTotalsFor(t *testing.T) {
	path := writeTotals(t, "Date,Active,Deaths,Recoveries,Total\n"+
		"2021-01-05,1200,45,3300,4545\n")

	totals, err := LoadTotals(path)
	require.NoError(t, err)

	got, err := TotalsFor(totals, time.Date(2021, time.January, 5, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 1200, got.Active)

	_, err = TotalsFor(totals, time.Date(2021, time.January, 6, 0, 0, 0, 0, time.UTC))
	assert.Error(t, err, "a date with no totals row is an error, not a zero headline")
}

func TestLoadTotalsErrors(t *testing.T) {
	tests := []struct {
		name     string
		contents string
	}{
		{name: "missing column", contents: "Date,Active,Deaths,Total\n2021-01-05,1,2,3\n"},
		{name: "header only", contents: "Date,Active,Deaths,Recoveries,Total\n"},
		{name: "bad date", contents: "Date,Active,Deaths,Recoveries,Total\nsoon,1,2,3,4\n"},
		{name: "bad count", contents: "Date,Active,Deaths,Recoveries,Total\n2021-01-05,many,2,3,4\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadTotals(writeTotals(t, tt.contents))
			assert.Error(t, err)
		})
	}
}

func TestLoadTotalsMissingFile(t *testing.T) {
	_, err := LoadTotals(filepath.Join(t.TempDir(), "absent.csv"))
	assert.Error(t, err)
}
