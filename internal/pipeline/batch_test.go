package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBatch(t *testing.T, dataDir string) *Batch {
	t.Helper()
	return NewBatch(BatchConfig{
		DataDir:        dataDir,
		BoundariesFile: filepath.Join(dataDir, "boundaries.geojson"),
		TotalsFile:     filepath.Join(dataDir, "totals.csv"),
		OutputDir:      filepath.Join(dataDir, "maps"),
		Year:           2021,
		VMax:           300,
		MaxFileSize:    1 << 20,
		Save:           true,
	})
}

func TestRunSkipsMissingDays(t *testing.T) {
	// An empty archive means every day is skipped; the run completes
	// without error and without output.
	dir := t.TempDir()
	b := testBatch(t, dir)

	err := b.Run([]MonthRange{
		{Month: "January", Days: 31},
		{Month: "February", Days: 28},
	})
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "maps"))
	assert.True(t, os.IsNotExist(err), "no maps should have been produced")
}

func TestRunHaltsOnCorruptReport(t *testing.T) {
	// A present but unparseable file is a structural failure, not a gap in
	// the archive, and must stop the batch.
	dir := t.TempDir()
	path := filepath.Join(dir, "January-03-2021-Cases.pdf")
	require.NoError(t, os.WriteFile(path, []byte("definitely not a pdf"), 0o640))

	b := testBatch(t, dir)

	err := b.Run([]MonthRange{{Month: "January", Days: 5}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "January-03-2021-Cases.pdf")
}

func TestRunEmptyRanges(t *testing.T) {
	b := testBatch(t, t.TempDir())
	assert.NoError(t, b.Run(nil))
}
