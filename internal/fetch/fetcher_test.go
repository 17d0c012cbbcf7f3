package fetch

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "January-05-2021-Cases.pdf", FileName(day(2021, time.January, 5)))
	assert.Equal(t, "December-25-2021-Cases.pdf", FileName(day(2021, time.December, 25)))
}

func TestReportURL(t *testing.T) {
	f := NewFetcher(nil, "https://quezoncity.gov.ph")
	got := f.ReportURL(day(2021, time.March, 7))
	assert.Equal(t, "https://quezoncity.gov.ph/wp-content/uploads/2021/03/March-07-2021-Cases.pdf", got)
}

func TestDownloadRange(t *testing.T) {
	// Day 2 has no report; everything else serves a body.
	missing := "/wp-content/uploads/2021/01/January-02-2021-Cases.pdf"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == missing {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("%PDF-1.4 stub " + r.URL.Path))
	}))
	defer srv.Close()

	dir := filepath.Join(t.TempDir(), "downloads")
	f := NewFetcher(srv.Client(), srv.URL)

	report, err := f.DownloadRange(day(2021, time.January, 1), day(2021, time.January, 3), dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"January-01-2021-Cases.pdf", "January-03-2021-Cases.pdf"}, report.Downloaded)
	assert.Equal(t, []string{"January-02-2021-Cases.pdf"}, report.Missing)

	// Downloaded days exist on disk with date-derived names; the missing
	// day left nothing behind.
	for _, name := range report.Downloaded {
		body, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.Contains(t, string(body), "%PDF")
	}
	_, err = os.Stat(filepath.Join(dir, "January-02-2021-Cases.pdf"))
	assert.True(t, os.IsNotExist(err))
}

func TestDownloadRangeServerDown(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // every request now fails at the transport level

	dir := t.TempDir()
	f := NewFetcher(&http.Client{Timeout: time.Second}, srv.URL)

	report, err := f.DownloadRange(day(2021, time.January, 1), day(2021, time.January, 2), dir)
	require.NoError(t, err, "transport errors are per-day, not fatal")
	assert.Empty(t, report.Downloaded)
	assert.Len(t, report.Missing, 2)
}

func TestDownloadRangeInvertedRange(t *testing.T) {
	f := NewFetcher(nil, "https://example.org")
	_, err := f.DownloadRange(day(2021, time.February, 1), day(2021, time.January, 1), t.TempDir())
	assert.Error(t, err)
}
