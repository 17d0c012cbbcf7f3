package fetch

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

const (
	// DefaultBaseURL is the city government site hosting the daily reports.
	DefaultBaseURL = "https://quezoncity.gov.ph"

	defaultTimeout = 30 * time.Second
	dirPerm        = 0o750
	filePerm       = 0o640
)

// Fetcher downloads daily case report PDFs over a date range.
type Fetcher struct {
	client  *http.Client
	baseURL string
}

// Report summarizes one fetch run. Missing holds the dates for which the
// site returned no report; those days are simply absent from the archive.
type Report struct {
	Downloaded []string
	Missing    []string
}

// NewFetcher wires an HTTP client; a nil client gets a 30s timeout default.
func NewFetcher(client *http.Client, baseURL string) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Fetcher{client: client, baseURL: baseURL}
}

// FileName returns the report file name the city publishes for a date,
// e.g. "January-05-2021-Cases.pdf".
func FileName(date time.Time) string {
	return date.Format("January-02-2006") + "-Cases.pdf"
}

// ReportURL builds the predictable download URL for a date.
func (f *Fetcher) ReportURL(date time.Time) string {
	return fmt.Sprintf("%s/wp-content/uploads/%s/%s/%s",
		f.baseURL, date.Format("2006"), date.Format("01"), FileName(date))
}

// DownloadRange fetches every daily report in [start, end] into dir.
// A non-200 response or a transport error is not fatal; the date is
// recorded as missing and the run continues.
func (f *Fetcher) DownloadRange(start, end time.Time, dir string) (*Report, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("end date %s is before start date %s",
			end.Format("2006-01-02"), start.Format("2006-01-02"))
	}

	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return nil, fmt.Errorf("cannot create download directory %s: %w", dir, err)
	}

	report := &Report{}
	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		if err := f.downloadDay(date, dir); err != nil {
			log.Printf("No data extracted on %s: %v", date.Format("January 02, 2006"), err)
			report.Missing = append(report.Missing, FileName(date))
			continue
		}
		report.Downloaded = append(report.Downloaded, FileName(date))
	}

	return report, nil
}

func (f *Fetcher) downloadDay(date time.Time, dir string) error {
	resp, err := f.client.Get(f.ReportURL(date))
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	path := filepath.Join(dir, FileName(date))
	if err := os.WriteFile(path, body, filePerm); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	return nil
}
