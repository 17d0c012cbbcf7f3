package main

import (
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/ginoasuncion/qc-covid-cases-mapping/internal/config"
	"github.com/ginoasuncion/qc-covid-cases-mapping/internal/fetch"
	"github.com/ginoasuncion/qc-covid-cases-mapping/internal/pipeline"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
)

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			printVersion()
			return
		}
	}

	cfg, err := config.LoadFromFlags()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.IsDebug() {
		log.Printf("Starting with configuration: %s", cfg.String())
	}

	start, end, err := cfg.DateRange()
	if err != nil {
		log.Fatalf("Invalid date range: %v", err)
	}

	if cfg.Fetch {
		fetcher := fetch.NewFetcher(nil, cfg.BaseURL)
		report, err := fetcher.DownloadRange(start, end, cfg.DataDir)
		if err != nil {
			log.Fatalf("Download failed: %v", err)
		}
		log.Printf("downloaded %d reports, %d days without data",
			len(report.Downloaded), len(report.Missing))
	}

	if cfg.Render {
		batch := pipeline.NewBatch(pipeline.BatchConfig{
			DataDir:        cfg.DataDir,
			BoundariesFile: cfg.BoundariesFile,
			TotalsFile:     cfg.TotalsFile,
			OutputDir:      cfg.OutputDir,
			Year:           start.Year(),
			VMax:           cfg.VMax,
			MaxFileSize:    cfg.MaxFileSize,
			Save:           cfg.SaveMaps,
			Show:           cfg.ShowMaps,
		})

		if err := batch.Run(monthRanges(start, end)); err != nil {
			log.Fatalf("Batch processing failed: %v", err)
		}
	}
}

// monthRanges converts an inclusive date range into the driver's
// (month, day-count) pairs. The driver always starts at day 1 and tolerates
// missing files, so a mid-month start only costs a few skipped stats.
func monthRanges(start, end time.Time) []pipeline.MonthRange {
	var ranges []pipeline.MonthRange
	for cursor := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC); !cursor.After(end); cursor = cursor.AddDate(0, 1, 0) {
		days := cursor.AddDate(0, 1, -1).Day() // last day of the month
		if cursor.Month() == end.Month() && cursor.Year() == end.Year() {
			days = end.Day()
		}
		ranges = append(ranges, pipeline.MonthRange{
			Month: cursor.Month().String(),
			Days:  days,
		})
	}
	return ranges
}

// printVersion prints version information
func printVersion() {
	fmt.Printf("qcmap - Quezon City COVID-19 case maps\n")
	fmt.Printf("Version: %s\n", version)
	fmt.Printf("Build Time: %s\n", buildTime)
	fmt.Printf("Built with: %s\n", runtime.Version())
}
