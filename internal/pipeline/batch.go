package pipeline

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"path/filepath"

	"github.com/ginoasuncion/qc-covid-cases-mapping/internal/dataset"
	"github.com/ginoasuncion/qc-covid-cases-mapping/internal/pdf"
	"github.com/ginoasuncion/qc-covid-cases-mapping/internal/render"
)

// MonthRange names a month and how many days of it to process.
type MonthRange struct {
	Month string // e.g. "January"
	Days  int
}

// Batch runs extract, preprocess, render for every day in a set of month
// ranges.
type Batch struct {
	extractor    *pdf.Extractor
	preprocessor *dataset.Preprocessor
	renderer     *render.Renderer

	dataDir        string
	boundariesFile string
	totalsFile     string
	outputDir      string
	year           int
	save           bool
	show           bool
}

// BatchConfig wires the batch driver's inputs.
type BatchConfig struct {
	DataDir        string
	BoundariesFile string
	TotalsFile     string
	OutputDir      string
	Year           int
	VMax           int
	MaxFileSize    int64
	Save           bool
	Show           bool
}

// NewBatch creates a batch driver with its pipeline stages.
func NewBatch(cfg BatchConfig) *Batch {
	return &Batch{
		extractor:      pdf.NewExtractor(cfg.MaxFileSize),
		preprocessor:   dataset.NewPreprocessor(),
		renderer:       render.NewRenderer(cfg.VMax),
		dataDir:        cfg.DataDir,
		boundariesFile: cfg.BoundariesFile,
		totalsFile:     cfg.TotalsFile,
		outputDir:      cfg.OutputDir,
		year:           cfg.Year,
		save:           cfg.Save,
		show:           cfg.Show,
	}
}

// Run processes every day of every range. A day whose downloaded file is
// absent is skipped; the site simply published nothing that day. Any other
// failure stops the batch.
func (b *Batch) Run(ranges []MonthRange) error {
	for _, mr := range ranges {
		for day := 1; day <= mr.Days; day++ {
			path := filepath.Join(b.dataDir, fmt.Sprintf("%s-%02d-%d-Cases.pdf", mr.Month, day, b.year))

			if err := b.processDay(path); err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					continue
				}
				return fmt.Errorf("processing %s: %w", path, err)
			}
		}
	}
	return nil
}

func (b *Batch) processDay(path string) error {
	extracted, err := b.extractor.ExtractTables(path)
	if err != nil {
		return err
	}

	joined, err := b.preprocessor.Preprocess(extracted.Records, b.boundariesFile)
	if err != nil {
		return err
	}

	outPath, err := b.renderer.RenderMap(joined, path, b.totalsFile, render.Options{
		Show:      b.show,
		Save:      b.save,
		OutputDir: b.outputDir,
	})
	if err != nil {
		return err
	}

	if outPath != "" {
		log.Printf("rendered %s (%d barangays, %d report rows)", outPath, len(joined), len(extracted.Records))
	}

	return nil
}
