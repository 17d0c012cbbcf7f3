package pdf

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

const (
	// Glyphs within this vertical distance belong to the same row.
	rowTolerance = 3.0
	// A horizontal gap wider than this starts a new cell.
	cellGap = 12.0
)

// Extractor pulls the barangay case table out of a daily report PDF.
type Extractor struct {
	maxFileSize int64
	validator   *Validator
}

// NewExtractor creates a new table extractor with the specified constraints
func NewExtractor(maxFileSize int64) *Extractor {
	return &Extractor{
		maxFileSize: maxFileSize,
		validator:   NewValidator(maxFileSize),
	}
}

// ExtractTables parses every page of the report and returns one unified
// record set. Each page contributes one table; the first row of a table is
// its header and the last row is the citywide total footer, which is not a
// barangay record.
func (e *Extractor) ExtractTables(path string) (*ExtractResult, error) {
	if err := e.validator.ValidateFile(path); err != nil {
		return nil, err
	}

	f, pdfReader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var tables []Table
	for pageNum := 1; pageNum <= pdfReader.NumPage(); pageNum++ {
		page := pdfReader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		content := page.Content()
		glyphs := make([]textGlyph, 0, len(content.Text))
		for _, t := range content.Text {
			glyphs = append(glyphs, textGlyph{S: t.S, X: t.X, Y: t.Y, W: t.W})
		}

		table, ok := buildTable(glyphs)
		if !ok {
			continue
		}
		tables = append(tables, table)
	}

	if len(tables) == 0 {
		return nil, fmt.Errorf("no tables found in %s", path)
	}

	var records []RawRecord
	for _, table := range tables {
		recs, err := tableRecords(table)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		records = append(records, recs...)
	}

	return &ExtractResult{
		Path:    path,
		Pages:   pdfReader.NumPage(),
		Tables:  len(tables),
		Records: records,
	}, nil
}

// buildTable clusters positioned glyphs into a cell grid. The first grid row
// becomes the header and the final row is dropped as the summary footer.
// Returns false when the page holds fewer than three rows, i.e. no data.
func buildTable(glyphs []textGlyph) (Table, bool) {
	rows := clusterRows(glyphs, rowTolerance)
	if len(rows) < 3 {
		return Table{}, false
	}

	grid := make([][]string, 0, len(rows))
	for _, row := range rows {
		grid = append(grid, mergeCells(row, cellGap))
	}

	return Table{
		Header: grid[0],
		Rows:   grid[1 : len(grid)-1],
	}, true
}

// clusterRows groups glyphs that share a baseline, ordered top to bottom.
// PDF coordinates grow upward, so larger Y means higher on the page.
func clusterRows(glyphs []textGlyph, tolerance float64) [][]textGlyph {
	if len(glyphs) == 0 {
		return nil
	}

	sorted := make([]textGlyph, len(glyphs))
	copy(sorted, glyphs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Y > sorted[j].Y
	})

	var rows [][]textGlyph
	current := []textGlyph{sorted[0]}
	baseline := sorted[0].Y
	for _, g := range sorted[1:] {
		if baseline-g.Y > tolerance {
			rows = append(rows, current)
			current = nil
			baseline = g.Y
		}
		current = append(current, g)
	}
	rows = append(rows, current)

	for _, row := range rows {
		sort.SliceStable(row, func(i, j int) bool {
			return row[i].X < row[j].X
		})
	}

	return rows
}

// mergeCells joins adjacent glyphs into cell strings. Glyphs separated by
// less than gap belong to the same cell; the report renders each column as
// one run of text, so column boundaries show up as wide gaps.
func mergeCells(row []textGlyph, gap float64) []string {
	if len(row) == 0 {
		return nil
	}

	var cells []string
	var cell strings.Builder
	cell.WriteString(row[0].S)
	edge := row[0].X + row[0].W
	for _, g := range row[1:] {
		if g.X-edge > gap {
			cells = append(cells, strings.TrimSpace(cell.String()))
			cell.Reset()
		}
		cell.WriteString(g.S)
		if right := g.X + g.W; right > edge {
			edge = right
		}
	}
	cells = append(cells, strings.TrimSpace(cell.String()))

	return cells
}

// tableRecords maps a table's data rows into RawRecords by header name, so
// pages whose columns shift order still line up. A row shorter than its
// header yields empty strings for the trailing columns; the preprocessor
// coerces those to zero.
func tableRecords(table Table) ([]RawRecord, error) {
	idx := make(map[string]int, len(table.Header))
	for i, name := range table.Header {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}

	barangayCol, ok := idx["barangay"]
	if !ok {
		return nil, fmt.Errorf("table header has no Barangay column: %v", table.Header)
	}

	cell := func(row []string, name string) string {
		i, ok := idx[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	records := make([]RawRecord, 0, len(table.Rows))
	for _, row := range table.Rows {
		if barangayCol >= len(row) || strings.TrimSpace(row[barangayCol]) == "" {
			continue
		}
		records = append(records, RawRecord{
			Barangay:  strings.TrimSpace(row[barangayCol]),
			Active:    cell(row, "active"),
			Died:      cell(row, "died"),
			Recovered: cell(row, "recovered"),
			Total:     cell(row, "total"),
		})
	}

	return records, nil
}
