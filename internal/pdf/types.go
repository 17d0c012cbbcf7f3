package pdf

// RawRecord is one barangay row as it appears in a daily report table.
// Counts stay string-typed here; coercion happens in the preprocessor.
type RawRecord struct {
	Barangay  string
	Active    string
	Died      string
	Recovered string
	Total     string
}

// Table is one extracted grid of cells, one per page in practice.
type Table struct {
	Header []string
	Rows   [][]string
}

// ExtractResult carries the unified record set from one report PDF.
type ExtractResult struct {
	Path    string
	Pages   int
	Tables  int
	Records []RawRecord
}

// textGlyph is one positioned text fragment from the parser.
type textGlyph struct {
	S string
	X float64
	Y float64
	W float64
}
