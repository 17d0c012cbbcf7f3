package render

// Annotation anchors a per-barangay detail block at a map coordinate. The
// set of annotated barangays is fixed editorial content, not data-driven;
// extending it means adding a descriptor here.
type Annotation struct {
	Barangay string
	Lon      float64
	Lat      float64
}

// detailAnnotations lists the barangays called out on every map, with the
// anchor of each block's title line. Count lines stack below the title.
var detailAnnotations = []Annotation{
	{Barangay: "Fairview", Lon: 120.992, Lat: 14.740},
	{Barangay: "Commonwealth", Lon: 121.126, Lat: 14.716},
	{Barangay: "Batasan Hills", Lon: 121.110, Lat: 14.676},
	{Barangay: "Holy Spirit", Lon: 121.090, Lat: 14.636},
	{Barangay: "Pasong Tamo", Lon: 120.985, Lat: 14.703},
}

// headlineAnchor positions the citywide totals line.
var headlineAnchor = Annotation{Lon: 121.0159, Lat: 14.7687}

// creditAnchor positions the data source credit.
var creditAnchor = Annotation{Lon: 120.981, Lat: 14.582}
