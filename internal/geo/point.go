package geo

import (
	"math"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// RepresentativePoint returns a point guaranteed to lie inside the polygon,
// suitable for label placement. The centroid of a concave barangay can fall
// outside it, so instead a horizontal scanline through the vertical middle
// of the bounding box is intersected with the outer ring and the midpoint of
// the widest interior interval is used. Degenerate geometry falls back to
// the area centroid.
func RepresentativePoint(g orb.Geometry) orb.Point {
	var poly orb.Polygon
	switch v := g.(type) {
	case orb.Polygon:
		poly = v
	case orb.MultiPolygon:
		poly = largestPolygon(v)
	default:
		centroid, _ := planar.CentroidArea(g)
		return centroid
	}

	if len(poly) == 0 || len(poly[0]) < 4 {
		centroid, _ := planar.CentroidArea(g)
		return centroid
	}

	bound := poly.Bound()
	y := (bound.Min[1] + bound.Max[1]) / 2

	xs := ringCrossings(poly[0], y)
	if len(xs) < 2 {
		centroid, _ := planar.CentroidArea(poly)
		return centroid
	}

	// Crossings sorted left to right pair up into interior intervals.
	var best orb.Point
	bestWidth := -1.0
	for i := 0; i+1 < len(xs); i += 2 {
		width := xs[i+1] - xs[i]
		if width > bestWidth {
			bestWidth = width
			best = orb.Point{(xs[i] + xs[i+1]) / 2, y}
		}
	}

	if !planar.PolygonContains(poly, best) {
		centroid, _ := planar.CentroidArea(poly)
		return centroid
	}

	return best
}

// largestPolygon picks the member with the largest area, so the label for a
// multi-part barangay lands on its main body.
func largestPolygon(mp orb.MultiPolygon) orb.Polygon {
	var largest orb.Polygon
	maxArea := -1.0
	for _, poly := range mp {
		if area := math.Abs(planar.Area(poly)); area > maxArea {
			maxArea = area
			largest = poly
		}
	}
	return largest
}

// ringCrossings returns the sorted x coordinates where the ring crosses the
// horizontal line at y. Edges are half-open so a vertex exactly on the line
// counts once.
func ringCrossings(ring orb.Ring, y float64) []float64 {
	var xs []float64
	for i := 0; i+1 < len(ring); i++ {
		a, b := ring[i], ring[i+1]
		if (a[1] <= y && b[1] > y) || (b[1] <= y && a[1] > y) {
			t := (y - a[1]) / (b[1] - a[1])
			xs = append(xs, a[0]+t*(b[0]-a[0]))
		}
	}
	sort.Float64s(xs)
	return xs
}
