package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fogleman/gg"
	"github.com/paulmach/orb"

	"github.com/ginoasuncion/qc-covid-cases-mapping/internal/dataset"
)

const (
	defaultWidth  = 1500
	defaultHeight = 1200

	// Fraction of the canvas kept clear around the city outline.
	marginFrac = 0.08

	reportSuffix = "-Cases.pdf"
	dirPerm      = 0o750
)

// Options controls renderer output behavior.
type Options struct {
	Show      bool // kept for interface parity; batch runs are headless
	Save      bool
	OutputDir string
}

// Renderer draws an annotated choropleth of active cases per barangay.
type Renderer struct {
	width  int
	height int
	vmax   int
	colors palette
}

// NewRenderer creates a renderer with the given color scale maximum.
func NewRenderer(vmax int) *Renderer {
	return &Renderer{
		width:  defaultWidth,
		height: defaultHeight,
		vmax:   vmax,
		colors: flarePalette(),
	}
}

// RenderMap draws the day's map and, when opts.Save is set, writes it as
// <outdir>/<report-base>.png. The report date comes from the source file
// name; the citywide headline comes from the totals CSV. Returns the output
// path (empty when not saving).
func (r *Renderer) RenderMap(records []dataset.JoinedRecord, sourcePath, totalsPath string, opts Options) (string, error) {
	if len(records) == 0 {
		return "", fmt.Errorf("no records to render")
	}

	date, err := ReportDate(sourcePath)
	if err != nil {
		return "", err
	}

	totals, err := dataset.LoadTotals(totalsPath)
	if err != nil {
		return "", err
	}
	dayTotals, err := dataset.TotalsFor(totals, date)
	if err != nil {
		return "", err
	}

	dc := gg.NewContext(r.width, r.height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	proj := newProjection(recordsBound(records), r.width, r.height, marginFrac)

	r.drawPolygons(dc, proj, records)
	r.drawTitle(dc, date)
	r.drawHeadline(dc, proj, dayTotals)
	if err := r.drawDetailBlocks(dc, proj, records); err != nil {
		return "", err
	}
	r.drawCredit(dc, proj)
	r.drawColorbar(dc)

	if !opts.Save {
		return "", nil
	}

	if err := os.MkdirAll(opts.OutputDir, dirPerm); err != nil {
		return "", fmt.Errorf("cannot create output directory %s: %w", opts.OutputDir, err)
	}
	base := strings.TrimSuffix(filepath.Base(sourcePath), reportSuffix)
	outPath := filepath.Join(opts.OutputDir, base+".png")
	if err := dc.SavePNG(outPath); err != nil {
		return "", fmt.Errorf("cannot save map image: %w", err)
	}

	return outPath, nil
}

// ReportDate derives the report date from a downloaded file name such as
// "January-05-2021-Cases.pdf".
func ReportDate(sourcePath string) (time.Time, error) {
	base := filepath.Base(sourcePath)
	stem := strings.TrimSuffix(base, reportSuffix)
	if stem == base {
		return time.Time{}, fmt.Errorf("%s is not a daily report file name", base)
	}
	date, err := time.Parse("January-02-2006", stem)
	if err != nil {
		return time.Time{}, fmt.Errorf("cannot parse report date from %s: %w", base, err)
	}
	return date, nil
}

func (r *Renderer) drawPolygons(dc *gg.Context, proj projection, records []dataset.JoinedRecord) {
	for _, rec := range records {
		t := float64(rec.Active) / float64(r.vmax)
		cr, cg, cb := r.colors.at(t)

		tracePath(dc, proj, rec.Geometry)
		dc.SetFillRule(gg.FillRuleEvenOdd)
		dc.SetRGB(cr, cg, cb)
		dc.FillPreserve()
		dc.SetRGB(0.8, 0.8, 0.8)
		dc.SetLineWidth(0.8)
		dc.Stroke()
	}
}

func (r *Renderer) drawTitle(dc *gg.Context, date time.Time) {
	title := fmt.Sprintf("Quezon City COVID-19 update as of %s (8 AM)", date.Format("January 02, 2006"))
	dc.SetRGB(0, 0, 0)
	dc.DrawStringAnchored(title, float64(r.width)/2, 30, 0.5, 0.5)
}

func (r *Renderer) drawHeadline(dc *gg.Context, proj projection, t dataset.DailyTotals) {
	line := fmt.Sprintf("Active: %s; Deaths: %s; Recoveries: %s; Total: %s",
		commafy(t.Active), commafy(t.Deaths), commafy(t.Recoveries), commafy(t.Total))
	x, y := proj.toXY(headlineAnchor.Lon, headlineAnchor.Lat)
	dc.SetRGB(0, 0, 0)
	dc.DrawString(line, x, y)
}

// drawDetailBlocks renders the fixed per-barangay callouts. A listed
// barangay missing from the joined data is a pipeline fault and fails the
// render rather than producing a map with silent holes.
func (r *Renderer) drawDetailBlocks(dc *gg.Context, proj projection, records []dataset.JoinedRecord) error {
	const lineStep = 16.0

	dc.SetRGB(0, 0, 0)
	for _, ann := range detailAnnotations {
		counts, found := sumCounts(records, ann.Barangay)
		if !found {
			return fmt.Errorf("annotated barangay %q not present in joined data", ann.Barangay)
		}

		x, y := proj.toXY(ann.Lon, ann.Lat)
		lines := []string{
			ann.Barangay,
			"Active: " + commafy(counts.Active),
			"Died: " + commafy(counts.Died),
			"Recovered: " + commafy(counts.Recovered),
			"Total: " + commafy(counts.Total),
		}
		for i, line := range lines {
			dc.DrawString(line, x, y+float64(i)*lineStep)
		}
	}

	return nil
}

func (r *Renderer) drawCredit(dc *gg.Context, proj projection) {
	x, y := proj.toXY(creditAnchor.Lon, creditAnchor.Lat)
	dc.SetRGB(0.2, 0.2, 0.2)
	dc.DrawString("Data source: https://quezoncity.gov.ph", x, y)
}

// drawColorbar paints the vertical legend on the right edge, 0 at the
// bottom up to vmax.
func (r *Renderer) drawColorbar(dc *gg.Context) {
	barW := 24.0
	barH := float64(r.height) * 0.4
	x := float64(r.width) - 70
	top := (float64(r.height) - barH) / 2

	steps := int(barH)
	for i := 0; i < steps; i++ {
		t := 1 - float64(i)/float64(steps-1)
		cr, cg, cb := r.colors.at(t)
		dc.SetRGB(cr, cg, cb)
		dc.DrawRectangle(x, top+float64(i), barW, 1)
		dc.Fill()
	}

	dc.SetRGB(0, 0, 0)
	dc.DrawStringAnchored("# of active", x+barW/2, top-34, 0.5, 0.5)
	dc.DrawStringAnchored("cases", x+barW/2, top-20, 0.5, 0.5)
	dc.DrawString(strconv.Itoa(r.vmax), x+barW+4, top+6)
	dc.DrawString("0", x+barW+4, top+barH)
}

// sumCounts totals the counts of every joined row matching the barangay
// name. Some annotated names cover several boundary rows (district splits),
// so summing mirrors the per-name lookups the map promises.
func sumCounts(records []dataset.JoinedRecord, barangay string) (dataset.Counts, bool) {
	var sum dataset.Counts
	found := false
	for _, rec := range records {
		if rec.Barangay != barangay {
			continue
		}
		found = true
		sum.Active += rec.Active
		sum.Died += rec.Died
		sum.Recovered += rec.Recovered
		sum.Total += rec.Total
	}
	return sum, found
}

// recordsBound unions the bounds of every record geometry.
func recordsBound(records []dataset.JoinedRecord) orb.Bound {
	bound := records[0].Geometry.Bound()
	for _, rec := range records[1:] {
		bound = bound.Union(rec.Geometry.Bound())
	}
	return bound
}

// projection maps lon/lat onto canvas pixels with a uniform scale, so the
// city keeps its shape regardless of canvas aspect ratio.
type projection struct {
	bound  orb.Bound
	scale  float64
	xShift float64
	yShift float64
}

func newProjection(bound orb.Bound, width, height int, margin float64) projection {
	usableW := float64(width) * (1 - 2*margin)
	usableH := float64(height) * (1 - 2*margin)

	spanX := bound.Max[0] - bound.Min[0]
	spanY := bound.Max[1] - bound.Min[1]
	if spanX == 0 {
		spanX = 1e-9
	}
	if spanY == 0 {
		spanY = 1e-9
	}

	scale := usableW / spanX
	if s := usableH / spanY; s < scale {
		scale = s
	}

	// Center the projected extent on the canvas.
	xShift := (float64(width) - spanX*scale) / 2
	yShift := (float64(height) - spanY*scale) / 2

	return projection{bound: bound, scale: scale, xShift: xShift, yShift: yShift}
}

// toXY projects a lon/lat coordinate; y is flipped since canvas y grows
// downward.
func (p projection) toXY(lon, lat float64) (x, y float64) {
	x = (lon-p.bound.Min[0])*p.scale + p.xShift
	y = (p.bound.Max[1]-lat)*p.scale + p.yShift
	return x, y
}

func tracePath(dc *gg.Context, proj projection, g orb.Geometry) {
	switch v := g.(type) {
	case orb.Polygon:
		tracePolygon(dc, proj, v)
	case orb.MultiPolygon:
		for _, poly := range v {
			tracePolygon(dc, proj, poly)
		}
	}
}

func tracePolygon(dc *gg.Context, proj projection, poly orb.Polygon) {
	for _, ring := range poly {
		for i, pt := range ring {
			x, y := proj.toXY(pt[0], pt[1])
			if i == 0 {
				dc.MoveTo(x, y)
			} else {
				dc.LineTo(x, y)
			}
		}
		dc.ClosePath()
	}
}

// commafy renders an integer with thousands separators.
func commafy(n int) string {
	s := strconv.Itoa(n)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	if neg {
		return "-" + s
	}
	return s
}
