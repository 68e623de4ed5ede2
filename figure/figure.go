// Package figure turns merged election tables into render-ready figures:
// an interactive choropleth map and bar, histogram, line, scatter and box
// charts. Builders never mutate their input table; each call returns a
// fresh Figure whose rendering (HTML or PNG) belongs to the caller.
package figure

import (
	"errors"
	"fmt"

	"github.com/junkd0g/electomap/merge"
	"github.com/junkd0g/electomap/style"
)

var (
	// ErrGeometry marks a map build over a record without geometry.
	ErrGeometry = errors.New("geometry error")

	// ErrUnsupported marks a rendering path a figure kind does not have.
	ErrUnsupported = errors.New("unsupported rendering")
)

// Kind identifies a figure type.
type Kind string

const (
	KindMap     Kind = "map"
	KindBar     Kind = "bar"
	KindHist    Kind = "hist"
	KindLine    Kind = "line"
	KindScatter Kind = "scatter"
	KindBox     Kind = "box"
)

// Series is the render-agnostic data behind a figure. Axis charts use
// Labels+Y or X+Y; box figures store the five-number summary in Y.
type Series struct {
	Name   string
	Labels []string
	X      []float64
	Y      []float64
	Color  string
}

// Figure is one renderable chart: the ECharts option plus enough plain
// data for static export. It has no lifecycle beyond being rendered.
type Figure struct {
	Kind     Kind
	Title    string
	Subtitle string
	Width    int
	Height   int
	Theme    style.Theme

	// Option is the ECharts option for axis charts. Map figures carry
	// their per-candidate data in Data instead and build the option in
	// the page script.
	Option map[string]interface{}

	Series   []Series
	GeoJSON  []byte                 // map only
	Data     map[string]interface{} // extra page data (map widgets, stats)
	Warnings []string
}

// mismatchWarnings converts a join mismatch into human-readable figure
// warnings so callers see degraded coverage without an error.
func mismatchWarnings(t *merge.Table) []string {
	var w []string
	if n := len(t.Mismatch.ShapeOnly); n > 0 {
		w = append(w, fmt.Sprintf("%d administrative units have no results: %s",
			n, joinNames(t.Mismatch.ShapeOnly)))
	}
	if n := len(t.Mismatch.ResultOnly); n > 0 {
		w = append(w, fmt.Sprintf("%d result units match no shape: %s",
			n, joinNames(t.Mismatch.ResultOnly)))
	}
	return w
}

func joinNames(names []string) string {
	const max = 5
	if len(names) <= max {
		return join(names)
	}
	return fmt.Sprintf("%s and %d more", join(names[:max]), len(names)-max)
}

func join(names []string) string {
	out := ""
	for i, n := range names {
		if i > 0 {
			out += ", "
		}
		out += n
	}
	return out
}
