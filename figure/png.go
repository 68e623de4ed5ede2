package figure

import (
	"bytes"
	"fmt"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/junkd0g/electomap/style"
)

// PNG renders a static image of the figure. Bar, histogram, line and
// scatter figures are supported; maps and box plots only exist as
// interactive HTML.
func (f *Figure) PNG() ([]byte, error) {
	switch f.Kind {
	case KindBar, KindHist:
		return f.renderBarPNG()
	case KindLine, KindScatter:
		return f.renderXYPNG()
	default:
		return nil, fmt.Errorf("%w: %s figures have no static rendering", ErrUnsupported, f.Kind)
	}
}

func (f *Figure) renderBarPNG() ([]byte, error) {
	if len(f.Series) == 0 || len(f.Series[0].Y) == 0 {
		return nil, fmt.Errorf("%w: empty figure", ErrUnsupported)
	}
	s := f.Series[0]

	cat := style.Categorical()
	bars := make([]chart.Value, len(s.Y))
	for i, v := range s.Y {
		label := ""
		if i < len(s.Labels) {
			label = s.Labels[i]
		}
		bars[i] = chart.Value{
			Label: label,
			Value: v,
			Style: chart.Style{FillColor: hexColor(cat[i%len(cat)]), StrokeWidth: 0},
		}
	}

	graph := chart.BarChart{
		Title:    stripPlaceholder(f.Title),
		Width:    f.Width,
		Height:   f.Height,
		BarWidth: 40,
		Bars:     bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render PNG: %w", err)
	}
	return buf.Bytes(), nil
}

func (f *Figure) renderXYPNG() ([]byte, error) {
	if len(f.Series) == 0 {
		return nil, fmt.Errorf("%w: empty figure", ErrUnsupported)
	}

	cat := style.Categorical()
	series := make([]chart.Series, 0, len(f.Series))
	for i, s := range f.Series {
		if len(s.Y) == 0 {
			continue
		}

		xs := s.X
		if len(xs) == 0 {
			// Categorical X: plot against the label index.
			xs = make([]float64, len(s.Y))
			for j := range xs {
				xs[j] = float64(j)
			}
		}

		color := s.Color
		if color == "" {
			color = cat[i%len(cat)]
		}

		st := chart.Style{StrokeColor: hexColor(color), StrokeWidth: 2}
		if f.Kind == KindScatter {
			st = chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    5,
				DotColor:    hexColor(color),
			}
		}

		series = append(series, chart.ContinuousSeries{
			Name:    s.Name,
			XValues: xs,
			YValues: s.Y,
			Style:   st,
		})
	}
	if len(series) == 0 {
		return nil, fmt.Errorf("%w: empty figure", ErrUnsupported)
	}

	graph := chart.Chart{
		Title:  stripPlaceholder(f.Title),
		Width:  f.Width,
		Height: f.Height,
		Series: series,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render PNG: %w", err)
	}
	return buf.Bytes(), nil
}

func hexColor(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}
