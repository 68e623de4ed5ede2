// Package electomap renders choropleth maps and statistical charts from
// election results joined to administrative-boundary shapefiles. It was
// built for the Mauritanian presidential elections (results per
// Moughataa) but any polygon layer plus a unit/candidate/votes CSV works.
//
// Usage:
//
//	fig, err := electomap.StyledElectionMap(ctx,
//	    "moughataas.shp",
//	    "https://example.org/elections.csv",
//	    electomap.WithYear(2024),
//	)
//	if err != nil {
//	    ...
//	}
//	err = fig.WriteHTML("map.html")
//
// Each entry point is one synchronous call: load the shapefile, load the
// CSV (URL or local path), join on the normalized unit name, build one
// figure. Nothing is cached between calls and inputs are never mutated.
// Units missing from the results survive the default left join and render
// with the no-data color; the mismatch is reported on the figure's
// Warnings, never raised.
package electomap

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/junkd0g/electomap/figure"
	"github.com/junkd0g/electomap/geodata"
	"github.com/junkd0g/electomap/merge"
	"github.com/junkd0g/electomap/style"
)

// Option configures one entry-point call.
type Option func(*settings)

type settings struct {
	nameField string
	year      int
	mode      merge.JoinMode
	client    *http.Client
	logger    *zap.Logger
	fig       figure.Options
}

func applyOptions(opts []Option) *settings {
	s := &settings{
		mode:   merge.JoinLeft,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithTitle sets the figure title. Map titles may carry a {candidate}
// placeholder that follows the selector.
func WithTitle(title string) Option {
	return func(s *settings) { s.fig.Title = title }
}

// WithSubtitle sets the line under the figure title.
func WithSubtitle(subtitle string) Option {
	return func(s *settings) { s.fig.Subtitle = subtitle }
}

// WithSize sets the chart dimensions in pixels.
func WithSize(width, height int) Option {
	return func(s *settings) {
		s.fig.Width = width
		s.fig.Height = height
	}
}

// WithTheme selects the page theme, style.ThemeLight or style.ThemeDark.
func WithTheme(theme style.Theme) Option {
	return func(s *settings) { s.fig.Theme = theme }
}

// WithPalette sets the sequential color ramp.
func WithPalette(p style.Palette) Option {
	return func(s *settings) { s.fig.Palette = p }
}

// WithColorField pins the candidate whose values drive the color ramp or
// the plotted series.
func WithColorField(candidate string) Option {
	return func(s *settings) { s.fig.ColorField = candidate }
}

// WithTooltipFields selects tooltip lines from {"votes", "share",
// "total"}; the unit name is always shown.
func WithTooltipFields(fields ...string) Option {
	return func(s *settings) { s.fig.TooltipFields = fields }
}

// WithAggregation sets the explicit aggregation function and grouping key
// for the bar builder.
func WithAggregation(agg figure.Agg, group figure.GroupBy) Option {
	return func(s *settings) {
		s.fig.Agg = agg
		s.fig.GroupBy = group
	}
}

// WithBins sets the histogram bin count.
func WithBins(n int) Option {
	return func(s *settings) { s.fig.Bins = n }
}

// WithFields sets the scatter axes: "total", "turnout" or a candidate
// name.
func WithFields(x, y string) Option {
	return func(s *settings) {
		s.fig.XField = x
		s.fig.YField = y
	}
}

// WithJoinMode overrides the default left join. Inner drops units the
// results never mention instead of rendering them as no-data.
func WithJoinMode(mode merge.JoinMode) Option {
	return func(s *settings) { s.mode = mode }
}

// WithYear keeps only one election year's rows before joining.
func WithYear(year int) Option {
	return func(s *settings) { s.year = year }
}

// WithNameField pins the shapefile attribute holding the unit name
// instead of probing the usual candidates (ADM2_EN first).
func WithNameField(field string) Option {
	return func(s *settings) { s.nameField = field }
}

// WithHTTPClient replaces http.DefaultClient for the CSV fetch.
func WithHTTPClient(client *http.Client) Option {
	return func(s *settings) { s.client = client }
}

// WithLogger attaches a logger; without one the package is silent.
func WithLogger(logger *zap.Logger) Option {
	return func(s *settings) { s.logger = logger }
}

// StyledElectionMap renders the interactive choropleth of results per
// administrative unit, with a candidate selector and national stats.
func StyledElectionMap(ctx context.Context, shapefilePath, csvSource string, opts ...Option) (*figure.Figure, error) {
	s := applyOptions(opts)
	t, err := load(ctx, shapefilePath, csvSource, s)
	if err != nil {
		return nil, err
	}
	return figure.Map(t, s.fig)
}

// StyledBar renders an aggregated bar chart; aggregation and grouping
// come from WithAggregation (default: sum of votes by candidate).
func StyledBar(ctx context.Context, shapefilePath, csvSource string, opts ...Option) (*figure.Figure, error) {
	s := applyOptions(opts)
	t, err := load(ctx, shapefilePath, csvSource, s)
	if err != nil {
		return nil, err
	}
	return figure.Bar(t, s.fig)
}

// StyledHist renders a histogram of per-unit totals, or of a candidate's
// vote share when WithColorField is set.
func StyledHist(ctx context.Context, shapefilePath, csvSource string, opts ...Option) (*figure.Figure, error) {
	s := applyOptions(opts)
	t, err := load(ctx, shapefilePath, csvSource, s)
	if err != nil {
		return nil, err
	}
	return figure.Hist(t, s.fig)
}

// StyledLine renders vote counts across units in shapefile order, one
// series per candidate.
func StyledLine(ctx context.Context, shapefilePath, csvSource string, opts ...Option) (*figure.Figure, error) {
	s := applyOptions(opts)
	t, err := load(ctx, shapefilePath, csvSource, s)
	if err != nil {
		return nil, err
	}
	return figure.Line(t, s.fig)
}

// StyledScatter renders one point per unit over the axes picked with
// WithFields (default: total votes vs turnout).
func StyledScatter(ctx context.Context, shapefilePath, csvSource string, opts ...Option) (*figure.Figure, error) {
	s := applyOptions(opts)
	t, err := load(ctx, shapefilePath, csvSource, s)
	if err != nil {
		return nil, err
	}
	return figure.Scatter(t, s.fig)
}

// StyledBox renders one box per candidate over the candidate's votes
// across units.
func StyledBox(ctx context.Context, shapefilePath, csvSource string, opts ...Option) (*figure.Figure, error) {
	s := applyOptions(opts)
	t, err := load(ctx, shapefilePath, csvSource, s)
	if err != nil {
		return nil, err
	}
	return figure.Box(t, s.fig)
}

// load runs the shared pipeline: shapefile, results, year filter, join.
// Loader errors surface here, before any builder runs.
func load(ctx context.Context, shapefilePath, csvSource string, s *settings) (*merge.Table, error) {
	units, err := geodata.LoadShapefile(shapefilePath, s.nameField)
	if err != nil {
		return nil, err
	}

	results, err := geodata.LoadResults(ctx, csvSource, s.client)
	if err != nil {
		return nil, err
	}
	results = merge.FilterYear(results, s.year)

	t := merge.Join(units, results, s.mode)

	s.logger.Info("joined election table",
		zap.Int("units", len(units)),
		zap.Int("result_rows", len(results)),
		zap.Int("records", len(t.Records)),
		zap.Int("candidates", len(t.Candidates)),
		zap.String("mode", s.mode.String()))
	if !t.Mismatch.Empty() {
		s.logger.Warn("join mismatch",
			zap.Strings("shape_only", t.Mismatch.ShapeOnly),
			zap.Strings("result_only", t.Mismatch.ResultOnly))
	}

	return t, nil
}
