package figure

import "github.com/junkd0g/electomap/style"

// Agg selects how aggregation builders (bar, histogram) collapse rows.
// There is no implicit aggregation: the default is AggSum and it is part
// of the builder contract.
type Agg int

const (
	AggSum Agg = iota
	AggCount
	AggMean
)

func (a Agg) String() string {
	switch a {
	case AggCount:
		return "count"
	case AggMean:
		return "mean"
	default:
		return "sum"
	}
}

// GroupBy selects the grouping key for aggregation builders.
type GroupBy int

const (
	ByCandidate GroupBy = iota
	ByUnit
)

func (g GroupBy) String() string {
	if g == ByUnit {
		return "unit"
	}
	return "candidate"
}

// Options are the display options every builder accepts. Zero values take
// per-kind defaults; options never leak between calls.
type Options struct {
	Title         string
	Subtitle      string
	Width, Height int
	Theme         style.Theme
	Palette       style.Palette

	// ColorField names the candidate whose values drive the color ramp
	// (map) or the single plotted series (line, hist share). Empty means
	// the first candidate (map) or all candidates (line).
	ColorField string

	// TooltipFields, from {"votes", "share", "total"}. The unit name is
	// always shown.
	TooltipFields []string

	Agg     Agg
	GroupBy GroupBy
	Bins    int

	// XField and YField feed the scatter builder. Accepted values:
	// "total", "turnout", or a candidate name.
	XField, YField string
}

var defaultTitles = map[Kind]string{
	KindMap:     "Election results - {candidate}",
	KindBar:     "Votes by candidate",
	KindHist:    "Distribution of votes",
	KindLine:    "Votes across units",
	KindScatter: "Votes vs turnout",
	KindBox:     "Vote spread by candidate",
}

// withDefaults fills zero-valued options for the given figure kind.
func (o Options) withDefaults(kind Kind) Options {
	if o.Title == "" {
		o.Title = defaultTitles[kind]
	}
	if o.Width == 0 {
		if kind == KindMap {
			o.Width = 1200
		} else {
			o.Width = 800
		}
	}
	if o.Height == 0 {
		if kind == KindMap {
			o.Height = 850
		} else {
			o.Height = 500
		}
	}
	if o.Theme == "" {
		o.Theme = style.ThemeLight
	}
	if len(o.Palette) == 0 {
		o.Palette = style.Blues()
	}
	if len(o.TooltipFields) == 0 {
		o.TooltipFields = []string{"votes", "share"}
	}
	if o.Bins == 0 {
		o.Bins = 10
	}
	if o.XField == "" {
		o.XField = "total"
	}
	if o.YField == "" {
		o.YField = "turnout"
	}
	return o
}
