package figure

import (
	"fmt"
	"math"
	"sort"

	"github.com/junkd0g/electomap/geodata"
	"github.com/junkd0g/electomap/merge"
	"github.com/junkd0g/electomap/style"
)

// Bar aggregates the table with the explicit Agg/GroupBy options and
// renders one bar per group. AggSum sums votes, AggCount counts
// contributing records, AggMean divides one by the other.
func Bar(t *merge.Table, opts Options) (*Figure, error) {
	opts = opts.withDefaults(KindBar)

	labels, values := aggregate(t, opts.Agg, opts.GroupBy)
	cat := style.Categorical()

	bars := make([]map[string]interface{}, len(values))
	for i, v := range values {
		bars[i] = map[string]interface{}{
			"value":     round2(v),
			"itemStyle": map[string]interface{}{"color": cat[i%len(cat)]},
		}
	}

	fig := &Figure{
		Kind:   KindBar,
		Title:  opts.Title,
		Width:  opts.Width,
		Height: opts.Height,
		Theme:  opts.Theme,
		Series: []Series{{Name: opts.Agg.String(), Labels: labels, Y: values}},
		Option: map[string]interface{}{
			"title":   titleConfig(opts.Title),
			"tooltip": map[string]interface{}{"trigger": "axis"},
			"grid":    gridConfig(),
			"xAxis": map[string]interface{}{
				"type":      "category",
				"data":      labels,
				"axisLabel": map[string]interface{}{"rotate": 30},
			},
			"yAxis": map[string]interface{}{
				"type": "value",
				"name": axisLabel(opts.Agg),
			},
			"series": []interface{}{map[string]interface{}{
				"type":     "bar",
				"data":     bars,
				"barWidth": "60%",
			}},
		},
		Warnings: mismatchWarnings(t),
	}
	return fig, nil
}

// Hist bins a numeric field over the records: the ColorField candidate's
// vote share when set, otherwise each unit's total votes. Bin count is
// an explicit option.
func Hist(t *merge.Table, opts Options) (*Figure, error) {
	opts = opts.withDefaults(KindHist)

	if err := checkCandidate(t, opts.ColorField); err != nil {
		return nil, err
	}

	var values []float64
	for _, rec := range t.Records {
		if opts.ColorField != "" {
			values = append(values, rec.Share(opts.ColorField))
		} else {
			values = append(values, float64(rec.TotalVotes))
		}
	}

	labels, counts := bin(values, opts.Bins)

	// Each bin takes its fill from the ramp position of its midpoint.
	items := make([]interface{}, len(counts))
	for i, c := range counts {
		items[i] = map[string]interface{}{
			"value": c,
			"itemStyle": map[string]interface{}{
				"color": style.Ramp(float64(i)+0.5, 0, float64(len(counts)), opts.Palette),
			},
		}
	}

	fig := &Figure{
		Kind:   KindHist,
		Title:  opts.Title,
		Width:  opts.Width,
		Height: opts.Height,
		Theme:  opts.Theme,
		Series: []Series{{Name: "count", Labels: labels, Y: counts}},
		Option: map[string]interface{}{
			"title":   titleConfig(opts.Title),
			"tooltip": map[string]interface{}{"trigger": "axis"},
			"grid":    gridConfig(),
			"xAxis": map[string]interface{}{
				"type":      "category",
				"data":      labels,
				"axisLabel": map[string]interface{}{"rotate": 30},
			},
			"yAxis": map[string]interface{}{"type": "value", "name": "units"},
			"series": []interface{}{map[string]interface{}{
				"type":           "bar",
				"data":           items,
				"barWidth":       "90%",
				"barCategoryGap": "0%",
			}},
		},
		Warnings: mismatchWarnings(t),
	}
	return fig, nil
}

// Line plots votes across units in shapefile order: one series per
// candidate, or only the ColorField candidate when set.
func Line(t *merge.Table, opts Options) (*Figure, error) {
	opts = opts.withDefaults(KindLine)

	if err := checkCandidate(t, opts.ColorField); err != nil {
		return nil, err
	}

	candidates := t.Candidates
	if opts.ColorField != "" {
		candidates = []string{opts.ColorField}
	}

	labels := make([]string, len(t.Records))
	for i, rec := range t.Records {
		labels[i] = rec.Unit.Name
	}

	cat := style.Categorical()
	series := make([]Series, 0, len(candidates))
	optSeries := make([]interface{}, 0, len(candidates))
	for i, cand := range candidates {
		ys := make([]float64, len(t.Records))
		for j, rec := range t.Records {
			ys[j] = float64(rec.Votes[cand])
		}
		color := cat[i%len(cat)]
		series = append(series, Series{Name: cand, Labels: labels, Y: ys, Color: color})
		optSeries = append(optSeries, map[string]interface{}{
			"name":      cand,
			"type":      "line",
			"smooth":    true,
			"data":      ys,
			"lineStyle": map[string]interface{}{"color": color, "width": 2},
			"itemStyle": map[string]interface{}{"color": color},
		})
	}

	fig := &Figure{
		Kind:   KindLine,
		Title:  opts.Title,
		Width:  opts.Width,
		Height: opts.Height,
		Theme:  opts.Theme,
		Series: series,
		Option: map[string]interface{}{
			"title":   titleConfig(opts.Title),
			"tooltip": map[string]interface{}{"trigger": "axis"},
			"legend":  map[string]interface{}{"data": candidates, "bottom": 0},
			"grid":    gridConfig(),
			"xAxis": map[string]interface{}{
				"type":      "category",
				"data":      labels,
				"axisLabel": map[string]interface{}{"rotate": 45},
			},
			"yAxis":  map[string]interface{}{"type": "value", "name": "votes"},
			"series": optSeries,
		},
		Warnings: mismatchWarnings(t),
	}
	return fig, nil
}

// Scatter plots XField against YField per unit. Fields are "total",
// "turnout" or a candidate name; anything else is a format error.
func Scatter(t *merge.Table, opts Options) (*Figure, error) {
	opts = opts.withDefaults(KindScatter)

	xs := make([]float64, 0, len(t.Records))
	ys := make([]float64, 0, len(t.Records))
	labels := make([]string, 0, len(t.Records))
	points := make([]interface{}, 0, len(t.Records))
	for _, rec := range t.Records {
		x, err := fieldValue(rec, opts.XField, t)
		if err != nil {
			return nil, err
		}
		y, err := fieldValue(rec, opts.YField, t)
		if err != nil {
			return nil, err
		}
		xs = append(xs, x)
		ys = append(ys, y)
		labels = append(labels, rec.Unit.Name)
		points = append(points, map[string]interface{}{
			"name":  rec.Unit.Name,
			"value": []float64{round2(x), round2(y)},
		})
	}

	fig := &Figure{
		Kind:   KindScatter,
		Title:  opts.Title,
		Width:  opts.Width,
		Height: opts.Height,
		Theme:  opts.Theme,
		Series: []Series{{Name: opts.YField, Labels: labels, X: xs, Y: ys}},
		Option: map[string]interface{}{
			"title": titleConfig(opts.Title),
			"tooltip": map[string]interface{}{
				"trigger": "item",
			},
			"grid":  gridConfig(),
			"xAxis": map[string]interface{}{"type": "value", "name": opts.XField},
			"yAxis": map[string]interface{}{"type": "value", "name": opts.YField},
			"series": []interface{}{map[string]interface{}{
				"type":       "scatter",
				"symbolSize": 12,
				"data":       points,
				"itemStyle":  map[string]interface{}{"color": opts.Palette[2%len(opts.Palette)]},
			}},
		},
		Warnings: mismatchWarnings(t),
	}
	return fig, nil
}

// Box draws one box per candidate over the candidate's votes across
// units. The five-number summary is computed here; ECharts only draws it.
func Box(t *merge.Table, opts Options) (*Figure, error) {
	opts = opts.withDefaults(KindBox)

	series := make([]Series, 0, len(t.Candidates))
	boxes := make([]interface{}, 0, len(t.Candidates))
	for _, cand := range t.Candidates {
		var values []float64
		for _, rec := range t.Records {
			if v, ok := rec.Votes[cand]; ok {
				values = append(values, float64(v))
			}
		}
		summary := fiveNumber(values)
		series = append(series, Series{Name: cand, Y: summary})
		boxes = append(boxes, summary)
	}

	fig := &Figure{
		Kind:   KindBox,
		Title:  opts.Title,
		Width:  opts.Width,
		Height: opts.Height,
		Theme:  opts.Theme,
		Series: series,
		Option: map[string]interface{}{
			"title":   titleConfig(opts.Title),
			"tooltip": map[string]interface{}{"trigger": "item"},
			"grid":    gridConfig(),
			"xAxis": map[string]interface{}{
				"type":      "category",
				"data":      t.Candidates,
				"axisLabel": map[string]interface{}{"rotate": 30},
			},
			"yAxis": map[string]interface{}{"type": "value", "name": "votes"},
			"series": []interface{}{map[string]interface{}{
				"type":      "boxplot",
				"data":      boxes,
				"itemStyle": map[string]interface{}{"color": "#bfdbfe", "borderColor": "#1d4ed8"},
			}},
		},
		Warnings: mismatchWarnings(t),
	}
	return fig, nil
}

// aggregate collapses the table into one value per group.
func aggregate(t *merge.Table, agg Agg, group GroupBy) ([]string, []float64) {
	if group == ByUnit {
		labels := make([]string, len(t.Records))
		values := make([]float64, len(t.Records))
		for i, rec := range t.Records {
			labels[i] = rec.Unit.Name
			values[i] = aggValue(agg, float64(rec.TotalVotes), len(rec.Votes))
		}
		return labels, values
	}

	labels := make([]string, len(t.Candidates))
	values := make([]float64, len(t.Candidates))
	for i, cand := range t.Candidates {
		var sum float64
		var count int
		for _, rec := range t.Records {
			if v, ok := rec.Votes[cand]; ok {
				sum += float64(v)
				count++
			}
		}
		labels[i] = cand
		values[i] = aggValue(agg, sum, count)
	}
	return labels, values
}

func aggValue(agg Agg, sum float64, count int) float64 {
	switch agg {
	case AggCount:
		return float64(count)
	case AggMean:
		if count == 0 {
			return 0
		}
		return sum / float64(count)
	default:
		return sum
	}
}

// bin splits values into n equal-width bins and returns labels + counts.
func bin(values []float64, n int) ([]string, []float64) {
	if len(values) == 0 || n <= 0 {
		return nil, nil
	}

	min, max := values[0], values[0]
	for _, v := range values {
		min = math.Min(min, v)
		max = math.Max(max, v)
	}
	if min == max {
		return []string{fmt.Sprintf("%g", min)}, []float64{float64(len(values))}
	}

	width := (max - min) / float64(n)
	counts := make([]float64, n)
	for _, v := range values {
		idx := int((v - min) / width)
		if idx >= n {
			idx = n - 1
		}
		counts[idx]++
	}

	labels := make([]string, n)
	for i := range labels {
		labels[i] = fmt.Sprintf("%.0f-%.0f", min+float64(i)*width, min+float64(i+1)*width)
	}
	return labels, counts
}

// fiveNumber computes min, Q1, median, Q3 and max with linear
// interpolation over the sorted values. Empty input yields zeros.
func fiveNumber(values []float64) []float64 {
	if len(values) == 0 {
		return []float64{0, 0, 0, 0, 0}
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	return []float64{
		sorted[0],
		quantile(sorted, 0.25),
		quantile(sorted, 0.5),
		quantile(sorted, 0.75),
		sorted[len(sorted)-1],
	}
}

func quantile(sorted []float64, q float64) float64 {
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// checkCandidate rejects a ColorField naming a candidate absent from the
// results; a typo must fail loudly instead of plotting zeros. Empty means
// no explicit selection and always passes.
func checkCandidate(t *merge.Table, candidate string) error {
	if candidate == "" {
		return nil
	}
	for _, cand := range t.Candidates {
		if cand == candidate {
			return nil
		}
	}
	return fmt.Errorf("%w: no candidate %q in the results", geodata.ErrFormat, candidate)
}

func fieldValue(rec merge.Record, field string, t *merge.Table) (float64, error) {
	switch field {
	case "total", "total_votes", "votes":
		return float64(rec.TotalVotes), nil
	case "turnout":
		return rec.Turnout(), nil
	}
	for _, cand := range t.Candidates {
		if cand == field {
			return float64(rec.Votes[cand]), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown field %q (want total, turnout or a candidate name)",
		geodata.ErrFormat, field)
}

func axisLabel(agg Agg) string {
	switch agg {
	case AggCount:
		return "records"
	case AggMean:
		return "mean votes"
	default:
		return "votes"
	}
}

func titleConfig(title string) map[string]interface{} {
	return map[string]interface{}{"text": title, "left": "center"}
}

func gridConfig() map[string]interface{} {
	return map[string]interface{}{
		"left":         "3%",
		"right":        "4%",
		"bottom":       "10%",
		"containLabel": true,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
