package figure

import (
	"encoding/json"
	"fmt"
	"html"
	"os"
	"strings"

	"github.com/junkd0g/electomap/style"
)

// HTML renders the figure as a self-contained document: ECharts from the
// CDN, theme CSS, the chart container and a script embedding the figure
// data as JSON. Rendering is deterministic for a given figure.
func (f *Figure) HTML() string {
	var sb strings.Builder

	sb.WriteString(f.renderHead())
	sb.WriteString(`<body><div class="container">`)
	sb.WriteString(f.renderHeader())

	if f.Kind == KindMap {
		sb.WriteString(f.renderStatsCards())
		sb.WriteString(f.renderControls())
	}
	if len(f.Warnings) > 0 {
		sb.WriteString(f.renderWarnings())
	}

	sb.WriteString(fmt.Sprintf(
		`<div class="chart-box"><div id="chart" class="chart" style="height:%dpx"></div></div>`,
		f.Height))

	sb.WriteString(`<footer><p>Generated by electomap</p></footer>`)
	sb.WriteString(`</div>`)
	sb.WriteString(f.renderScripts())
	sb.WriteString(`</body></html>`)

	return sb.String()
}

// WriteHTML writes the rendered document to path.
func (f *Figure) WriteHTML(path string) error {
	if err := os.WriteFile(path, []byte(f.HTML()), 0o644); err != nil {
		return fmt.Errorf("write HTML file: %w", err)
	}
	return nil
}

func (f *Figure) renderHead() string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>%s</title>
    <script src="https://cdn.jsdelivr.net/npm/echarts@5.4.3/dist/echarts.min.js"></script>
    <style>%s</style>
</head>`, html.EscapeString(stripPlaceholder(f.Title)), style.CSS(f.Theme))
}

func (f *Figure) renderHeader() string {
	subtitle := f.Subtitle
	if subtitle == "" && f.Kind == KindMap {
		subtitle = "Results by administrative unit"
	}
	return fmt.Sprintf(`
<header>
    <h1>%s</h1>
    <p>%s</p>
</header>`, html.EscapeString(stripPlaceholder(f.Title)), html.EscapeString(subtitle))
}

// stripPlaceholder removes the {candidate} template from a title for
// contexts without a selected candidate, dropping the separator it
// dangled from ("Results - {candidate}" reads "Results", not "Results -").
func stripPlaceholder(title string) string {
	s := strings.ReplaceAll(title, "{candidate}", "")
	return strings.TrimRight(strings.TrimSpace(s), "-: ")
}

func (f *Figure) renderStatsCards() string {
	return fmt.Sprintf(`
<div class="stats-grid">
    <div class="stat-card">
        <div class="number" id="stat-grand-total">%s</div>
        <div class="label">Total votes</div>
    </div>
    <div class="stat-card">
        <div class="number" id="stat-candidate-total">-</div>
        <div class="label">Candidate votes</div>
    </div>
    <div class="stat-card">
        <div class="number" id="stat-candidate-share">-</div>
        <div class="label">National share</div>
    </div>
    <div class="stat-card">
        <div class="number">%s</div>
        <div class="label">Leader: %s</div>
    </div>
    <div class="stat-card">
        <div class="number">%d / %d</div>
        <div class="label">Units with data</div>
    </div>
</div>`,
		style.FormatVotes(dataInt(f.Data, "grandTotal")),
		style.FormatVotes(dataInt(f.Data, "totals", dataString(f.Data, "leader"))),
		html.EscapeString(dataString(f.Data, "leader")),
		dataInt(f.Data, "matched"), dataInt(f.Data, "units"))
}

func (f *Figure) renderControls() string {
	candidates, _ := f.Data["candidates"].([]string)
	var opts strings.Builder
	for _, cand := range candidates {
		opts.WriteString(fmt.Sprintf(`<option value="%s">%s</option>`,
			html.EscapeString(cand), html.EscapeString(cand)))
	}
	return fmt.Sprintf(`
<div class="controls">
    <label for="candidate-select">Candidate:</label>
    <select id="candidate-select">%s</select>
</div>`, opts.String())
}

func (f *Figure) renderWarnings() string {
	var sb strings.Builder
	for _, w := range f.Warnings {
		sb.WriteString(fmt.Sprintf(`<div class="note">%s</div>`, html.EscapeString(w)))
	}
	return sb.String()
}

func (f *Figure) renderScripts() string {
	page := f.Data
	if f.Kind != KindMap {
		page = map[string]interface{}{"option": f.Option}
	}
	dataJSON, err := json.Marshal(page)
	if err != nil {
		// The page still loads and says what went wrong instead of
		// rendering blank.
		dataJSON, _ = json.Marshal(map[string]string{
			"error": "encode figure data: " + err.Error(),
		})
	}

	script := chartInitScript
	if f.Kind == KindMap {
		script = mapInitScript
	}

	return fmt.Sprintf(`
<script>
const data = %s;
const charts = [];

%s

window.addEventListener('resize', () => charts.forEach(c => c.resize()));
</script>`, string(dataJSON), script)
}

// dataInt digs an int out of the page data, following nested maps.
func dataInt(data map[string]interface{}, keys ...string) int {
	var cur interface{} = data
	for _, k := range keys {
		switch m := cur.(type) {
		case map[string]interface{}:
			cur = m[k]
		case map[string]int:
			return m[k]
		default:
			return 0
		}
	}
	if v, ok := cur.(int); ok {
		return v
	}
	return 0
}

func dataString(data map[string]interface{}, key string) string {
	if v, ok := data[key].(string); ok {
		return v
	}
	return ""
}

// Chart initialization scripts

const chartInitScript = `
(function() {
    const el = document.getElementById('chart');
    if (!el) return;
    if (data.error) { el.textContent = data.error; return; }
    const chart = echarts.init(el);
    charts.push(chart);
    chart.setOption(data.option);
})();
`

const mapInitScript = `
(function() {
    const el = document.getElementById('chart');
    if (!el) return;
    if (data.error) { el.textContent = data.error; return; }
    echarts.registerMap(data.mapName, data.geo);
    const chart = echarts.init(el);
    charts.push(chart);

    function tooltipLines(p) {
        const lines = ['<strong>' + p.name + '</strong>'];
        if (!p.data) {
            lines.push('No data');
            return lines.join('<br/>');
        }
        data.tooltip.forEach(field => {
            if (field === 'votes') lines.push('Votes: ' + p.data.value.toLocaleString());
            if (field === 'share') lines.push('Share: ' + p.data.share.toFixed(1) + '%');
            if (field === 'total') {
                const total = data.grandTotal;
                lines.push('National total: ' + total.toLocaleString());
            }
        });
        return lines.join('<br/>');
    }

    function buildOption(candidate) {
        return {
            title: { text: data.title.replace('{candidate}', candidate), left: 'center' },
            tooltip: { trigger: 'item', formatter: tooltipLines },
            visualMap: {
                min: 0,
                max: data.max[candidate] || 1,
                calculable: true,
                inRange: { color: data.palette },
                left: 'right',
                text: ['Votes', '']
            },
            series: [{
                type: 'map',
                map: data.mapName,
                nameProperty: 'name',
                roam: true,
                itemStyle: { areaColor: data.noData, borderColor: '#6b7280' },
                emphasis: { label: { show: true }, itemStyle: { borderColor: '#111827', borderWidth: 2 } },
                data: data.series[candidate]
            }]
        };
    }

    function updateStats(candidate) {
        const total = data.totals[candidate] || 0;
        const totalEl = document.getElementById('stat-candidate-total');
        if (totalEl) totalEl.textContent = total.toLocaleString();
        const shareEl = document.getElementById('stat-candidate-share');
        if (shareEl) {
            const pct = data.grandTotal ? (total / data.grandTotal * 100).toFixed(1) : '0.0';
            shareEl.textContent = pct + '%';
        }
    }

    let current = data.candidates[0];
    chart.setOption(buildOption(current));
    updateStats(current);

    const sel = document.getElementById('candidate-select');
    if (sel) sel.addEventListener('change', () => {
        current = sel.value;
        chart.setOption(buildOption(current), true);
        updateStats(current);
    });
})();
`
