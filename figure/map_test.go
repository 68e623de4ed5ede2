package figure

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"

	"github.com/junkd0g/electomap/geodata"
	"github.com/junkd0g/electomap/merge"
	"github.com/junkd0g/electomap/style"
)

func square(x float64) *geom.MultiPolygon {
	return geom.NewMultiPolygon(geom.XY).MustSetCoords([][][]geom.Coord{
		{{{x, 0}, {x, 1}, {x + 1, 1}, {x + 1, 0}, {x, 0}}},
	})
}

func mapTable() *merge.Table {
	units := []geodata.AdminUnit{
		{Name: "Atar", Geometry: square(0)},
		{Name: "Akjoujt", Geometry: square(2)},
		{Name: "Barkeol", Geometry: square(4)}, // no results
	}
	results := []geodata.Result{
		{Unit: "Atar", Candidate: "A", Votes: 120},
		{Unit: "Atar", Candidate: "B", Votes: 80},
		{Unit: "Akjoujt", Candidate: "A", Votes: 60},
		{Unit: "Akjoujt", Candidate: "B", Votes: 140},
	}
	return merge.Join(units, results, merge.JoinLeft)
}

func TestMapBuildsChoropleth(t *testing.T) {
	table := mapTable()

	fig, err := Map(table, Options{})
	require.NoError(t, err)

	assert.Equal(t, KindMap, fig.Kind)
	assert.Contains(t, string(fig.GeoJSON), "FeatureCollection")
	assert.Contains(t, string(fig.GeoJSON), "Barkeol")

	candidates, ok := fig.Data["candidates"].([]string)
	require.True(t, ok)
	assert.Equal(t, []string{"A", "B"}, candidates)

	series, ok := fig.Data["series"].(map[string][]map[string]interface{})
	require.True(t, ok)
	assert.Len(t, series["A"], 2, "unmatched units carry no series entry")

	require.Len(t, fig.Warnings, 1)
	assert.Contains(t, fig.Warnings[0], "Barkeol")
}

func TestMapHTML(t *testing.T) {
	fig, err := Map(mapTable(), Options{})
	require.NoError(t, err)

	html := fig.HTML()
	assert.Contains(t, html, "echarts.registerMap")
	assert.Contains(t, html, "echarts@5.4.3")
	assert.Contains(t, html, style.NoDataColor, "no-data color must reach the page")
	assert.Contains(t, html, `id="candidate-select"`)
	assert.Contains(t, html, "stat-card")
	assert.Contains(t, html, "Barkeol")
}

func TestMapDeterministic(t *testing.T) {
	table := mapTable()

	first, err := Map(table, Options{})
	require.NoError(t, err)
	second, err := Map(table, Options{})
	require.NoError(t, err)

	assert.Equal(t, first.HTML(), second.HTML())
}

func TestMapRequiresGeometry(t *testing.T) {
	units := []geodata.AdminUnit{
		{Name: "Atar", Geometry: square(0)},
		{Name: "Tidjikja"}, // geometry missing
	}
	results := []geodata.Result{{Unit: "Atar", Candidate: "A", Votes: 10}}
	table := merge.Join(units, results, merge.JoinLeft)

	_, err := Map(table, Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGeometry)
	assert.Contains(t, err.Error(), "Tidjikja")
}

func TestMapColorFieldSelectsCandidate(t *testing.T) {
	fig, err := Map(mapTable(), Options{ColorField: "B"})
	require.NoError(t, err)

	candidates := fig.Data["candidates"].([]string)
	assert.Equal(t, "B", candidates[0], "selected candidate opens the map")

	_, err = Map(mapTable(), Options{ColorField: "Nobody"})
	assert.ErrorIs(t, err, geodata.ErrFormat)
}

func TestMapTitleTemplate(t *testing.T) {
	fig, err := Map(mapTable(), Options{Title: "Results: {candidate}"})
	require.NoError(t, err)

	html := fig.HTML()
	assert.True(t, strings.Contains(html, "{candidate}"),
		"the candidate placeholder must survive into the page script")
}
