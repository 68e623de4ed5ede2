package electomap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	shp "github.com/jonas-p/go-shp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/junkd0g/electomap/figure"
	"github.com/junkd0g/electomap/geodata"
	"github.com/junkd0g/electomap/merge"
)

const resultsCSV = `moughataa,candidate,nb_votes,year
Nouakchott-Nord,Ghazouani,1200,2024
Nouakchott-Nord,Biram,800,2024
Sebkha,Ghazouani,600,2024
Sebkha,Biram,900,2024
Sebkha,Biram,100,2019
`

func writeShapefile(t *testing.T, path string, names []string) {
	t.Helper()

	w, err := shp.Create(path, shp.POLYGON)
	require.NoError(t, err)

	w.SetFields([]shp.Field{shp.StringField("ADM2_EN", 50)})
	for i, name := range names {
		x := float64(i * 2)
		ring := [][]shp.Point{{
			{X: x, Y: 0}, {X: x, Y: 1}, {X: x + 1, Y: 1}, {X: x + 1, Y: 0}, {X: x, Y: 0},
		}}
		poly := shp.Polygon(*shp.NewPolyLine(ring))
		w.Write(&poly)
		w.WriteAttribute(i, 0, name)
	}
	w.Close()

	// go-shp v0.1.1's Create strips the ".shp" suffix including the dot and
	// SetFields appends the bare string "dbf", so the attribute table lands
	// next to the shapefile as "<base>dbf"; move it where Open expects it.
	base := strings.TrimSuffix(path, ".shp")
	require.NoError(t, os.Rename(base+"dbf", base+".dbf"))

	// The same writer pads string attributes with NUL bytes where the dBASE
	// format uses spaces; rewrite the record area so the fixture matches a
	// real shapefile's attribute table.
	dbf, err := os.ReadFile(base + ".dbf")
	require.NoError(t, err)
	recordStart := int(dbf[8]) | int(dbf[9])<<8
	for i := recordStart; i < len(dbf); i++ {
		if dbf[i] == 0 {
			dbf[i] = ' '
		}
	}
	require.NoError(t, os.WriteFile(base+".dbf", dbf, 0o644))
}

func csvServer(t *testing.T, hits *int64) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			atomic.AddInt64(hits, 1)
		}
		w.Write([]byte(resultsCSV))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestStyledElectionMap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "moughataas.shp")
	writeShapefile(t, path, []string{"Nouakchott-Nord", "Sebkha"})
	srv := csvServer(t, nil)

	fig, err := StyledElectionMap(context.Background(), path, srv.URL,
		WithYear(2024),
		WithTitle("Presidential results: {candidate}"),
		WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)

	assert.Equal(t, figure.KindMap, fig.Kind)
	assert.Equal(t, "Presidential results: {candidate}", fig.Title)
	assert.Empty(t, fig.Warnings, "fully matched join carries no warnings")
	assert.Equal(t, 3500, fig.Data["grandTotal"], "2019 rows filtered out")
	assert.Contains(t, fig.HTML(), "Nouakchott-Nord")
}

func TestStyledElectionMapLeftJoinRendersNoData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "moughataas.shp")
	writeShapefile(t, path, []string{"Nouakchott-Nord", "Sebkha", "Ouad Naga"})
	srv := csvServer(t, nil)

	fig, err := StyledElectionMap(context.Background(), path, srv.URL,
		WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	require.Len(t, fig.Warnings, 1)
	assert.Contains(t, fig.Warnings[0], "Ouad Naga")
}

func TestStyledBarTotals(t *testing.T) {
	path := filepath.Join(t.TempDir(), "moughataas.shp")
	writeShapefile(t, path, []string{"Nouakchott-Nord", "Sebkha"})
	srv := csvServer(t, nil)

	fig, err := StyledBar(context.Background(), path, srv.URL,
		WithYear(2024),
		WithAggregation(figure.AggSum, figure.ByCandidate),
		WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)

	require.Len(t, fig.Series, 1)
	var total float64
	for _, v := range fig.Series[0].Y {
		total += v
	}
	assert.Equal(t, 3500.0, total)
}

func TestMissingShapefileFailsBeforeAnyFetch(t *testing.T) {
	var hits int64
	srv := csvServer(t, &hits)

	_, err := StyledBar(context.Background(),
		filepath.Join(t.TempDir(), "missing.shp"), srv.URL,
		WithHTTPClient(srv.Client()))

	require.Error(t, err)
	assert.ErrorIs(t, err, geodata.ErrDataAccess)
	assert.Zero(t, atomic.LoadInt64(&hits), "the loader must fail before any network read")
}

func TestInnerJoinOption(t *testing.T) {
	path := filepath.Join(t.TempDir(), "moughataas.shp")
	writeShapefile(t, path, []string{"Nouakchott-Nord", "Sebkha", "Ouad Naga"})
	srv := csvServer(t, nil)

	fig, err := StyledLine(context.Background(), path, srv.URL,
		WithJoinMode(merge.JoinInner),
		WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	require.NotEmpty(t, fig.Series)
	assert.Len(t, fig.Series[0].Labels, 2, "inner join drops the unmatched unit")
}

func TestAllChartKinds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "moughataas.shp")
	writeShapefile(t, path, []string{"Nouakchott-Nord", "Sebkha"})
	srv := csvServer(t, nil)
	ctx := context.Background()

	entries := map[figure.Kind]func() (*figure.Figure, error){
		figure.KindHist: func() (*figure.Figure, error) {
			return StyledHist(ctx, path, srv.URL, WithHTTPClient(srv.Client()))
		},
		figure.KindScatter: func() (*figure.Figure, error) {
			return StyledScatter(ctx, path, srv.URL, WithFields("Ghazouani", "Biram"), WithHTTPClient(srv.Client()))
		},
		figure.KindBox: func() (*figure.Figure, error) {
			return StyledBox(ctx, path, srv.URL, WithHTTPClient(srv.Client()))
		},
	}

	for kind, build := range entries {
		fig, err := build()
		require.NoError(t, err, kind)
		assert.Equal(t, kind, fig.Kind)
		assert.NotEmpty(t, fig.HTML())
	}
}
