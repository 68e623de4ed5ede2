package geodata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `moughataa,candidate,nb_votes,year,turnout
Atar,Ghazouani,1200,2024,61.5
Atar,Biram,800,2024,61.5
Akjoujt,Ghazouani,950,2024,58.2
`

func TestReadResults(t *testing.T) {
	results, err := ReadResults(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, results, 3)

	first := results[0]
	assert.Equal(t, "Atar", first.Unit)
	assert.Equal(t, "Ghazouani", first.Candidate)
	assert.Equal(t, 1200, first.Votes)
	assert.Equal(t, 2024, first.Year)
	assert.InDelta(t, 61.5, first.Turnout, 0.001)
}

func TestReadResultsHeaderAliases(t *testing.T) {
	csv := "Unit Name,Candidate,Votes\nAtar,Ghazouani,10\n"
	results, err := ReadResults(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Atar", results[0].Unit)
	assert.Equal(t, 10, results[0].Votes)
	assert.Zero(t, results[0].Year, "optional column absent")
}

func TestReadResultsMissingColumn(t *testing.T) {
	csv := "moughataa,nb_votes\nAtar,10\n"
	_, err := ReadResults(strings.NewReader(csv))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFormat)
	assert.Contains(t, err.Error(), "candidate")
}

func TestReadResultsBadVotes(t *testing.T) {
	csv := "moughataa,candidate,nb_votes\nAtar,Ghazouani,many\n"
	_, err := ReadResults(strings.NewReader(csv))
	assert.ErrorIs(t, err, ErrFormat)
}

func TestReadResultsBadTurnout(t *testing.T) {
	csv := "moughataa,candidate,nb_votes,turnout\nAtar,Ghazouani,10,high\n"
	_, err := ReadResults(strings.NewReader(csv))
	assert.ErrorIs(t, err, ErrFormat)
}

func TestLoadResultsFromURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleCSV))
	}))
	defer srv.Close()

	results, err := LoadResults(context.Background(), srv.URL, srv.Client())
	require.NoError(t, err)
	assert.Len(t, results, 3)
}

func TestLoadResultsURLStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := LoadResults(context.Background(), srv.URL, srv.Client())
	assert.ErrorIs(t, err, ErrDataAccess)
}

func TestLoadResultsUnreachableURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := LoadResults(context.Background(), url, nil)
	assert.ErrorIs(t, err, ErrDataAccess)
}

func TestLoadResultsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))

	results, err := LoadResults(context.Background(), path, nil)
	require.NoError(t, err)
	assert.Len(t, results, 3)
}

func TestLoadResultsMissingFile(t *testing.T) {
	_, err := LoadResults(context.Background(), filepath.Join(t.TempDir(), "nope.csv"), nil)
	assert.ErrorIs(t, err, ErrDataAccess)
}
