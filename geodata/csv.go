package geodata

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
)

// Result is one row of election results: votes for one candidate in one
// administrative unit. Turnout and Year are zero when the source CSV has
// no such column.
type Result struct {
	Unit      string
	Candidate string
	Votes     int
	Turnout   float64
	Year      int
}

// Column aliases accepted in the CSV header, matched after snake_casing.
// The published Mauritania results use moughataa / candidate / nb_votes.
var (
	unitAliases      = []string{"moughataa", "unit", "unit_name", "admin_unit", "adm2_en"}
	candidateAliases = []string{"candidate", "candidat"}
	votesAliases     = []string{"nb_votes", "votes", "vote_count", "voix"}
	turnoutAliases   = []string{"turnout", "participation"}
	yearAliases      = []string{"year", "annee"}
)

// LoadResults reads election results from source, which is either an
// http(s) URL or a local file path. One GET, no retries; a nil client
// falls back to http.DefaultClient.
func LoadResults(ctx context.Context, source string, client *http.Client) ([]Result, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return fetchResults(ctx, source, client)
	}

	f, err := os.Open(source)
	if err != nil {
		return nil, fmt.Errorf("%w: results file %s: %v", ErrDataAccess, source, err)
	}
	defer f.Close()

	results, err := ReadResults(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	return results, nil
}

func fetchResults(ctx context.Context, url string, client *http.Client) ([]Result, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request for %s: %v", ErrDataAccess, url, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch %s: %v", ErrDataAccess, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: fetch %s: status %s", ErrDataAccess, url, resp.Status)
	}

	results, err := ReadResults(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", url, err)
	}
	return results, nil
}

// ReadResults parses CSV election results. The header must carry unit,
// candidate and vote-count columns under any of the accepted aliases;
// turnout and year columns are optional. Malformed rows are a format
// error, never silently dropped.
func ReadResults(r io.Reader) ([]Result, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: read CSV header: %v", ErrFormat, err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[toSnakeCase(h)] = i
	}

	unitIdx, err := requireColumn(cols, unitAliases, "unit")
	if err != nil {
		return nil, err
	}
	candIdx, err := requireColumn(cols, candidateAliases, "candidate")
	if err != nil {
		return nil, err
	}
	votesIdx, err := requireColumn(cols, votesAliases, "votes")
	if err != nil {
		return nil, err
	}
	turnoutIdx := findColumn(cols, turnoutAliases)
	yearIdx := findColumn(cols, yearAliases)

	var results []Result
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: CSV line %d: %v", ErrFormat, line, err)
		}

		res := Result{
			Unit:      strings.TrimSpace(row[unitIdx]),
			Candidate: strings.TrimSpace(row[candIdx]),
		}

		res.Votes, err = strconv.Atoi(strings.TrimSpace(row[votesIdx]))
		if err != nil {
			return nil, fmt.Errorf("%w: CSV line %d: vote count %q is not an integer",
				ErrFormat, line, row[votesIdx])
		}

		if turnoutIdx >= 0 {
			if v := strings.TrimSpace(row[turnoutIdx]); v != "" {
				res.Turnout, err = strconv.ParseFloat(v, 64)
				if err != nil {
					return nil, fmt.Errorf("%w: CSV line %d: turnout %q is not a number",
						ErrFormat, line, v)
				}
			}
		}
		if yearIdx >= 0 {
			if v := strings.TrimSpace(row[yearIdx]); v != "" {
				res.Year, err = strconv.Atoi(v)
				if err != nil {
					return nil, fmt.Errorf("%w: CSV line %d: year %q is not an integer",
						ErrFormat, line, v)
				}
			}
		}

		results = append(results, res)
	}

	return results, nil
}

func requireColumn(cols map[string]int, aliases []string, label string) (int, error) {
	if i := findColumn(cols, aliases); i >= 0 {
		return i, nil
	}
	return -1, fmt.Errorf("%w: CSV has no %s column (accepted: %s)",
		ErrFormat, label, strings.Join(aliases, ", "))
}

func findColumn(cols map[string]int, aliases []string) int {
	for _, a := range aliases {
		if i, ok := cols[a]; ok {
			return i
		}
	}
	return -1
}

// toSnakeCase converts "Nb Votes" → "nb_votes" for header matching.
func toSnakeCase(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}
