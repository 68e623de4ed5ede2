// Package merge joins administrative-boundary units with election
// results on a normalized unit-name key. The join is pure and
// deterministic: identical inputs yield an identical Table, records keep
// the shapefile order and candidates are sorted.
package merge

import (
	"sort"

	"github.com/junkd0g/electomap/geodata"
)

// JoinMode selects what happens to administrative units without results.
type JoinMode int

const (
	// JoinLeft keeps every unit; unmatched ones carry no-data fields so
	// a map still renders the full territory. The default.
	JoinLeft JoinMode = iota
	// JoinInner drops units without results.
	JoinInner
)

func (m JoinMode) String() string {
	if m == JoinInner {
		return "inner"
	}
	return "left"
}

// Record is one administrative unit pivoted with its results: votes per
// candidate plus the raw rows that produced them. Matched is false for
// units the CSV never mentioned.
type Record struct {
	Unit       geodata.AdminUnit
	Results    []geodata.Result
	Votes      map[string]int
	TotalVotes int
	Matched    bool
}

// Share returns the candidate's share of the unit's votes in percent.
func (r Record) Share(candidate string) float64 {
	if r.TotalVotes == 0 {
		return 0
	}
	return float64(r.Votes[candidate]) / float64(r.TotalVotes) * 100
}

// Turnout averages the turnout values of the unit's result rows, zero
// when none carry one.
func (r Record) Turnout() float64 {
	var sum float64
	var n int
	for _, res := range r.Results {
		if res.Turnout != 0 {
			sum += res.Turnout
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// Mismatch lists unit names present on only one side of the join. It is
// reported, never raised: shape-only units render with no-data styling
// and result-only rows are simply unplottable.
type Mismatch struct {
	ShapeOnly  []string
	ResultOnly []string
}

// Empty reports whether both sides matched completely.
func (m Mismatch) Empty() bool {
	return len(m.ShapeOnly) == 0 && len(m.ResultOnly) == 0
}

// Table is the merged output handed to the chart builders.
type Table struct {
	Records    []Record
	Candidates []string
	Mode       JoinMode
	Mismatch   Mismatch
}

// Candidate totals across all records.
func (t *Table) Totals() map[string]int {
	totals := make(map[string]int, len(t.Candidates))
	for _, rec := range t.Records {
		for cand, votes := range rec.Votes {
			totals[cand] += votes
		}
	}
	return totals
}

// GrandTotal is the vote count over the whole table.
func (t *Table) GrandTotal() int {
	var total int
	for _, rec := range t.Records {
		total += rec.TotalVotes
	}
	return total
}

// Leader returns the candidate with the most votes nationally, ties
// broken alphabetically so the answer is stable.
func (t *Table) Leader() string {
	totals := t.Totals()
	var leader string
	best := -1
	for _, cand := range t.Candidates {
		if v := totals[cand]; v > best {
			leader, best = cand, v
		}
	}
	return leader
}

// Join merges units with results on the normalized name key. Rows for
// the same unit and candidate are summed, the way the source data
// repeats (polling-station level rows roll up to the Moughataa).
func Join(units []geodata.AdminUnit, results []geodata.Result, mode JoinMode) *Table {
	byUnit := make(map[string][]geodata.Result)
	firstSpelling := make(map[string]string)
	for _, res := range results {
		k := Key(res.Unit)
		byUnit[k] = append(byUnit[k], res)
		if _, ok := firstSpelling[k]; !ok {
			firstSpelling[k] = res.Unit
		}
	}

	candidateSet := make(map[string]struct{})
	claimed := make(map[string]struct{})

	t := &Table{Mode: mode}
	for _, unit := range units {
		k := Key(unit.Name)
		rows, matched := byUnit[k]
		if matched {
			claimed[k] = struct{}{}
		} else if mode == JoinInner {
			t.Mismatch.ShapeOnly = append(t.Mismatch.ShapeOnly, unit.Name)
			continue
		} else {
			t.Mismatch.ShapeOnly = append(t.Mismatch.ShapeOnly, unit.Name)
		}

		rec := Record{
			Unit:    unit,
			Results: rows,
			Votes:   make(map[string]int, len(rows)),
			Matched: matched,
		}
		for _, row := range rows {
			rec.Votes[row.Candidate] += row.Votes
			rec.TotalVotes += row.Votes
			candidateSet[row.Candidate] = struct{}{}
		}
		t.Records = append(t.Records, rec)
	}

	for k, spelling := range firstSpelling {
		if _, ok := claimed[k]; !ok {
			t.Mismatch.ResultOnly = append(t.Mismatch.ResultOnly, spelling)
		}
	}
	sort.Strings(t.Mismatch.ResultOnly)

	t.Candidates = make([]string, 0, len(candidateSet))
	for cand := range candidateSet {
		t.Candidates = append(t.Candidates, cand)
	}
	sort.Strings(t.Candidates)

	return t
}

// FilterYear keeps the rows of one election year. Zero disables the
// filter; rows without a year column never match a non-zero filter.
func FilterYear(results []geodata.Result, year int) []geodata.Result {
	if year == 0 {
		return results
	}
	out := make([]geodata.Result, 0, len(results))
	for _, res := range results {
		if res.Year == year {
			out = append(out, res)
		}
	}
	return out
}
