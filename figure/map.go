package figure

import (
	"encoding/json"
	"fmt"

	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/junkd0g/electomap/merge"
	"github.com/junkd0g/electomap/style"
)

const mapName = "admin-units"

// Map builds the interactive choropleth: one colored polygon per
// administrative unit, a candidate selector that swaps the plotted
// series, and national stat cards. Every record must carry geometry;
// the check runs before anything is rendered.
func Map(t *merge.Table, opts Options) (*Figure, error) {
	opts = opts.withDefaults(KindMap)

	for _, rec := range t.Records {
		if rec.Unit.Geometry == nil {
			return nil, fmt.Errorf("%w: unit %q has no geometry", ErrGeometry, rec.Unit.Name)
		}
	}

	raw, err := featureCollection(t)
	if err != nil {
		return nil, fmt.Errorf("encode GeoJSON: %w", err)
	}

	candidates := t.Candidates
	if opts.ColorField != "" {
		if err := checkCandidate(t, opts.ColorField); err != nil {
			return nil, err
		}
		// Selected candidate first so the map opens on it.
		reordered := []string{opts.ColorField}
		for _, cand := range candidates {
			if cand != opts.ColorField {
				reordered = append(reordered, cand)
			}
		}
		candidates = reordered
	}

	series := make(map[string][]map[string]interface{}, len(candidates))
	maxVotes := make(map[string]int, len(candidates))
	for _, cand := range candidates {
		var items []map[string]interface{}
		for _, rec := range t.Records {
			if !rec.Matched {
				continue // falls back to the no-data area color
			}
			items = append(items, map[string]interface{}{
				"name":  rec.Unit.Name,
				"value": rec.Votes[cand],
				"share": round2(rec.Share(cand)),
			})
			if rec.Votes[cand] > maxVotes[cand] {
				maxVotes[cand] = rec.Votes[cand]
			}
		}
		series[cand] = items
	}

	matched := 0
	for _, rec := range t.Records {
		if rec.Matched {
			matched++
		}
	}

	fig := &Figure{
		Kind:     KindMap,
		Title:    opts.Title,
		Subtitle: opts.Subtitle,
		Width:    opts.Width,
		Height:   opts.Height,
		Theme:    opts.Theme,
		GeoJSON:  raw,
		Data: map[string]interface{}{
			"mapName":    mapName,
			"geo":        json.RawMessage(raw),
			"title":      opts.Title,
			"candidates": candidates,
			"series":     series,
			"max":        maxVotes,
			"totals":     t.Totals(),
			"grandTotal": t.GrandTotal(),
			"leader":     t.Leader(),
			"units":      len(t.Records),
			"matched":    matched,
			"palette":    opts.Palette,
			"noData":     style.NoDataColor,
			"tooltip":    opts.TooltipFields,
		},
		Warnings: mismatchWarnings(t),
	}
	return fig, nil
}

// featureCollection encodes unit geometries with the properties the map
// tooltip reads: name, match flag, per-candidate votes and total.
func featureCollection(t *merge.Table) ([]byte, error) {
	fc := geojson.FeatureCollection{}
	for _, rec := range t.Records {
		props := map[string]interface{}{
			"name":    rec.Unit.Name,
			"matched": rec.Matched,
			"total":   rec.TotalVotes,
		}
		if rec.Unit.Code != "" {
			props["code"] = rec.Unit.Code
		}
		for cand, votes := range rec.Votes {
			props[cand] = votes
		}
		fc.Features = append(fc.Features, &geojson.Feature{
			Geometry:   rec.Unit.Geometry,
			Properties: props,
		})
	}
	return json.Marshal(&fc)
}
