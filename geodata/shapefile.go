package geodata

import (
	"fmt"
	"os"
	"strings"

	shp "github.com/jonas-p/go-shp"
	"github.com/twpayne/go-geom"
)

// AdminUnit is one administrative area read from a shapefile: a Moughataa
// in the Mauritanian datasets, but any polygon layer with a name
// attribute works. Units are immutable after load.
type AdminUnit struct {
	Name     string
	Code     string
	Geometry *geom.MultiPolygon // nil when the shape record is null
}

// Attribute names probed when the caller does not pin one. ADM2_EN is
// what the OCHA Mauritania admin-boundary layers use.
var defaultNameFields = []string{"ADM2_EN", "MOUGHATAA", "NAME", "NAME_2", "ADM2_FR"}

var defaultCodeFields = []string{"ADM2_PCODE", "ADM2_CODE", "CODE"}

// LoadShapefile reads the polygon layer at path into AdminUnits. The
// unit name is taken from nameField, or from the first matching default
// attribute when nameField is empty. The path must point at the .shp
// file; the sibling .dbf is read for attributes.
func LoadShapefile(path, nameField string) ([]AdminUnit, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: shapefile %s: %v", ErrDataAccess, path, err)
	}

	r, err := shp.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open shapefile %s: %v", ErrDataAccess, path, err)
	}
	defer r.Close()

	fields := r.Fields()
	nameIdx := findField(fields, nameField, defaultNameFields)
	if nameIdx < 0 {
		if nameField != "" {
			return nil, fmt.Errorf("%w: shapefile has no attribute %q", ErrFormat, nameField)
		}
		return nil, fmt.Errorf("%w: shapefile has no unit-name attribute (tried %s)",
			ErrFormat, strings.Join(defaultNameFields, ", "))
	}
	codeIdx := findField(fields, "", defaultCodeFields)

	var units []AdminUnit
	for r.Next() {
		n, shape := r.Shape()

		mp, err := toMultiPolygon(shape)
		if err != nil {
			return nil, fmt.Errorf("%w: shape %d: %v", ErrFormat, n, err)
		}

		unit := AdminUnit{
			Name:     strings.TrimSpace(r.ReadAttribute(n, nameIdx)),
			Geometry: mp,
		}
		if codeIdx >= 0 {
			unit.Code = strings.TrimSpace(r.ReadAttribute(n, codeIdx))
		}
		units = append(units, unit)
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("%w: read shapefile %s: %v", ErrDataAccess, path, err)
	}

	return units, nil
}

// findField resolves an attribute index. An explicit name wins; otherwise
// the candidates are probed in order. Matching is case-insensitive.
func findField(fields []shp.Field, name string, candidates []string) int {
	if name != "" {
		candidates = []string{name}
	}
	for _, want := range candidates {
		for i, f := range fields {
			if strings.EqualFold(f.String(), want) {
				return i
			}
		}
	}
	return -1
}

// toMultiPolygon converts a shapefile shape into a go-geom MultiPolygon.
// Shapefile rings wind clockwise for outer boundaries and
// counterclockwise for holes; each outer ring starts a new polygon and
// holes attach to the polygon opened before them.
func toMultiPolygon(shape shp.Shape) (*geom.MultiPolygon, error) {
	switch s := shape.(type) {
	case *shp.Polygon:
		mp := geom.NewMultiPolygon(geom.XY)
		var current *geom.Polygon

		flush := func() error {
			if current == nil {
				return nil
			}
			if err := mp.Push(current); err != nil {
				return err
			}
			current = nil
			return nil
		}

		for _, ring := range rings(s) {
			if !isHole(ring) || current == nil {
				if err := flush(); err != nil {
					return nil, err
				}
				current = geom.NewPolygon(geom.XY)
			}
			linear := geom.NewLinearRing(geom.XY)
			if _, err := linear.SetCoords(ring); err != nil {
				return nil, err
			}
			if err := current.Push(linear); err != nil {
				return nil, err
			}
		}
		if err := flush(); err != nil {
			return nil, err
		}
		return mp, nil
	case *shp.Null:
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported shape type %T, need polygons", shape)
	}
}

// rings splits a shapefile polygon record into its coordinate rings.
func rings(p *shp.Polygon) [][]geom.Coord {
	out := make([][]geom.Coord, 0, p.NumParts)
	for part := int32(0); part < p.NumParts; part++ {
		start := p.Parts[part]
		end := p.NumPoints
		if part+1 < p.NumParts {
			end = p.Parts[part+1]
		}
		ring := make([]geom.Coord, 0, end-start)
		for i := start; i < end; i++ {
			ring = append(ring, geom.Coord{p.Points[i].X, p.Points[i].Y})
		}
		out = append(out, ring)
	}
	return out
}

// isHole reports whether a ring winds counterclockwise (positive signed
// area), which marks interior rings in the shapefile convention.
func isHole(ring []geom.Coord) bool {
	var sum float64
	for i := 0; i < len(ring)-1; i++ {
		sum += ring[i][0]*ring[i+1][1] - ring[i+1][0]*ring[i][1]
	}
	return sum > 0
}
