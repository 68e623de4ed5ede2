// Package style maps data values to visual encodings. Everything here is
// a pure function over its arguments: palettes are returned as fresh
// copies so callers can never interfere with each other.
package style

import (
	"fmt"
	"strconv"
	"strings"
)

// Palette is an ordered run of hex colors from low to high values.
type Palette []string

// NoDataColor fills units the results never mentioned. It sits outside
// every palette so "no data" is never mistaken for a low value.
const NoDataColor = "#e5e7eb"

// Blues is the default sequential palette, dark to light.
func Blues() Palette {
	return Palette{
		"#1e3a8a", "#1e40af", "#1d4ed8",
		"#2563eb", "#3b82f6", "#60a5fa",
		"#93c5fd", "#bfdbfe", "#dbeafe",
	}
}

// Categorical returns the palette used to tell candidates apart.
func Categorical() Palette {
	return Palette{
		"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
		"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
	}
}

// ValueKind is the closed set of things a styled value can be.
type ValueKind int

const (
	KindShare    ValueKind = iota // numeric vote share, 0–100
	KindCategory                  // a candidate identity
	KindMissing                   // unmatched unit, no data
)

// Encoding is the visual result of styling one value.
type Encoding struct {
	Fill   string
	Legend string
}

// EncodingFor maps a value of the given kind to its encoding. share is
// read for KindShare, index for KindCategory. Anything outside the
// closed kind set falls back to the no-data encoding. The bundled HTML
// colors map regions client-side through the ECharts visualMap; this is
// for callers styling values server-side.
func EncodingFor(kind ValueKind, share float64, index int, p Palette) Encoding {
	switch kind {
	case KindShare:
		return Encoding{Fill: Ramp(share, 0, 100, p), Legend: FormatPercent(share)}
	case KindCategory:
		cat := Categorical()
		return Encoding{Fill: cat[((index%len(cat))+len(cat))%len(cat)], Legend: "candidate"}
	case KindMissing:
		return Encoding{Fill: NoDataColor, Legend: "No data"}
	default:
		return Encoding{Fill: NoDataColor, Legend: "No data"}
	}
}

// Ramp maps v linearly onto the palette over [min, max]. Out-of-range
// values clamp to the palette ends.
func Ramp(v, min, max float64, p Palette) string {
	if len(p) == 0 {
		return NoDataColor
	}
	if max <= min || v <= min {
		return p[0]
	}
	if v >= max {
		return p[len(p)-1]
	}
	idx := int((v - min) / (max - min) * float64(len(p)))
	if idx >= len(p) {
		idx = len(p) - 1
	}
	return p[idx]
}

// FormatVotes renders a vote count with thousands separators: 1234567 →
// "1,234,567".
func FormatVotes(n int) string {
	s := strconv.Itoa(n)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg, s = true, s[1:]
	}

	var b strings.Builder
	for i, d := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// FormatPercent renders a share with one decimal: 12.34 → "12.3%".
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}
