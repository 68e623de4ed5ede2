package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyMatchesAcrossSpellings(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"Nouakchott-Nord", "nouakchott nord", true},
		{"Nouakchott-Nord", "NOUAKCHOTTNORD", true},
		{"nouakchott nord", "NOUAKCHOTTNORD", true},
		{"Dakhlet Nouâdhibou", "dakhlet nouadhibou", true},
		{"M'Bagne", "Mbagne", true},
		{"Sebkha", " Sebkha ", true},
		{"Nouakchott-Nord", "Nouakchott-Sud", false},
		{"Atar", "Akjoujt", false},
	}

	for _, tt := range tests {
		got := Key(tt.a) == Key(tt.b)
		assert.Equal(t, tt.want, got, "Key(%q) vs Key(%q)", tt.a, tt.b)
	}
}

func TestKeyIdempotent(t *testing.T) {
	for _, s := range []string{"Nouakchott-Nord", "Dakhlet Nouâdhibou", "M'Bagne", ""} {
		once := Key(s)
		assert.Equal(t, once, Key(once), "Key not idempotent for %q", s)
	}
}

func TestKeyLiteral(t *testing.T) {
	assert.Equal(t, "nouakchottnord", Key("Nouakchott-Nord"))
	assert.Equal(t, "dakhletnouadhibou", Key("Dakhlet Nouâdhibou"))
}
