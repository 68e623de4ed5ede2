package figure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestPNGExport(t *testing.T) {
	table := fixtureTable()

	for name, build := range map[string]func() (*Figure, error){
		"bar":     func() (*Figure, error) { return Bar(table, Options{}) },
		"hist":    func() (*Figure, error) { return Hist(table, Options{}) },
		"line":    func() (*Figure, error) { return Line(table, Options{}) },
		"scatter": func() (*Figure, error) { return Scatter(table, Options{}) },
	} {
		fig, err := build()
		require.NoError(t, err, name)

		png, err := fig.PNG()
		require.NoError(t, err, name)
		require.Greater(t, len(png), len(pngMagic), name)
		assert.Equal(t, pngMagic, png[:4], "%s should render a PNG header", name)
	}
}

func TestPNGUnsupportedKinds(t *testing.T) {
	table := fixtureTable()

	box, err := Box(table, Options{})
	require.NoError(t, err)
	_, err = box.PNG()
	assert.ErrorIs(t, err, ErrUnsupported)

	fig, err := Map(mapTable(), Options{})
	require.NoError(t, err)
	_, err = fig.PNG()
	assert.ErrorIs(t, err, ErrUnsupported)
}
