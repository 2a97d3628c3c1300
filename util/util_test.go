package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestElementColour(t *testing.T) {
	assert.Equal(t, "#00ff00", ElementColour(0).Hex())
	assert.Equal(t, "#ff0080", ElementColour(9).Hex())

	// The second pass is a darker shade of the first.
	first, second := ElementColour(1), ElementColour(11)
	l1, _, _ := first.Lab()
	l2, _, _ := second.Lab()
	assert.Less(t, l2, l1)
	assert.Len(t, Palette(25), 25)
}

func TestEasing(t *testing.T) {
	f, err := Easing("linear")
	require.NoError(t, err)
	assert.Nil(t, f)

	f, err = Easing("")
	require.NoError(t, err)
	assert.Nil(t, f)

	for _, name := range EasingNames() {
		f, err := Easing(name)
		require.NoError(t, err)
		assert.InDelta(t, 0, f(0), 1e-9, name)
		assert.InDelta(t, 1, f(1), 1e-9, name)
		for x := 0.05; x < 1; x += 0.05 {
			y := f(x)
			assert.True(t, y >= 0 && y <= 1, "%s(%v) = %v", name, x, y)
		}
	}

	_, err = Easing("in-elastic")
	assert.Error(t, err)
}
