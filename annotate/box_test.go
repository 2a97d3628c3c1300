package annotate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoxLerpTruncates(t *testing.T) {
	a := NewBox(10, 10, 20, 20)
	b := NewBox(50, 13, 60, 21)

	assert.Equal(t, NewBox(30, 11, 40, 20), a.Lerp(b, 0.5))
	assert.Equal(t, a, a.Lerp(b, 0))
	assert.Equal(t, b, a.Lerp(b, 1))
}

func TestBoxLerpTruncatesTowardZero(t *testing.T) {
	// -1 + 11*0.5 = 4.5 and 0 - 3*0.5 = -1.5
	assert.Equal(t, 4, lerp(-1, 10, 0.5))
	assert.Equal(t, -1, lerp(0, -3, 0.5))
}

func TestBoxString(t *testing.T) {
	assert.Equal(t, "1,2,3,4", NewBox(1, 2, 3, 4).String())
	assert.Equal(t, "-1,-1,-1,-1", Unset.String())
}

func TestParseBox(t *testing.T) {
	b, err := ParseBox("5,6,70,80")
	require.NoError(t, err)
	assert.Equal(t, NewBox(5, 6, 70, 80), b)

	b, err = ParseBox(Unset.String())
	require.NoError(t, err)
	assert.True(t, b.IsUnset())

	_, err = ParseBox("5,6,70")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRescaleToOriginal(t *testing.T) {
	// 2000 px frames annotated in a 1000 px window.
	scale := 1000.0 / 2000.0
	b := NewBox(500, 250, 999, 562)

	assert.Equal(t, NewBox(1000, 500, 1998, 1124), b.Rescale(scale))
}

func TestRescaleRoundTrip(t *testing.T) {
	for _, scale := range []float64{1000.0 / 1920.0, 1000.0 / 1280.0, 0.5, 1} {
		for x := 0; x < 1000; x += 37 {
			b := NewBox(x, x/2, x+13, x/2+29)
			got := b.Rescale(scale).Scale(scale)
			assert.InDelta(t, b.Min.X, got.Min.X, 1, "scale %v x0", scale)
			assert.InDelta(t, b.Min.Y, got.Min.Y, 1, "scale %v y0", scale)
			assert.InDelta(t, b.Max.X, got.Max.X, 1, "scale %v x1", scale)
			assert.InDelta(t, b.Max.Y, got.Max.Y, 1, "scale %v y1", scale)
		}
	}
}
