package annotate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustEvent(t *testing.T, s string) Event {
	t.Helper()
	ev, err := ParseEvent(s)
	require.NoError(t, err)
	return ev
}

func TestCaptureSlotStates(t *testing.T) {
	c := NewCapture(2)
	assert.Equal(t, SlotIdle, c.State(0))

	c.Apply(mustEvent(t, "down 10 20"))
	assert.Equal(t, SlotDrawing, c.State(0))
	assert.Equal(t, SlotIdle, c.State(1))

	c.Apply(mustEvent(t, "move 15 25"))
	preview, ok := c.Preview()
	require.True(t, ok)
	assert.Equal(t, NewBox(10, 20, 15, 25), preview)

	c.Apply(mustEvent(t, "up 30 40"))
	assert.Equal(t, SlotCommitted, c.State(0))
	assert.Equal(t, SlotIdle, c.State(1))
	_, ok = c.Preview()
	assert.False(t, ok)
	assert.False(t, c.Done())

	c.Apply(mustEvent(t, "skip"))
	assert.Equal(t, SlotCommitted, c.State(1))
	assert.True(t, c.Done())
	assert.Equal(t, []Box{NewBox(10, 20, 30, 40), Unset}, c.Boxes())
}

func TestCaptureIgnoresStrayEvents(t *testing.T) {
	c := NewCapture(1)
	c.Apply(mustEvent(t, "move 5 5"))
	c.Apply(mustEvent(t, "up 5 5"))
	assert.Empty(t, c.Boxes())

	c.Apply(mustEvent(t, "down 1 1"))
	c.Apply(mustEvent(t, "up 2 2"))
	require.True(t, c.Done())

	// Full: presses and skips no longer add boxes.
	c.Apply(mustEvent(t, "down 3 3"))
	c.Apply(mustEvent(t, "up 4 4"))
	c.Apply(mustEvent(t, "skip"))
	assert.Equal(t, []Box{NewBox(1, 1, 2, 2)}, c.Boxes())
}

func TestCaptureSkipCancelsDrag(t *testing.T) {
	c := NewCapture(2)
	c.Apply(mustEvent(t, "down 1 1"))
	c.Apply(mustEvent(t, "skip"))
	c.Apply(mustEvent(t, "up 9 9"))

	assert.Equal(t, []Box{Unset}, c.Boxes())
	assert.Equal(t, SlotIdle, c.State(1))
}

func TestCaptureReset(t *testing.T) {
	c := NewCapture(2)
	c.Apply(mustEvent(t, "down 1 1"))
	c.Apply(mustEvent(t, "up 2 2"))
	c.Apply(mustEvent(t, "down 3 3"))
	c.Apply(mustEvent(t, "reset"))

	assert.Empty(t, c.Boxes())
	assert.Equal(t, SlotIdle, c.State(0))
	assert.Equal(t, "idle", c.State(0).String())
}

func TestReplay(t *testing.T) {
	boxes, err := Replay(2, []string{"down 10 10", "move 12 12", "up 20 20", "skip"})
	require.NoError(t, err)
	assert.Equal(t, []Box{NewBox(10, 10, 20, 20), Unset}, boxes)

	_, err = Replay(2, []string{"down 10 10", "up 20 20"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = Replay(1, []string{"click 1 1"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestParseEventErrors(t *testing.T) {
	for _, s := range []string{"", "down", "down 1", "down a b", "skip 1 2", "jump"} {
		_, err := ParseEvent(s)
		assert.ErrorIs(t, err, ErrInvalidInput, "event %q", s)
	}
}
