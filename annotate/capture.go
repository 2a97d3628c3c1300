package annotate

import (
	"fmt"
	"strings"
)

// SlotState is the drawing state of one element slot on the current frame.
type SlotState int

const (
	SlotIdle SlotState = iota
	SlotDrawing
	SlotCommitted
)

func (s SlotState) String() string {
	switch s {
	case SlotDrawing:
		return "drawing"
	case SlotCommitted:
		return "committed"
	}
	return "idle"
}

// EventKind is an operator input on the annotation surface.
type EventKind string

const (
	EventDown  EventKind = "down"
	EventMove  EventKind = "move"
	EventUp    EventKind = "up"
	EventSkip  EventKind = "skip"
	EventReset EventKind = "reset"
)

// Event is a single operator input at a working-resolution position.
type Event struct {
	Kind EventKind
	At   Point
}

// ParseEvent decodes "down 10 20", "move 11 21", "up 30 40", "skip" or
// "reset".
func ParseEvent(s string) (Event, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return Event{}, fmt.Errorf("empty event: %w", ErrInvalidInput)
	}

	ev := Event{Kind: EventKind(fields[0])}
	switch ev.Kind {
	case EventSkip, EventReset:
		if len(fields) != 1 {
			return Event{}, fmt.Errorf("event %q takes no position: %w", s, ErrInvalidInput)
		}
	case EventDown, EventMove, EventUp:
		if len(fields) != 3 {
			return Event{}, fmt.Errorf("event %q needs x and y: %w", s, ErrInvalidInput)
		}
		if _, err := fmt.Sscanf(fields[1]+" "+fields[2], "%d %d", &ev.At.X, &ev.At.Y); err != nil {
			return Event{}, fmt.Errorf("event %q: %w", s, ErrInvalidInput)
		}
	default:
		return Event{}, fmt.Errorf("unknown event %q: %w", fields[0], ErrInvalidInput)
	}
	return ev, nil
}

// Capture collects the boxes for one frame from operator events. Slots are
// filled in order; each is idle, being drawn, or committed.
type Capture struct {
	numElements int
	boxes       []Box
	drawing     bool
	anchor      Point
	cursor      Point
}

// NewCapture creates a Capture for numElements slots.
func NewCapture(numElements int) *Capture {
	c := new(Capture)
	c.numElements = numElements
	c.boxes = make([]Box, 0, numElements)
	return c
}

// Apply feeds one event to the state machine.
func (c *Capture) Apply(ev Event) {
	switch ev.Kind {
	case EventDown:
		if !c.Done() {
			c.drawing = true
			c.anchor = ev.At
			c.cursor = ev.At
		}
	case EventMove:
		if c.drawing {
			c.cursor = ev.At
		}
	case EventUp:
		if c.drawing {
			c.drawing = false
			c.boxes = append(c.boxes, Box{c.anchor, ev.At})
		}
	case EventSkip:
		c.drawing = false
		if !c.Done() {
			c.boxes = append(c.boxes, Unset)
		}
	case EventReset:
		c.drawing = false
		c.boxes = c.boxes[:0]
	}
}

// State reports the state of a slot.
func (c *Capture) State(slot int) SlotState {
	switch {
	case slot < len(c.boxes):
		return SlotCommitted
	case slot == len(c.boxes) && c.drawing:
		return SlotDrawing
	}
	return SlotIdle
}

// Preview is the box being dragged, if any.
func (c *Capture) Preview() (Box, bool) {
	if !c.drawing {
		return Box{}, false
	}
	return Box{c.anchor, c.cursor}, true
}

// Done reports whether every slot is committed.
func (c *Capture) Done() bool {
	return len(c.boxes) >= c.numElements
}

// Boxes returns the committed boxes in slot order.
func (c *Capture) Boxes() []Box {
	return append([]Box(nil), c.boxes...)
}

// Replay runs the events through a fresh Capture and returns the boxes. It
// fails unless every slot ends up committed.
func Replay(numElements int, events []string) ([]Box, error) {
	c := NewCapture(numElements)
	for _, s := range events {
		ev, err := ParseEvent(s)
		if err != nil {
			return nil, err
		}
		c.Apply(ev)
	}
	if !c.Done() {
		return nil, fmt.Errorf("capture ended with %d of %d boxes: %w", len(c.boxes), numElements, ErrInvalidInput)
	}
	return c.Boxes(), nil
}
