package annotate

import (
	"fmt"
)

// SentinelPolicy decides how unset boxes take part in interpolation.
type SentinelPolicy int

const (
	// SentinelPropagate marks an interpolated box unset when either end is unset.
	SentinelPropagate SentinelPolicy = iota
	// SentinelBlend interpolates the (-1,-1) corners like any other
	// coordinates. Matches the output of older annotation runs.
	SentinelBlend
)

// ParseSentinelPolicy maps "propagate" or "blend" to a policy. The empty
// string selects SentinelPropagate.
func ParseSentinelPolicy(s string) (SentinelPolicy, error) {
	switch s {
	case "", "propagate":
		return SentinelPropagate, nil
	case "blend":
		return SentinelBlend, nil
	}
	return 0, fmt.Errorf("unknown sentinel policy %q: %w", s, ErrInvalidInput)
}

func (p SentinelPolicy) String() string {
	if p == SentinelBlend {
		return "blend"
	}
	return "propagate"
}

// Interpolator expands keyframes into a dense per-frame Timeline.
type Interpolator struct {
	numElements int

	// Policy controls unset boxes, SentinelPropagate by default.
	Policy SentinelPolicy
	// Easing reshapes the transition point s/steps. Nil is linear.
	Easing func(float64) float64
}

// NewInterpolator creates an Interpolator for numElements boxes per frame.
func NewInterpolator(numElements int) *Interpolator {
	in := new(Interpolator)
	in.numElements = numElements
	in.Policy = SentinelPropagate
	return in
}

func (in *Interpolator) transition(s, steps int) float64 {
	t := float64(s) / float64(steps)
	if in.Easing != nil {
		t = in.Easing(t)
	}
	return t
}

// Between returns the box sets for the frames strictly between a and b, in
// frame order. It returns no sets when the keyframes are adjacent.
func (in *Interpolator) Between(a, b Keyframe) ([][]Box, error) {
	steps := b.Frame - a.Frame
	if steps < 1 {
		return nil, fmt.Errorf("keyframes %d and %d are %d frames apart: %w", a.Frame, b.Frame, steps, ErrInvalidInput)
	}
	if len(a.Boxes) != in.numElements || len(b.Boxes) != in.numElements {
		return nil, fmt.Errorf("keyframes %d and %d need %d boxes each: %w", a.Frame, b.Frame, in.numElements, ErrInvalidInput)
	}

	frames := make([][]Box, steps-1)
	for s := 1; s < steps; s++ {
		t := in.transition(s, steps)
		boxes := make([]Box, in.numElements)
		for e := 0; e < in.numElements; e++ {
			b1, b2 := a.Boxes[e], b.Boxes[e]
			if in.Policy == SentinelPropagate && (b1.IsUnset() || b2.IsUnset()) {
				boxes[e] = Unset
				continue
			}
			boxes[e] = b1.Lerp(b2, t)
		}
		frames[s-1] = boxes
	}

	return frames, nil
}

// Expand walks consecutive keyframe pairs and builds the Timeline from the
// first keyframe to the last, inclusive. A single keyframe yields a
// one-entry Timeline. Nothing is returned on error.
func (in *Interpolator) Expand(keyframes []Keyframe) (*Timeline, error) {
	if len(keyframes) == 0 {
		return nil, fmt.Errorf("no keyframes: %w", ErrInvalidInput)
	}

	first, last := keyframes[0], keyframes[len(keyframes)-1]
	if last.Frame < first.Frame {
		return nil, fmt.Errorf("keyframes run backwards from %d to %d: %w", first.Frame, last.Frame, ErrInvalidInput)
	}
	if len(last.Boxes) != in.numElements {
		return nil, fmt.Errorf("frame %d has %d boxes, want %d: %w", last.Frame, len(last.Boxes), in.numElements, ErrInvalidInput)
	}

	tl := NewTimeline(first.Frame, in.numElements, last.Frame-first.Frame+1)
	for i := 0; i < len(keyframes)-1; i++ {
		a, b := keyframes[i], keyframes[i+1]
		between, err := in.Between(a, b)
		if err != nil {
			return nil, err
		}
		tl.push(a.Boxes)
		for _, boxes := range between {
			tl.push(boxes)
		}
	}
	tl.push(last.Boxes)

	return tl, nil
}
