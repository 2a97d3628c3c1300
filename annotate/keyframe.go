package annotate

import (
	"fmt"
)

// A Keyframe holds the boxes the operator placed on one sampled frame.
// Boxes are positional: slot i is the same element at every keyframe.
type Keyframe struct {
	Frame int   `json:"frame"`
	Boxes []Box `json:"boxes"`
}

// Rescale returns a copy of k with every box mapped back to the original
// frame size. Unset boxes are kept as the sentinel unless the policy blends
// sentinels as ordinary numbers.
func (k Keyframe) Rescale(scale float64, policy SentinelPolicy) Keyframe {
	out := Keyframe{Frame: k.Frame, Boxes: make([]Box, len(k.Boxes))}
	for i, b := range k.Boxes {
		if b.IsUnset() && policy == SentinelPropagate {
			out.Boxes[i] = Unset
			continue
		}
		out.Boxes[i] = b.Rescale(scale)
	}
	return out
}

// KeyframeStore accumulates keyframes in increasing frame order.
type KeyframeStore struct {
	numElements int
	keyframes   []Keyframe
}

// NewKeyframeStore creates a store for runs tracking numElements elements.
func NewKeyframeStore(numElements int) *KeyframeStore {
	s := new(KeyframeStore)
	s.numElements = numElements
	return s
}

// NumElements is the fixed number of boxes per keyframe.
func (s *KeyframeStore) NumElements() int {
	return s.numElements
}

// Len is the number of keyframes appended so far.
func (s *KeyframeStore) Len() int {
	return len(s.keyframes)
}

// Append records the boxes for a frame. The store is left unchanged when the
// box count is wrong or the frame does not follow the previous keyframe.
func (s *KeyframeStore) Append(frame int, boxes []Box) error {
	if len(boxes) != s.numElements {
		return fmt.Errorf("frame %d has %d boxes, want %d: %w", frame, len(boxes), s.numElements, ErrInvalidInput)
	}
	if frame < 0 {
		return fmt.Errorf("negative frame index %d: %w", frame, ErrInvalidInput)
	}
	if n := len(s.keyframes); n > 0 && frame <= s.keyframes[n-1].Frame {
		return fmt.Errorf("frame %d does not follow frame %d: %w", frame, s.keyframes[n-1].Frame, ErrInvalidInput)
	}

	k := Keyframe{Frame: frame, Boxes: make([]Box, len(boxes))}
	copy(k.Boxes, boxes)
	s.keyframes = append(s.keyframes, k)
	return nil
}

// All returns a copy of every keyframe in frame order.
func (s *KeyframeStore) All() []Keyframe {
	out := make([]Keyframe, len(s.keyframes))
	for i, k := range s.keyframes {
		out[i] = Keyframe{Frame: k.Frame, Boxes: append([]Box(nil), k.Boxes...)}
	}
	return out
}

// SamplePlan lists the frames offered for annotation: every frameSkip-th
// frame from 0 while below total.
func SamplePlan(total, frameSkip int) ([]int, error) {
	if frameSkip < 1 {
		return nil, fmt.Errorf("frame skip %d: %w", frameSkip, ErrInvalidInput)
	}
	var frames []int
	for i := 0; i < total; i += frameSkip {
		frames = append(frames, i)
	}
	return frames, nil
}
