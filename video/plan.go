package video

import (
	"fmt"

	"github.com/matt-g-everett/boxtx/annotate"
)

// ExportPlan writes every sampled frame, resized to the working window, so
// the operator can place boxes on them. It returns the sampled frame
// indices and the working scale.
func ExportPlan(src *DirSource, frameSkip, windowWidth int, sink Sink) ([]int, float64, error) {
	frames, err := annotate.SamplePlan(src.Count(), frameSkip)
	if err != nil {
		return nil, 0, err
	}

	var scale float64
	for _, frame := range frames {
		img, err := src.Frame(frame)
		if err != nil {
			return nil, 0, fmt.Errorf("frame %d: %w", frame, err)
		}
		resized, s, err := Resize(img, windowWidth)
		if err != nil {
			return nil, 0, err
		}
		scale = s
		if err := sink.WriteFrame(frame, resized); err != nil {
			return nil, 0, fmt.Errorf("frame %d: %w", frame, err)
		}
	}
	return frames, scale, nil
}
