package export

import (
	"math"

	"github.com/matt-g-everett/boxtx/annotate"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ElementSummary describes one element's boxes across a Timeline.
type ElementSummary struct {
	Element    int     `json:"element"`
	Frames     int     `json:"frames"`
	MeanWidth  float64 `json:"meanWidth"`
	MeanHeight float64 `json:"meanHeight"`
	StdWidth   float64 `json:"stdWidth"`
	StdHeight  float64 `json:"stdHeight"`
	PathLength float64 `json:"pathLength"`
}

// Centre is the midpoint of a box.
func Centre(b annotate.Box) (float64, float64) {
	return float64(b.Min.X+b.Max.X) / 2, float64(b.Min.Y+b.Max.Y) / 2
}

// Summarise computes per-element size statistics and the distance the box
// centre travels over the frames where the element is set.
func Summarise(tl *annotate.Timeline) []ElementSummary {
	out := make([]ElementSummary, tl.NumElements)
	for e := range out {
		var widths, heights, steps []float64
		havePrev := false
		var px, py float64
		for _, boxes := range tl.Frames {
			b := boxes[e]
			if b.IsUnset() {
				havePrev = false
				continue
			}
			widths = append(widths, math.Abs(float64(b.Max.X-b.Min.X)))
			heights = append(heights, math.Abs(float64(b.Max.Y-b.Min.Y)))
			cx, cy := Centre(b)
			if havePrev {
				steps = append(steps, math.Hypot(cx-px, cy-py))
			}
			px, py, havePrev = cx, cy, true
		}

		s := ElementSummary{Element: e, Frames: len(widths)}
		if len(widths) > 0 {
			s.MeanWidth, s.StdWidth = stat.PopMeanStdDev(widths, nil)
			s.MeanHeight, s.StdHeight = stat.PopMeanStdDev(heights, nil)
		}
		if len(steps) > 0 {
			s.PathLength = floats.Sum(steps)
		}
		out[e] = s
	}
	return out
}
