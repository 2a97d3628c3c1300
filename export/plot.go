package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/matt-g-everett/boxtx/annotate"
	"github.com/matt-g-everett/boxtx/util"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// centreSeries splits an element's centre coordinate into runs of set
// frames, so unset frames leave gaps in the plotted line.
func centreSeries(tl *annotate.Timeline, element int, axis func(x, y float64) float64) []plotter.XYs {
	var runs []plotter.XYs
	var cur plotter.XYs
	for i, boxes := range tl.Frames {
		b := boxes[element]
		if b.IsUnset() {
			if len(cur) > 0 {
				runs = append(runs, cur)
				cur = nil
			}
			continue
		}
		cx, cy := Centre(b)
		cur = append(cur, plotter.XY{X: float64(tl.Start + i), Y: axis(cx, cy)})
	}
	if len(cur) > 0 {
		runs = append(runs, cur)
	}
	return runs
}

// Plot writes centre_x.png and centre_y.png into dir, one line per element.
func Plot(tl *annotate.Timeline, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}

	axes := []struct {
		name  string
		label string
		value func(x, y float64) float64
	}{
		{"centre_x.png", "Centre X (px)", func(x, _ float64) float64 { return x }},
		{"centre_y.png", "Centre Y (px)", func(_, y float64) float64 { return y }},
	}

	colours := util.Palette(tl.NumElements)
	for _, a := range axes {
		p := plot.New()
		p.Title.Text = fmt.Sprintf("Box centres, frames %d-%d", tl.Start, tl.End())
		p.X.Label.Text = "Frame"
		p.Y.Label.Text = a.label

		for e := 0; e < tl.NumElements; e++ {
			for j, run := range centreSeries(tl, e, a.value) {
				line, err := plotter.NewLine(run)
				if err != nil {
					return err
				}
				line.Color = colours[e]
				line.Width = vg.Points(1)
				p.Add(line)
				if j == 0 {
					p.Legend.Add(fmt.Sprintf("element %d", e), line)
				}
			}
		}

		if err := p.Save(10*vg.Inch, 4*vg.Inch, filepath.Join(dir, a.name)); err != nil {
			return fmt.Errorf("%s: %w", a.name, err)
		}
	}
	return nil
}
