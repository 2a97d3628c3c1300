package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/matt-g-everett/boxtx/annotate"
	"github.com/matt-g-everett/boxtx/util"
)

// Chart renders an HTML line chart of each element's box centre over the
// Timeline. Unset frames are left as gaps.
func Chart(w io.Writer, tl *annotate.Timeline) error {
	frames := make([]string, tl.Len())
	for i := range frames {
		frames[i] = strconv.Itoa(tl.Start + i)
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Box centres", Width: "1200px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{Title: "Box centres", Subtitle: fmt.Sprintf("frames %d-%d elements=%d", tl.Start, tl.End(), tl.NumElements)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Frame", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Pixels", NameLocation: "middle", NameGap: 40}),
	)
	line.SetXAxis(frames)

	colours := util.Palette(tl.NumElements)
	for e := 0; e < tl.NumElements; e++ {
		xs := make([]opts.LineData, tl.Len())
		ys := make([]opts.LineData, tl.Len())
		for i, boxes := range tl.Frames {
			if boxes[e].IsUnset() {
				xs[i] = opts.LineData{Value: "-"}
				ys[i] = opts.LineData{Value: "-"}
				continue
			}
			cx, cy := Centre(boxes[e])
			xs[i] = opts.LineData{Value: cx}
			ys[i] = opts.LineData{Value: cy}
		}
		style := charts.WithItemStyleOpts(opts.ItemStyle{Color: colours[e].Hex()})
		line.AddSeries(fmt.Sprintf("element %d x", e), xs, style)
		line.AddSeries(fmt.Sprintf("element %d y", e), ys, style)
	}

	return line.Render(w)
}
