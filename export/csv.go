package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/matt-g-everett/boxtx/annotate"
)

// Header is the CSV header for numElements elements.
func Header(numElements int) []string {
	h := make([]string, numElements+1)
	h[0] = "frame"
	for i := 0; i < numElements; i++ {
		h[i+1] = fmt.Sprintf("element_%d", i)
	}
	return h
}

// WriteCSV writes one row per Timeline frame: the absolute frame number then
// "x0,y0,x1,y1" for each element.
func WriteCSV(w io.Writer, tl *annotate.Timeline) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header(tl.NumElements)); err != nil {
		return err
	}
	for i := range tl.Frames {
		row := append([]string{strconv.Itoa(tl.Start + i)}, tl.Cells(i)...)
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses a file written by WriteCSV back into a Timeline.
func ReadCSV(r io.Reader) (*annotate.Timeline, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("no frames in csv: %w", annotate.ErrInvalidInput)
	}

	numElements := len(records[0]) - 1
	store := annotate.NewKeyframeStore(numElements)
	for _, rec := range records[1:] {
		frame, err := strconv.Atoi(rec[0])
		if err != nil {
			return nil, fmt.Errorf("frame %q: %w", rec[0], annotate.ErrInvalidInput)
		}
		boxes := make([]annotate.Box, numElements)
		for e := range boxes {
			if boxes[e], err = annotate.ParseBox(rec[e+1]); err != nil {
				return nil, fmt.Errorf("frame %d: %w", frame, err)
			}
		}
		if err := store.Append(frame, boxes); err != nil {
			return nil, err
		}
	}

	// Consecutive rows interpolate to nothing, so expanding rebuilds the rows.
	keyframes := store.All()
	for i := 1; i < len(keyframes); i++ {
		if keyframes[i].Frame != keyframes[i-1].Frame+1 {
			return nil, fmt.Errorf("gap after frame %d: %w", keyframes[i-1].Frame, annotate.ErrInvalidInput)
		}
	}
	return annotate.NewInterpolator(numElements).Expand(keyframes)
}
