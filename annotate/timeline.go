package annotate

// Timeline is the dense list of box sets from the first keyframe to the
// last. Frames[i] belongs to absolute frame Start+i.
type Timeline struct {
	Start       int     `json:"start"`
	NumElements int     `json:"elements"`
	Frames      [][]Box `json:"frames"`
}

// NewTimeline creates an empty Timeline with room for capacity frames.
func NewTimeline(start, numElements, capacity int) *Timeline {
	t := new(Timeline)
	t.Start = start
	t.NumElements = numElements
	t.Frames = make([][]Box, 0, capacity)
	return t
}

func (t *Timeline) push(boxes []Box) {
	t.Frames = append(t.Frames, append([]Box(nil), boxes...))
}

// Len is the number of frames covered.
func (t *Timeline) Len() int {
	return len(t.Frames)
}

// End is the absolute index of the last frame.
func (t *Timeline) End() int {
	return t.Start + len(t.Frames) - 1
}

// At returns the boxes for an absolute frame index.
func (t *Timeline) At(frame int) ([]Box, bool) {
	i := frame - t.Start
	if i < 0 || i >= len(t.Frames) {
		return nil, false
	}
	return t.Frames[i], true
}

// Cells encodes the boxes of frame index i (relative to Start) as
// "x0,y0,x1,y1" strings, one per element.
func (t *Timeline) Cells(i int) []string {
	cells := make([]string, len(t.Frames[i]))
	for e, b := range t.Frames[i] {
		cells[e] = b.String()
	}
	return cells
}
