package stream

import (
	"encoding/binary"
	"fmt"

	"github.com/matt-g-everett/boxtx/annotate"
)

const headerSize = 6

// Frame is the set of element boxes for one video frame, as sent to
// playback clients.
type Frame struct {
	Index int
	Boxes []annotate.Box
}

// NewFrame creates a Frame for a video frame index.
func NewFrame(index int, boxes []annotate.Box) *Frame {
	f := new(Frame)
	f.Index = index
	f.Boxes = boxes
	return f
}

// MarshalBinary encodes the frame index (uint32), the box count (uint16)
// and four int32 coordinates per box, little endian.
func (f *Frame) MarshalBinary() (data []byte, err error) {
	data = make([]byte, headerSize, headerSize+len(f.Boxes)*16)
	binary.LittleEndian.PutUint32(data, uint32(f.Index))
	binary.LittleEndian.PutUint16(data[4:], uint16(len(f.Boxes)))
	for _, b := range f.Boxes {
		for _, v := range []int{b.Min.X, b.Min.Y, b.Max.X, b.Max.Y} {
			data = binary.LittleEndian.AppendUint32(data, uint32(int32(v)))
		}
	}

	return data, nil
}

// UnmarshalBinary decodes data written by MarshalBinary.
func (f *Frame) UnmarshalBinary(data []byte) error {
	if len(data) < headerSize {
		return fmt.Errorf("frame too short: %d bytes", len(data))
	}
	n := int(binary.LittleEndian.Uint16(data[4:]))
	if len(data) != headerSize+n*16 {
		return fmt.Errorf("frame with %d boxes has %d bytes", n, len(data))
	}

	f.Index = int(binary.LittleEndian.Uint32(data))
	f.Boxes = make([]annotate.Box, n)
	coord := func(i, c int) int {
		off := headerSize + i*16 + c*4
		return int(int32(binary.LittleEndian.Uint32(data[off:])))
	}
	for i := range f.Boxes {
		f.Boxes[i] = annotate.NewBox(coord(i, 0), coord(i, 1), coord(i, 2), coord(i, 3))
	}
	return nil
}
