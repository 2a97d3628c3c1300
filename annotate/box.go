package annotate

import (
	"fmt"
)

// Point is a pixel location in a frame.
type Point struct {
	X int `yaml:"x" json:"x"`
	Y int `yaml:"y" json:"y"`
}

// Box is an axis-aligned region given by its top-left and bottom-right corners.
type Box struct {
	Min Point `json:"min"`
	Max Point `json:"max"`
}

// Unset is the sentinel box recorded when the operator skips an element.
var Unset = Box{Point{-1, -1}, Point{-1, -1}}

// NewBox creates a Box from corner coordinates.
func NewBox(x0, y0, x1, y1 int) Box {
	return Box{Point{x0, y0}, Point{x1, y1}}
}

// IsUnset reports whether b is the sentinel box.
func (b Box) IsUnset() bool {
	return b == Unset
}

// String encodes the box as "x0,y0,x1,y1".
func (b Box) String() string {
	return fmt.Sprintf("%d,%d,%d,%d", b.Min.X, b.Min.Y, b.Max.X, b.Max.Y)
}

// Lerp blends b towards b2 by t, truncating each coordinate toward zero.
func (b Box) Lerp(b2 Box, t float64) Box {
	return Box{
		Min: Point{lerp(b.Min.X, b2.Min.X, t), lerp(b.Min.Y, b2.Min.Y, t)},
		Max: Point{lerp(b.Max.X, b2.Max.X, t), lerp(b.Max.Y, b2.Max.Y, t)},
	}
}

func lerp(a, b int, t float64) int {
	return int(float64(a) + float64(b-a)*t)
}

// Rescale converts a box captured at a working resolution back to the
// original frame, where scale = working width / original width.
func (b Box) Rescale(scale float64) Box {
	return Box{
		Min: Point{int(float64(b.Min.X) / scale), int(float64(b.Min.Y) / scale)},
		Max: Point{int(float64(b.Max.X) / scale), int(float64(b.Max.Y) / scale)},
	}
}

// Scale maps a box from the original frame into the working resolution.
func (b Box) Scale(scale float64) Box {
	return Box{
		Min: Point{int(float64(b.Min.X) * scale), int(float64(b.Min.Y) * scale)},
		Max: Point{int(float64(b.Max.X) * scale), int(float64(b.Max.Y) * scale)},
	}
}

// ParseBox decodes the "x0,y0,x1,y1" form produced by String.
func ParseBox(s string) (Box, error) {
	var b Box
	n, err := fmt.Sscanf(s, "%d,%d,%d,%d", &b.Min.X, &b.Min.Y, &b.Max.X, &b.Max.Y)
	if err != nil || n != 4 {
		return Box{}, fmt.Errorf("box %q: %w", s, ErrInvalidInput)
	}
	return b, nil
}
