package video

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// WorkingScale is the factor that maps original coordinates to a working
// window of windowWidth pixels: windowWidth / width.
func WorkingScale(width, windowWidth int) (float64, error) {
	if width < 1 || windowWidth < 1 {
		return 0, fmt.Errorf("cannot scale %d px frames to %d px", width, windowWidth)
	}
	return float64(windowWidth) / float64(width), nil
}

// Resize scales img to windowWidth pixels wide, keeping the aspect ratio,
// and returns the scale that was applied.
func Resize(img image.Image, windowWidth int) (*image.RGBA, float64, error) {
	b := img.Bounds()
	scale, err := WorkingScale(b.Dx(), windowWidth)
	if err != nil {
		return nil, 0, err
	}

	height := int(float64(b.Dy()) * scale)
	dst := image.NewRGBA(image.Rect(0, 0, windowWidth, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst, scale, nil
}
