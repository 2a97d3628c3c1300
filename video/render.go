package video

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/matt-g-everett/boxtx/annotate"
	"github.com/matt-g-everett/boxtx/util"
	"golang.org/x/image/draw"
)

const lineWidth = 2

// A Sink receives rendered frames.
type Sink interface {
	WriteFrame(frame int, img image.Image) error
}

// DirSink writes each frame as a PNG into a directory.
type DirSink struct {
	dir string
}

// NewDirSink creates dir if needed and returns a sink that writes into it.
func NewDirSink(dir string) (*DirSink, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}
	s := new(DirSink)
	s.dir = dir
	return s, nil
}

// WriteFrame encodes img to frame_NNNNNN.png.
func (s *DirSink) WriteFrame(frame int, img image.Image) error {
	f, err := os.Create(filepath.Join(s.dir, fmt.Sprintf("frame_%06d.png", frame)))
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// DrawBoxes outlines each set box on dst in its element colour. Unset
// boxes are not drawn.
func DrawBoxes(dst draw.Image, boxes []annotate.Box) {
	for i, b := range boxes {
		if b.IsUnset() {
			continue
		}
		r := image.Rect(b.Min.X, b.Min.Y, b.Max.X, b.Max.Y)
		r.Max = r.Max.Add(image.Pt(1, 1))
		src := image.NewUniform(util.ElementColour(i))

		edges := []image.Rectangle{
			image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+lineWidth),
			image.Rect(r.Min.X, r.Max.Y-lineWidth, r.Max.X, r.Max.Y),
			image.Rect(r.Min.X, r.Min.Y, r.Min.X+lineWidth, r.Max.Y),
			image.Rect(r.Max.X-lineWidth, r.Min.Y, r.Max.X, r.Max.Y),
		}
		for _, e := range edges {
			draw.Draw(dst, e.Intersect(dst.Bounds()), src, image.Point{}, draw.Src)
		}
	}
}

// Render reads frames from src in lockstep with the Timeline, draws the
// boxes and hands each frame to sink. Frames before the Timeline starts are
// skipped. It returns the number of frames written; if src runs out first
// the error wraps ErrShortSource.
func Render(src Source, tl *annotate.Timeline, sink Sink) (int, error) {
	for i := 0; i < tl.Start; i++ {
		if _, err := src.NextFrame(); err != nil {
			return 0, frameErr(i, err)
		}
	}

	written := 0
	for i, boxes := range tl.Frames {
		frame := tl.Start + i
		img, err := src.NextFrame()
		if err != nil {
			return written, frameErr(frame, err)
		}

		canvas := image.NewRGBA(img.Bounds())
		draw.Draw(canvas, canvas.Bounds(), img, img.Bounds().Min, draw.Src)
		DrawBoxes(canvas, boxes)

		if err := sink.WriteFrame(frame, canvas); err != nil {
			return written, fmt.Errorf("frame %d: %w", frame, err)
		}
		written++
	}
	return written, nil
}

func frameErr(frame int, err error) error {
	if err == io.EOF {
		return fmt.Errorf("no frame %d: %w", frame, ErrShortSource)
	}
	return fmt.Errorf("frame %d: %w", frame, err)
}
