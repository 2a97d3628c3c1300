package video

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrShortSource is returned when a frame source ends before the Timeline.
var ErrShortSource = errors.New("frame source ended early")

// A Source yields decoded video frames in order. NextFrame returns io.EOF
// after the last frame.
type Source interface {
	NextFrame() (image.Image, error)
}

// DirSource reads frames extracted to a directory (frame_000001.png, ...),
// in file name order.
type DirSource struct {
	paths []string
	next  int
}

// OpenDir lists the PNG and JPEG frames in dir.
func OpenDir(dir string) (*DirSource, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	s := new(DirSource)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".png", ".jpg", ".jpeg":
			s.paths = append(s.paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(s.paths)
	if len(s.paths) == 0 {
		return nil, fmt.Errorf("no frames in %s", dir)
	}
	return s, nil
}

// Count is the number of frames in the directory.
func (s *DirSource) Count() int {
	return len(s.paths)
}

// Rewind restarts reading from the first frame.
func (s *DirSource) Rewind() {
	s.next = 0
}

// Width is the pixel width of the first frame.
func (s *DirSource) Width() (int, error) {
	f, err := os.Open(s.paths[0])
	if err != nil {
		return 0, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", s.paths[0], err)
	}
	return cfg.Width, nil
}

// Frame decodes the frame at index i.
func (s *DirSource) Frame(i int) (image.Image, error) {
	if i < 0 || i >= len(s.paths) {
		return nil, io.EOF
	}
	f, err := os.Open(s.paths[i])
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.paths[i], err)
	}
	return img, nil
}

// NextFrame decodes the next frame.
func (s *DirSource) NextFrame() (image.Image, error) {
	img, err := s.Frame(s.next)
	if err != nil {
		return nil, err
	}
	s.next++
	return img, nil
}
