// Package keyfile reads operator keyframe files.
//
// A keyframe file lists, in frame order, the boxes placed on each sampled
// frame at the working resolution:
//
//	keyframes:
//	  - frame: 0
//	    boxes:
//	      - [120, 40, 180, 110]
//	      - []                    # skipped element
//	  - frame: 5
//	    events: ["down 122 41", "move 150 80", "up 183 112", "skip"]
//
// Entries without a frame take the next index from the sampling plan.
package keyfile

import (
	"fmt"
	"io"
	"os"

	"github.com/matt-g-everett/boxtx/annotate"
	"gopkg.in/yaml.v2"
)

// Entry is one keyframe as written by the operator.
type Entry struct {
	Frame  *int     `yaml:"frame"`
	Boxes  [][]int  `yaml:"boxes"`
	Events []string `yaml:"events"`
}

// File is a decoded keyframe file.
type File struct {
	Keyframes []Entry `yaml:"keyframes"`
}

// Load reads a keyframe file from disk.
func Load(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads a keyframe file from r.
func Decode(r io.Reader) (*File, error) {
	kf := new(File)
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(kf); err != nil {
		return nil, fmt.Errorf("decode keyframes: %w", err)
	}
	return kf, nil
}

func (e Entry) boxes(numElements int) ([]annotate.Box, error) {
	if len(e.Events) > 0 {
		if len(e.Boxes) > 0 {
			return nil, fmt.Errorf("both boxes and events given: %w", annotate.ErrInvalidInput)
		}
		return annotate.Replay(numElements, e.Events)
	}

	boxes := make([]annotate.Box, len(e.Boxes))
	for i, c := range e.Boxes {
		switch len(c) {
		case 0:
			boxes[i] = annotate.Unset
		case 4:
			boxes[i] = annotate.NewBox(c[0], c[1], c[2], c[3])
		default:
			return nil, fmt.Errorf("box %d has %d coordinates: %w", i, len(c), annotate.ErrInvalidInput)
		}
	}
	return boxes, nil
}

// Store builds a KeyframeStore from the file. Entries without a frame are
// placed on the sampling plan: the i-th entry lands on frame i*frameSkip.
func (kf *File) Store(numElements, frameSkip int) (*annotate.KeyframeStore, error) {
	store := annotate.NewKeyframeStore(numElements)
	for i, e := range kf.Keyframes {
		frame := i * frameSkip
		if e.Frame != nil {
			frame = *e.Frame
		}

		boxes, err := e.boxes(numElements)
		if err != nil {
			return nil, fmt.Errorf("keyframe %d: %w", i, err)
		}
		if err := store.Append(frame, boxes); err != nil {
			return nil, fmt.Errorf("keyframe %d: %w", i, err)
		}
	}
	return store, nil
}
