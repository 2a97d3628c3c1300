package keyfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matt-g-everett/boxtx/annotate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
keyframes:
  - boxes:
      - [10, 10, 20, 20]
      - []
  - frame: 7
    events: ["down 50 10", "move 55 15", "up 60 20", "skip"]
  - boxes:
      - [1, 2, 3, 4]
      - [5, 6, 7, 8]
`

func TestStore(t *testing.T) {
	kf, err := Decode(strings.NewReader(sample))
	require.NoError(t, err)

	store, err := kf.Store(2, 5)
	require.NoError(t, err)

	want := []annotate.Keyframe{
		{Frame: 0, Boxes: []annotate.Box{annotate.NewBox(10, 10, 20, 20), annotate.Unset}},
		{Frame: 7, Boxes: []annotate.Box{annotate.NewBox(50, 10, 60, 20), annotate.Unset}},
		{Frame: 10, Boxes: []annotate.Box{annotate.NewBox(1, 2, 3, 4), annotate.NewBox(5, 6, 7, 8)}},
	}
	assert.Equal(t, want, store.All())
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keyframes.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0644))

	kf, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, kf.Keyframes, 3)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestStoreErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"short box", "keyframes:\n  - boxes: [[1, 2, 3]]\n"},
		{"wrong count", "keyframes:\n  - boxes: [[1, 2, 3, 4], [1, 2, 3, 4]]\n"},
		{"boxes and events", "keyframes:\n  - boxes: [[1, 2, 3, 4]]\n    events: [skip]\n"},
		{"unfinished capture", "keyframes:\n  - events: [\"down 1 1\"]\n"},
		{"out of order", "keyframes:\n  - frame: 5\n    boxes: [[1, 2, 3, 4]]\n  - frame: 5\n    boxes: [[1, 2, 3, 4]]\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			kf, err := Decode(strings.NewReader(tc.yaml))
			require.NoError(t, err)
			_, err = kf.Store(1, 5)
			assert.ErrorIs(t, err, annotate.ErrInvalidInput)
		})
	}
}

func TestDecodeError(t *testing.T) {
	_, err := Decode(strings.NewReader("keyframes: {frame: [}"))
	assert.Error(t, err)
}
