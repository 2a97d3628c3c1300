package db

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/matt-g-everett/boxtx/annotate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "boxtx.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrateUp(t *testing.T) {
	db := setupTestDB(t)

	version, dirty, err := db.MigrateVersion()
	require.NoError(t, err)
	assert.Equal(t, uint(2), version)
	assert.False(t, dirty)

	// Already at the latest version.
	require.NoError(t, db.MigrateUp())
}

func TestSaveSession(t *testing.T) {
	db := setupTestDB(t)

	keyframes := []annotate.Keyframe{
		{Frame: 5, Boxes: []annotate.Box{annotate.NewBox(0, 0, 10, 10), annotate.Unset}},
		{Frame: 8, Boxes: []annotate.Box{annotate.NewBox(30, 0, 40, 10), annotate.NewBox(1, 1, 2, 2)}},
	}
	tl, err := annotate.NewInterpolator(2).Expand(keyframes)
	require.NoError(t, err)

	id, err := db.SaveSession(keyframes, tl, 0.5, annotate.SentinelPropagate)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, "ses_"))

	s, err := db.Session(id)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Elements)
	assert.Equal(t, 5, s.StartFrame)
	assert.Equal(t, 8, s.EndFrame)
	assert.Equal(t, 0.5, s.Scale)
	assert.Equal(t, "propagate", s.Sentinel)
	assert.False(t, s.CreatedAt.IsZero())

	gotKeyframes, err := db.Keyframes(id)
	require.NoError(t, err)
	if diff := cmp.Diff(keyframes, gotKeyframes); diff != "" {
		t.Errorf("Keyframes mismatch (-want +got):\n%s", diff)
	}

	gotTimeline, err := db.Timeline(id)
	require.NoError(t, err)
	if diff := cmp.Diff(tl, gotTimeline); diff != "" {
		t.Errorf("Timeline mismatch (-want +got):\n%s", diff)
	}

	sessions, err := db.Sessions()
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, id, sessions[0].ID)
}

func TestSessionMissing(t *testing.T) {
	db := setupTestDB(t)
	_, err := db.Timeline("ses_missing")
	assert.Error(t, err)
}
