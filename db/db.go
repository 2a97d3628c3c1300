package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/matt-g-everett/boxtx/annotate"
	_ "modernc.org/sqlite"
)

// DB persists annotation sessions: the operator's keyframes and the
// interpolated Timeline.
type DB struct {
	*sql.DB
}

// Session describes one interpolation run.
type Session struct {
	ID         string    `json:"id"`
	Elements   int       `json:"elements"`
	StartFrame int       `json:"startFrame"`
	EndFrame   int       `json:"endFrame"`
	Scale      float64   `json:"scale"`
	Sentinel   string    `json:"sentinel"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Open opens (or creates) the database at path and migrates it to the
// latest schema.
func Open(path string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db := &DB{sqlDB}
	if err := db.MigrateUp(); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// SaveSession stores the keyframes and Timeline of a run under a new
// session ID, which it returns.
func (db *DB) SaveSession(keyframes []annotate.Keyframe, tl *annotate.Timeline, scale float64, policy annotate.SentinelPolicy) (string, error) {
	id := fmt.Sprintf("ses_%s", uuid.NewString())

	tx, err := db.Begin()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`INSERT INTO sessions (session_id, elements, start_frame, end_frame, scale, sentinel) VALUES (?, ?, ?, ?, ?, ?)`,
		id, tl.NumElements, tl.Start, tl.End(), scale, policy.String(),
	); err != nil {
		return "", fmt.Errorf("insert session: %w", err)
	}

	kfStmt, err := tx.Prepare(`INSERT INTO keyframes (session_id, frame, element, box) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return "", err
	}
	defer kfStmt.Close()
	for _, k := range keyframes {
		for e, b := range k.Boxes {
			if _, err := kfStmt.Exec(id, k.Frame, e, b.String()); err != nil {
				return "", fmt.Errorf("insert keyframe %d: %w", k.Frame, err)
			}
		}
	}

	tlStmt, err := tx.Prepare(`INSERT INTO timeline_boxes (session_id, frame, element, box) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return "", err
	}
	defer tlStmt.Close()
	for i, boxes := range tl.Frames {
		for e, b := range boxes {
			if _, err := tlStmt.Exec(id, tl.Start+i, e, b.String()); err != nil {
				return "", fmt.Errorf("insert frame %d: %w", tl.Start+i, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return id, nil
}

// Sessions lists stored sessions, newest first.
func (db *DB) Sessions() ([]Session, error) {
	rows, err := db.Query(`SELECT session_id, elements, start_frame, end_frame, scale, sentinel, created_at FROM sessions ORDER BY created_at DESC, rowid DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Session
	for rows.Next() {
		var s Session
		var created int64
		if err := rows.Scan(&s.ID, &s.Elements, &s.StartFrame, &s.EndFrame, &s.Scale, &s.Sentinel, &created); err != nil {
			return nil, err
		}
		s.CreatedAt = time.Unix(created, 0).UTC()
		out = append(out, s)
	}
	return out, rows.Err()
}

// Session looks up a stored session.
func (db *DB) Session(id string) (Session, error) {
	var s Session
	var created int64
	err := db.QueryRow(
		`SELECT session_id, elements, start_frame, end_frame, scale, sentinel, created_at FROM sessions WHERE session_id = ?`, id,
	).Scan(&s.ID, &s.Elements, &s.StartFrame, &s.EndFrame, &s.Scale, &s.Sentinel, &created)
	s.CreatedAt = time.Unix(created, 0).UTC()
	return s, err
}

// Keyframes loads a session's keyframes in frame order.
func (db *DB) Keyframes(id string) ([]annotate.Keyframe, error) {
	s, err := db.Session(id)
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(`SELECT frame, element, box FROM keyframes WHERE session_id = ? ORDER BY frame, element`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []annotate.Keyframe
	for rows.Next() {
		var frame, element int
		var text string
		if err := rows.Scan(&frame, &element, &text); err != nil {
			return nil, err
		}
		b, err := annotate.ParseBox(text)
		if err != nil {
			return nil, err
		}
		if n := len(out); n == 0 || out[n-1].Frame != frame {
			out = append(out, annotate.Keyframe{Frame: frame, Boxes: make([]annotate.Box, s.Elements)})
		}
		out[len(out)-1].Boxes[element] = b
	}
	return out, rows.Err()
}

// Timeline loads a session's interpolated boxes.
func (db *DB) Timeline(id string) (*annotate.Timeline, error) {
	s, err := db.Session(id)
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(`SELECT frame, element, box FROM timeline_boxes WHERE session_id = ? ORDER BY frame, element`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tl := annotate.NewTimeline(s.StartFrame, s.Elements, s.EndFrame-s.StartFrame+1)
	for rows.Next() {
		var frame, element int
		var text string
		if err := rows.Scan(&frame, &element, &text); err != nil {
			return nil, err
		}
		b, err := annotate.ParseBox(text)
		if err != nil {
			return nil, err
		}
		i := frame - s.StartFrame
		for len(tl.Frames) <= i {
			tl.Frames = append(tl.Frames, make([]annotate.Box, s.Elements))
		}
		tl.Frames[i][element] = b
	}
	return tl, rows.Err()
}
