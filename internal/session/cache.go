package session

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/oliver/market-intel/internal/assessment"
)

// Cache is the SQLite-backed local session cache.
type Cache struct {
	db *sql.DB
}

func OpenCache(path string) (*Cache, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open session cache: %w", err)
	}
	if _, err := db.Exec(`PRAGMA journal_mode=WAL;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("configure session cache: %w", err)
	}

	const schema = `
CREATE TABLE IF NOT EXISTS sessions (
  id TEXT PRIMARY KEY,
  kind TEXT NOT NULL,
  subject_id TEXT NOT NULL,
  section INTEGER NOT NULL,
  answers_json TEXT NOT NULL DEFAULT '{}',
  created_at TIMESTAMP NOT NULL,
  updated_at TIMESTAMP NOT NULL
);
`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure session schema: %w", err)
	}

	return &Cache{db: db}, nil
}

func (c *Cache) Close() error { return c.db.Close() }

func (c *Cache) Save(s *assessment.Session) error {
	answers, err := json.Marshal(s.Answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}

	_, err = c.db.Exec(`
INSERT INTO sessions (id, kind, subject_id, section, answers_json, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET section=excluded.section, answers_json=excluded.answers_json, updated_at=excluded.updated_at
`, s.ID, string(s.Kind), s.SubjectID, s.Section, string(answers), s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("save session %s: %w", s.ID, err)
	}
	return nil
}

func (c *Cache) Delete(id string) error {
	if _, err := c.db.Exec(`DELETE FROM sessions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	return nil
}

// LoadAll reads every cached session. Catalog reattachment is the
// caller's job (assessment.Restore).
func (c *Cache) LoadAll() ([]*assessment.Session, error) {
	rows, err := c.db.Query(`SELECT id, kind, subject_id, section, answers_json, created_at, updated_at FROM sessions`)
	if err != nil {
		return nil, fmt.Errorf("load sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*assessment.Session
	for rows.Next() {
		var (
			s          assessment.Session
			kind       string
			answersRaw string
			createdAt  time.Time
			updatedAt  time.Time
		)
		if err := rows.Scan(&s.ID, &kind, &s.SubjectID, &s.Section, &answersRaw, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		s.Kind = assessment.Kind(kind)
		s.CreatedAt = createdAt
		s.UpdatedAt = updatedAt
		if err := json.Unmarshal([]byte(answersRaw), &s.Answers); err != nil {
			return nil, fmt.Errorf("decode answers for session %s: %w", s.ID, err)
		}
		sessions = append(sessions, &s)
	}
	return sessions, rows.Err()
}
