// Package mirror is an optional, best-effort read-only second-tier store:
// a SQLite snapshot that an external collaborator (reporting, a web
// dashboard, an analytics job) can query with plain SQL instead of
// linking internal/core. It never feeds back into the Store; it is
// rebuilt wholesale from a core.Store snapshot on every Refresh.
package mirror

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ttrei/bd/internal/core"
)

const schema = `
CREATE TABLE IF NOT EXISTS issues (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	status TEXT NOT NULL,
	priority INTEGER NOT NULL,
	issue_type TEXT NOT NULL,
	assignee TEXT,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS labels (
	issue_id TEXT NOT NULL,
	label TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_labels_issue ON labels(issue_id);
`

// Mirror holds the read-only snapshot database handle.
type Mirror struct {
	db *sql.DB
}

// Open creates or opens the mirror database file at path, initializing its
// schema if needed.
func Open(path string) (*Mirror, error) {
	if !strings.Contains(path, ":memory:") {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("mirror: creating directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("mirror: opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("mirror: pinging database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("mirror: initializing schema: %w", err)
	}
	return &Mirror{db: db}, nil
}

// Close releases the underlying database handle.
func (m *Mirror) Close() error {
	return m.db.Close()
}

// Refresh wipes and rebuilds the mirror from every issue in s. It is
// always a full rebuild rather than an incremental sync: the mirror is
// disposable, derived state, never a source of truth the core reads back.
func (m *Mirror) Refresh(s *core.Store) error {
	tx, err := m.db.Begin()
	if err != nil {
		return fmt.Errorf("mirror: beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM issues"); err != nil {
		return fmt.Errorf("mirror: clearing issues: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM labels"); err != nil {
		return fmt.Errorf("mirror: clearing labels: %w", err)
	}

	issueStmt, err := tx.Prepare(`INSERT INTO issues
		(id, title, status, priority, issue_type, assignee, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("mirror: preparing issue insert: %w", err)
	}
	defer issueStmt.Close()

	labelStmt, err := tx.Prepare(`INSERT INTO labels (issue_id, label) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("mirror: preparing label insert: %w", err)
	}
	defer labelStmt.Close()

	for _, issue := range s.List(core.ListFilters{IncludeClosed: true, IncludeDeferred: true, IncludeTemplates: true}) {
		_, err := issueStmt.Exec(
			issue.ID, issue.Title, string(issue.Status), int(issue.Priority), string(issue.IssueType),
			issue.Assignee, issue.CreatedAt.Format(time.RFC3339), issue.UpdatedAt.Format(time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("mirror: inserting issue %s: %w", issue.ID, err)
		}
		for _, label := range issue.Labels {
			if _, err := labelStmt.Exec(issue.ID, label); err != nil {
				return fmt.Errorf("mirror: inserting label for %s: %w", issue.ID, err)
			}
		}
	}

	return tx.Commit()
}

// CountByStatus returns the number of mirrored issues per status, useful
// for a dashboard collaborator that wants a cheap aggregate without
// loading the whole JSONL journal.
func (m *Mirror) CountByStatus() (map[string]int, error) {
	rows, err := m.db.Query("SELECT status, COUNT(*) FROM issues GROUP BY status")
	if err != nil {
		return nil, fmt.Errorf("mirror: querying status counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("mirror: scanning status count: %w", err)
		}
		counts[status] = count
	}
	return counts, rows.Err()
}
