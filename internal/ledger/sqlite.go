package ledger

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/KenRoach/kitzV1-sub005/internal/artifact"
	"github.com/KenRoach/kitzV1-sub005/internal/event"
)

// SQLiteLedger is the DB-backed ledger. Each append is its own transaction;
// event and artifact streams are independent tables.
type SQLiteLedger struct {
	db *sql.DB
}

// NewSQLiteLedger opens the database at dbPath and applies the schema.
func NewSQLiteLedger(dbPath string) (*SQLiteLedger, error) {
	db, err := sql.Open("sqlite", "file:"+dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open ledger db: %w", err)
	}
	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply ledger schema: %w", err)
	}
	return &SQLiteLedger{db: db}, nil
}

// AppendEvent inserts one event row.
func (l *SQLiteLedger) AppendEvent(e *event.Event) error {
	body, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	_, err = l.db.Exec(
		`INSERT INTO events (event_id, event_type, source, severity, created_at, body) VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.Type, e.Source, e.Severity, e.Timestamp, string(body),
	)
	if err != nil {
		return fmt.Errorf("append event: %w", err)
	}
	return nil
}

// AppendArtifact inserts one artifact row.
func (l *SQLiteLedger) AppendArtifact(a artifact.Artifact) error {
	body, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("marshal artifact: %w", err)
	}
	_, err = l.db.Exec(
		`INSERT INTO artifacts (artifact_id, kind, created_at, body) VALUES (?, ?, ?, ?)`,
		a.ID, a.Kind, a.CreatedAt, string(body),
	)
	if err != nil {
		return fmt.Errorf("append artifact: %w", err)
	}
	return nil
}

// ListEvents replays all events in insertion order.
func (l *SQLiteLedger) ListEvents() ([]event.Event, error) {
	rows, err := l.db.Query(`SELECT body FROM events ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var out []event.Event
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, err
		}
		var e event.Event
		if err := json.Unmarshal([]byte(body), &e); err != nil {
			return nil, fmt.Errorf("decode event row: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// ListArtifacts replays all artifacts in insertion order.
func (l *SQLiteLedger) ListArtifacts() ([]artifact.Artifact, error) {
	rows, err := l.db.Query(`SELECT body FROM artifacts ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list artifacts: %w", err)
	}
	defer rows.Close()

	var out []artifact.Artifact
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, err
		}
		var a artifact.Artifact
		if err := json.Unmarshal([]byte(body), &a); err != nil {
			return nil, fmt.Errorf("decode artifact row: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Close closes the database.
func (l *SQLiteLedger) Close() error {
	return l.db.Close()
}
