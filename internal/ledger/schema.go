package ledger

// Schema creates the two append-only streams for the SQLite backend. Rowid
// order is the insertion order used for replay.
const Schema = `
CREATE TABLE IF NOT EXISTS events (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	event_id TEXT UNIQUE NOT NULL,
	event_type TEXT NOT NULL,
	source TEXT NOT NULL,
	severity TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	body TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_events_type ON events(event_type);

CREATE TABLE IF NOT EXISTS artifacts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	artifact_id TEXT UNIQUE NOT NULL,
	kind TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	body TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_artifacts_kind ON artifacts(kind);
`
