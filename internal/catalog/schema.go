package catalog

// schema is applied on every Open; all statements are idempotent.
const schema = `
CREATE TABLE IF NOT EXISTS scans (
	id         TEXT PRIMARY KEY,
	root       TEXT NOT NULL,
	started_at TEXT NOT NULL,
	sessions   INTEGER NOT NULL DEFAULT 0,
	files      INTEGER NOT NULL DEFAULT 0,
	skipped    INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS sessions (
	scan_id TEXT NOT NULL REFERENCES scans(id) ON DELETE CASCADE,
	dataset TEXT NOT NULL,
	subject TEXT NOT NULL,
	name    TEXT NOT NULL,
	type    TEXT NOT NULL DEFAULT '',
	date    TEXT NOT NULL DEFAULT '',
	idx     INTEGER,
	PRIMARY KEY (scan_id, dataset, subject, name)
);

CREATE TABLE IF NOT EXISTS files (
	scan_id   TEXT NOT NULL REFERENCES scans(id) ON DELETE CASCADE,
	dataset   TEXT NOT NULL,
	subject   TEXT NOT NULL,
	session   TEXT NOT NULL,
	domain    TEXT NOT NULL,
	name      TEXT NOT NULL,
	blocktype TEXT NOT NULL DEFAULT '',
	block_idx INTEGER,
	channels  TEXT NOT NULL DEFAULT '',
	suffix    TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (scan_id, dataset, subject, session, domain, name)
);

CREATE INDEX IF NOT EXISTS files_by_session
	ON files (scan_id, dataset, subject, session);
`
