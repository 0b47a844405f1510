package state

const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id          TEXT PRIMARY KEY,
    path        TEXT NOT NULL,
    root        TEXT NOT NULL,
    tier        TEXT,
    command     TEXT,
    outcome     TEXT NOT NULL,
    exit_code   INTEGER NOT NULL,
    message     TEXT,
    started_at  INTEGER NOT NULL,
    duration_ms INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS runs_path ON runs (path);
`
