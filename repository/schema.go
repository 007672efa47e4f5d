package repository

const schemaSQL = `
CREATE TABLE IF NOT EXISTS projections (
    id           INTEGER PRIMARY KEY AUTOINCREMENT,
    kind         TEXT NOT NULL,
    input        TEXT NOT NULL,
    result       TEXT NOT NULL,
    created_at   TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_projections_kind ON projections(kind, id);
`
