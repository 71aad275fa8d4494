package store

const schemaVersion = 1

const schemaSQL = `
-- Schema version tracking
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY
);

-- Themes own their tokens and typefaces
CREATE TABLE IF NOT EXISTS themes (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    slug TEXT UNIQUE NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Tokens cascade with their theme: a token cannot outlive it
CREATE TABLE IF NOT EXISTS tokens (
    id TEXT PRIMARY KEY,
    theme_id TEXT NOT NULL REFERENCES themes(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    path TEXT NOT NULL,
    category TEXT NOT NULL,
    type TEXT,
    value TEXT NOT NULL,
    css_variable TEXT NOT NULL,
    sort_order INTEGER NOT NULL DEFAULT 0,
    description TEXT,
    UNIQUE(theme_id, path),
    UNIQUE(theme_id, css_variable)
);

CREATE INDEX IF NOT EXISTS idx_tokens_theme ON tokens(theme_id);
CREATE INDEX IF NOT EXISTS idx_tokens_category ON tokens(category);
CREATE INDEX IF NOT EXISTS idx_tokens_path ON tokens(path);

CREATE TABLE IF NOT EXISTS typefaces (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    theme_id TEXT NOT NULL REFERENCES themes(id) ON DELETE CASCADE,
    family TEXT NOT NULL,
    weight INTEGER NOT NULL DEFAULT 400,
    style TEXT,
    source TEXT NOT NULL,
    url TEXT
);

CREATE INDEX IF NOT EXISTS idx_typefaces_theme ON typefaces(theme_id);

-- Components stand alone; linked tokens reference token paths, not ids
CREATE TABLE IF NOT EXISTS components (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    slug TEXT UNIQUE NOT NULL,
    description TEXT,
    category TEXT,
    status TEXT NOT NULL DEFAULT 'draft',
    code TEXT,
    props TEXT,
    variants TEXT,
    linked_tokens TEXT,
    examples TEXT,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_components_slug ON components(slug);
CREATE INDEX IF NOT EXISTS idx_components_status ON components(status);
CREATE INDEX IF NOT EXISTS idx_components_category ON components(category);
`
