package pages

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;

CREATE TABLE IF NOT EXISTS landing_pages (
    id TEXT PRIMARY KEY,
    company_name TEXT NOT NULL,
    tagline TEXT NOT NULL,
    description TEXT NOT NULL,
    hero_title TEXT NOT NULL,
    hero_subtitle TEXT NOT NULL,
    -- features as JSON array: [{"title": ..., "description": ...}]
    features TEXT NOT NULL DEFAULT '[]',
    cta TEXT NOT NULL,
    theme TEXT NOT NULL DEFAULT 'default'
        CHECK (theme IN ('fintech', 'saas', 'ecommerce', 'default')),
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_landing_pages_created ON landing_pages(created_at);
`
