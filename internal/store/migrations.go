package store

const schema = `
CREATE TABLE IF NOT EXISTS gifts (
    id               INTEGER PRIMARY KEY,
    title            TEXT NOT NULL,
    category         TEXT NOT NULL DEFAULT '',
    tags             TEXT NOT NULL DEFAULT '[]',
    price_min        REAL NOT NULL DEFAULT 0,
    price_max        REAL NOT NULL DEFAULT 0,
    stars            REAL NOT NULL DEFAULT 0,
    days_since_added REAL NOT NULL DEFAULT 0,
    reviews          INTEGER NOT NULL DEFAULT 0,
    popularity       INTEGER NOT NULL DEFAULT 0,
    stock            BOOLEAN NOT NULL DEFAULT 1,
    personalization  BOOLEAN NOT NULL DEFAULT 0,
    imported_at      DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_gifts_category ON gifts(category);
CREATE INDEX IF NOT EXISTS idx_gifts_price_min ON gifts(price_min);
CREATE INDEX IF NOT EXISTS idx_gifts_stars ON gifts(stars);
`
