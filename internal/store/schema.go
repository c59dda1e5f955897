package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS budget (
    id                 INTEGER PRIMARY KEY CHECK (id = 1),
    daily_value        REAL NOT NULL,
    renewal_hour       INTEGER NOT NULL,
    balance            REAL NOT NULL,
    cycle_frequency    TEXT,
    cycle_hour         INTEGER,
    cycle_day          INTEGER,
    cycle_month        INTEGER,
    monthly_income     REAL,
    fixed_expenses     REAL,
    mandatory_savings  REAL,
    updated_at         TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS expenses (
    expense_id   TEXT PRIMARY KEY,
    value        REAL NOT NULL,
    name         TEXT NOT NULL DEFAULT '',
    category     TEXT NOT NULL DEFAULT '',
    created_at   TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS expense_items (
    expense_id      TEXT NOT NULL REFERENCES expenses(expense_id) ON DELETE CASCADE,
    position        INTEGER NOT NULL,
    kind            TEXT NOT NULL,
    name            TEXT NOT NULL,
    category        TEXT NOT NULL,
    quantity        REAL,
    unit_value      REAL,
    weight          REAL,
    kilogram_value  REAL,
    flat_value      REAL,
    description     TEXT,
    PRIMARY KEY (expense_id, position)
);

CREATE TABLE IF NOT EXISTS incomes (
    income_id    TEXT PRIMARY KEY,
    value        REAL NOT NULL,
    name         TEXT NOT NULL DEFAULT '',
    created_at   TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS renewal_log (
    id          INTEGER PRIMARY KEY CHECK (id = 1),
    applied_at  TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_expenses_created ON expenses(created_at);
CREATE INDEX IF NOT EXISTS idx_incomes_created ON incomes(created_at);
`
