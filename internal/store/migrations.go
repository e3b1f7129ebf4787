package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS todo_items (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	description    TEXT NOT NULL CHECK(length(description) <= 400),
	detailed_notes TEXT NOT NULL DEFAULT '' CHECK(length(detailed_notes) <= 400),
	status         TEXT NOT NULL DEFAULT 'TODO' CHECK(status IN ('TODO', 'IN_PROGRESS', 'COMPLETE')),
	priority       INTEGER CHECK(priority BETWEEN 1 AND 5),
	due_date       TEXT,
	created_date   DATETIME NOT NULL,
	updated_date   DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_todo_items_status ON todo_items(status);
CREATE INDEX IF NOT EXISTS idx_todo_items_priority ON todo_items(priority);
CREATE INDEX IF NOT EXISTS idx_todo_items_due_date ON todo_items(due_date);

CREATE TABLE IF NOT EXISTS user_preferences (
	id               INTEGER PRIMARY KEY CHECK(id = 1),
	show_todo        INTEGER NOT NULL DEFAULT 1 CHECK(show_todo IN (0, 1)),
	show_in_progress INTEGER NOT NULL DEFAULT 1 CHECK(show_in_progress IN (0, 1)),
	show_complete    INTEGER NOT NULL DEFAULT 1 CHECK(show_complete IN (0, 1))
);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
}
