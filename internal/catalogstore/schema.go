package catalogstore

func pragmas() []string {
	return []string{
		`PRAGMA journal_mode = WAL`,
		`PRAGMA busy_timeout = 5000`,
		`PRAGMA foreign_keys = ON`,
	}
}

func schema() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS units (
			unit_id    TEXT PRIMARY KEY,
			version    TEXT NOT NULL,
			category   TEXT NOT NULL DEFAULT '',
			domain     TEXT NOT NULL DEFAULT '',
			payload    TEXT NOT NULL,
			indexed_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_units_category ON units(category)`,
		`CREATE INDEX IF NOT EXISTS idx_units_domain ON units(domain)`,
	}
}
