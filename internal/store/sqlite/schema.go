package sqlite

import "database/sql"

// EnsureSchema creates the core tables if they do not exist.
func EnsureSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            telegram_id BIGINT NOT NULL UNIQUE,
            username TEXT,
            creation_time TIMESTAMP NOT NULL
        );`,
		`CREATE TABLE IF NOT EXISTS boards (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            owner_id INTEGER NOT NULL REFERENCES users(id),
            name TEXT NOT NULL,
            icon TEXT,
            creation_time TIMESTAMP NOT NULL
        );`,
		`CREATE TABLE IF NOT EXISTS items (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            owner_id INTEGER NOT NULL REFERENCES users(id),
            board_id INTEGER REFERENCES boards(id),
            item_type TEXT NOT NULL,
            title TEXT NOT NULL,
            content TEXT NOT NULL,
            creation_time TIMESTAMP NOT NULL
        );`,
		`CREATE INDEX IF NOT EXISTS idx_boards_owner ON boards(owner_id);`,
		`CREATE INDEX IF NOT EXISTS idx_items_board ON items(board_id);`,
		`CREATE INDEX IF NOT EXISTS idx_items_owner_title ON items(owner_id, title);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}
