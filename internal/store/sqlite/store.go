package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jansonXAXAXA/Saved-Messages-Pro/internal/model"
	"github.com/jansonXAXAXA/Saved-Messages-Pro/internal/store"
)

// NewWithDB constructs a SQLite store backed by an existing connection.
// Callers are expected to have applied the schema (EnsureSchema).
func NewWithDB(db *sql.DB) store.Store { return &sqlStore{db: db} }

// New opens the database file, applies the schema and returns the store.
func New(path string) (store.Store, error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	if err := EnsureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return NewWithDB(db), nil
}

type sqlStore struct{ db *sql.DB }

func (s *sqlStore) Users() store.Users   { return &users{db: s.db} }
func (s *sqlStore) Boards() store.Boards { return &boards{db: s.db} }
func (s *sqlStore) Items() store.Items   { return &items{db: s.db} }

// HealthPing reports connectivity for the health endpoint.
func (s *sqlStore) HealthPing(ctx context.Context) error { return s.db.PingContext(ctx) }

func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return model.ErrNotFound
	case strings.Contains(err.Error(), "UNIQUE constraint failed"):
		return model.ErrConflict
	}
	return err
}

// --- Users ---

type users struct{ db *sql.DB }

func (u *users) Create(ctx context.Context, m *model.User) (*model.User, error) {
	now := time.Now().UTC()
	res, err := u.db.ExecContext(ctx,
		`INSERT INTO users (telegram_id, username, creation_time) VALUES (?,?,?)`,
		m.TelegramID, m.Username, now)
	if err != nil {
		return nil, mapErr(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	out := *m
	out.ID = id
	out.CreationTime = now
	return &out, nil
}

func (u *users) GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	var out model.User
	row := u.db.QueryRowContext(ctx,
		`SELECT id, telegram_id, username, creation_time FROM users WHERE telegram_id = ?`, telegramID)
	if err := row.Scan(&out.ID, &out.TelegramID, &out.Username, &out.CreationTime); err != nil {
		return nil, mapErr(err)
	}
	return &out, nil
}

// --- Boards ---

type boards struct{ db *sql.DB }

func (b *boards) Create(ctx context.Context, m *model.Board) (*model.Board, error) {
	now := time.Now().UTC()
	res, err := b.db.ExecContext(ctx,
		`INSERT INTO boards (owner_id, name, icon, creation_time) VALUES (?,?,?,?)`,
		m.OwnerID, m.Name, m.Icon, now)
	if err != nil {
		return nil, mapErr(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	out := *m
	out.ID = id
	out.CreationTime = now
	return &out, nil
}

func (b *boards) GetByID(ctx context.Context, boardID int64) (*model.Board, error) {
	var out model.Board
	row := b.db.QueryRowContext(ctx,
		`SELECT id, owner_id, name, icon, creation_time FROM boards WHERE id = ?`, boardID)
	if err := row.Scan(&out.ID, &out.OwnerID, &out.Name, &out.Icon, &out.CreationTime); err != nil {
		return nil, mapErr(err)
	}
	return &out, nil
}

func (b *boards) ListByOwner(ctx context.Context, ownerID int64) ([]*model.Board, error) {
	rows, err := b.db.QueryContext(ctx,
		`SELECT id, owner_id, name, icon, creation_time FROM boards WHERE owner_id = ? ORDER BY id`, ownerID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var res []*model.Board
	for rows.Next() {
		var m model.Board
		if err := rows.Scan(&m.ID, &m.OwnerID, &m.Name, &m.Icon, &m.CreationTime); err != nil {
			return nil, err
		}
		res = append(res, &m)
	}
	return res, rows.Err()
}

func (b *boards) Delete(ctx context.Context, boardID int64) error {
	tx, err := b.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	// Detach items before removing the board; items survive as unsorted.
	if _, err := tx.ExecContext(ctx, `UPDATE items SET board_id = NULL WHERE board_id = ?`, boardID); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM boards WHERE id = ?`, boardID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ErrNotFound
	}
	return tx.Commit()
}

// --- Items ---

type items struct{ db *sql.DB }

func (i *items) Create(ctx context.Context, m *model.Item) (*model.Item, error) {
	now := time.Now().UTC()
	res, err := i.db.ExecContext(ctx,
		`INSERT INTO items (owner_id, board_id, item_type, title, content, creation_time) VALUES (?,?,?,?,?,?)`,
		m.OwnerID, m.BoardID, string(m.Type), m.Title, m.Content, now)
	if err != nil {
		return nil, mapErr(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	out := *m
	out.ID = id
	out.CreationTime = now
	return &out, nil
}

func (i *items) GetByID(ctx context.Context, itemID int64) (*model.Item, error) {
	row := i.db.QueryRowContext(ctx,
		`SELECT id, owner_id, board_id, item_type, title, content, creation_time FROM items WHERE id = ?`, itemID)
	return scanItem(row)
}

func (i *items) ListByBoard(ctx context.Context, boardID int64) ([]*model.Item, error) {
	rows, err := i.db.QueryContext(ctx,
		`SELECT id, owner_id, board_id, item_type, title, content, creation_time
         FROM items WHERE board_id = ? ORDER BY id`, boardID)
	if err != nil {
		return nil, err
	}
	return collectItems(rows)
}

func (i *items) Move(ctx context.Context, itemID int64, boardID *int64) (*model.Item, error) {
	res, err := i.db.ExecContext(ctx, `UPDATE items SET board_id = ? WHERE id = ?`, boardID, itemID)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, model.ErrNotFound
	}
	return i.GetByID(ctx, itemID)
}

func (i *items) SearchByTitle(ctx context.Context, ownerID int64, query string) ([]*model.Item, error) {
	rows, err := i.db.QueryContext(ctx,
		`SELECT id, owner_id, board_id, item_type, title, content, creation_time
         FROM items WHERE owner_id = ? AND LOWER(title) LIKE '%' || LOWER(?) || '%' ORDER BY id`,
		ownerID, query)
	if err != nil {
		return nil, err
	}
	return collectItems(rows)
}

func (i *items) Delete(ctx context.Context, itemID int64) error {
	res, err := i.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, itemID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ErrNotFound
	}
	return nil
}

type rowScanner interface{ Scan(dest ...any) error }

func scanItem(row rowScanner) (*model.Item, error) {
	var m model.Item
	var itemType string
	if err := row.Scan(&m.ID, &m.OwnerID, &m.BoardID, &itemType, &m.Title, &m.Content, &m.CreationTime); err != nil {
		return nil, mapErr(err)
	}
	m.Type = model.ItemType(itemType)
	return &m, nil
}

func collectItems(rows *sql.Rows) ([]*model.Item, error) {
	defer func() { _ = rows.Close() }()
	var res []*model.Item
	for rows.Next() {
		m, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, m)
	}
	return res, rows.Err()
}
