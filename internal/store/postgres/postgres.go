package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/jansonXAXAXA/Saved-Messages-Pro/internal/model"
	"github.com/jansonXAXAXA/Saved-Messages-Pro/internal/store"
)

// Open opens a PostgreSQL connection using the pgx stdlib driver and verifies
// connectivity.
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// NewWithDB constructs a Postgres store backed directly by database/sql.
// Schema setup is handled by deployment migrations, not by this package.
func NewWithDB(db *sql.DB) store.Store { return &pgStore{db: db} }

type pgStore struct{ db *sql.DB }

func (s *pgStore) Users() store.Users   { return &users{db: s.db} }
func (s *pgStore) Boards() store.Boards { return &boards{db: s.db} }
func (s *pgStore) Items() store.Items   { return &items{db: s.db} }

func (s *pgStore) HealthPing(ctx context.Context) error { return s.db.PingContext(ctx) }

func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return model.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return model.ErrConflict
		case "23503": // foreign_key_violation
			return model.ErrNotFound
		}
	}
	return err
}

// --- Users ---

type users struct{ db *sql.DB }

func (u *users) Create(ctx context.Context, m *model.User) (*model.User, error) {
	var id int64
	var created time.Time
	row := u.db.QueryRowContext(ctx, `
        INSERT INTO users (telegram_id, username, creation_time)
        VALUES ($1,$2,now())
        RETURNING id, creation_time
    `, m.TelegramID, m.Username)
	if err := row.Scan(&id, &created); err != nil {
		return nil, mapErr(err)
	}
	out := *m
	out.ID = id
	out.CreationTime = created
	return &out, nil
}

func (u *users) GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	var out model.User
	row := u.db.QueryRowContext(ctx, `
        SELECT id, telegram_id, username, creation_time FROM users WHERE telegram_id=$1
    `, telegramID)
	if err := row.Scan(&out.ID, &out.TelegramID, &out.Username, &out.CreationTime); err != nil {
		return nil, mapErr(err)
	}
	return &out, nil
}

// --- Boards ---

type boards struct{ db *sql.DB }

func (b *boards) Create(ctx context.Context, m *model.Board) (*model.Board, error) {
	var id int64
	var created time.Time
	row := b.db.QueryRowContext(ctx, `
        INSERT INTO boards (owner_id, name, icon, creation_time)
        VALUES ($1,$2,$3,now())
        RETURNING id, creation_time
    `, m.OwnerID, m.Name, m.Icon)
	if err := row.Scan(&id, &created); err != nil {
		return nil, mapErr(err)
	}
	out := *m
	out.ID = id
	out.CreationTime = created
	return &out, nil
}

func (b *boards) GetByID(ctx context.Context, boardID int64) (*model.Board, error) {
	var out model.Board
	row := b.db.QueryRowContext(ctx, `
        SELECT id, owner_id, name, icon, creation_time FROM boards WHERE id=$1
    `, boardID)
	if err := row.Scan(&out.ID, &out.OwnerID, &out.Name, &out.Icon, &out.CreationTime); err != nil {
		return nil, mapErr(err)
	}
	return &out, nil
}

func (b *boards) ListByOwner(ctx context.Context, ownerID int64) ([]*model.Board, error) {
	rows, err := b.db.QueryContext(ctx, `
        SELECT id, owner_id, name, icon, creation_time FROM boards WHERE owner_id=$1 ORDER BY id
    `, ownerID)
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

	if _, err := tx.ExecContext(ctx, `UPDATE items SET board_id=NULL WHERE board_id=$1`, boardID); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM boards WHERE id=$1`, boardID)
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
	var id int64
	var created time.Time
	row := i.db.QueryRowContext(ctx, `
        INSERT INTO items (owner_id, board_id, item_type, title, content, creation_time)
        VALUES ($1,$2,$3,$4,$5,now())
        RETURNING id, creation_time
    `, m.OwnerID, m.BoardID, string(m.Type), m.Title, m.Content)
	if err := row.Scan(&id, &created); err != nil {
		return nil, mapErr(err)
	}
	out := *m
	out.ID = id
	out.CreationTime = created
	return &out, nil
}

func (i *items) GetByID(ctx context.Context, itemID int64) (*model.Item, error) {
	row := i.db.QueryRowContext(ctx, `
        SELECT id, owner_id, board_id, item_type, title, content, creation_time
        FROM items WHERE id=$1
    `, itemID)
	return scanItem(row)
}

func (i *items) ListByBoard(ctx context.Context, boardID int64) ([]*model.Item, error) {
	rows, err := i.db.QueryContext(ctx, `
        SELECT id, owner_id, board_id, item_type, title, content, creation_time
        FROM items WHERE board_id=$1 ORDER BY id
    `, boardID)
	if err != nil {
		return nil, err
	}
	return collectItems(rows)
}

func (i *items) Move(ctx context.Context, itemID int64, boardID *int64) (*model.Item, error) {
	res, err := i.db.ExecContext(ctx, `UPDATE items SET board_id=$1 WHERE id=$2`, boardID, itemID)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, model.ErrNotFound
	}
	return i.GetByID(ctx, itemID)
}

func (i *items) SearchByTitle(ctx context.Context, ownerID int64, query string) ([]*model.Item, error) {
	rows, err := i.db.QueryContext(ctx, `
        SELECT id, owner_id, board_id, item_type, title, content, creation_time
        FROM items WHERE owner_id=$1 AND title ILIKE '%' || $2 || '%' ORDER BY id
    `, ownerID, query)
	if err != nil {
		return nil, err
	}
	return collectItems(rows)
}

func (i *items) Delete(ctx context.Context, itemID int64) error {
	res, err := i.db.ExecContext(ctx, `DELETE FROM items WHERE id=$1`, itemID)
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
