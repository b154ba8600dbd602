package store

import (
	"context"

	"github.com/jansonXAXAXA/Saved-Messages-Pro/internal/model"
)

// Store exposes persistence operations required by services.
// Implementations live under internal/store/<driver>/ (sqlite, postgres).
type Store interface {
	Users() Users
	Boards() Boards
	Items() Items
}

type Users interface {
	// Create inserts a new user. Returns model.ErrConflict when the
	// Telegram id is already registered.
	Create(ctx context.Context, u *model.User) (*model.User, error)
	GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error)
}

type Boards interface {
	Create(ctx context.Context, b *model.Board) (*model.Board, error)
	GetByID(ctx context.Context, boardID int64) (*model.Board, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*model.Board, error)
	// Delete removes the board and detaches its items (board reference
	// becomes absent); the items themselves survive.
	Delete(ctx context.Context, boardID int64) error
}

type Items interface {
	Create(ctx context.Context, it *model.Item) (*model.Item, error)
	GetByID(ctx context.Context, itemID int64) (*model.Item, error)
	ListByBoard(ctx context.Context, boardID int64) ([]*model.Item, error)
	// Move reassigns the item's board reference; nil means unsorted.
	Move(ctx context.Context, itemID int64, boardID *int64) (*model.Item, error)
	// SearchByTitle performs a case-insensitive substring match on title,
	// scoped to the owner.
	SearchByTitle(ctx context.Context, ownerID int64, query string) ([]*model.Item, error)
	Delete(ctx context.Context, itemID int64) error
}
