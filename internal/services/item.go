package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/jansonXAXAXA/Saved-Messages-Pro/internal/model"
	"github.com/jansonXAXAXA/Saved-Messages-Pro/internal/store"
)

// SearchMinLength is the shortest accepted search query, in runes.
const SearchMinLength = 2

// FileResolver turns a platform file handle into a time-limited download URL.
type FileResolver interface {
	FileURL(ctx context.Context, fileID string) (string, error)
}

// ItemService orchestrates item use cases: creation, moves, search, download
// resolution. Owner references never change after creation; board references
// may only point at a board of the same owner.
type ItemService struct {
	store    store.Store
	resolver FileResolver
}

func NewItemService(s store.Store, resolver FileResolver) *ItemService {
	return &ItemService{store: s, resolver: resolver}
}

// CreateItem saves one unit of content for the user identified by Telegram id.
// New items start unsorted.
func (s *ItemService) CreateItem(ctx context.Context, telegramID int64, itemType model.ItemType, title, content string) (*model.Item, error) {
	if !itemType.Valid() {
		return nil, fmt.Errorf("unknown item type %q: %w", itemType, model.ErrValidation)
	}
	u, err := s.store.Users().GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, err
	}
	return s.store.Items().Create(ctx, &model.Item{OwnerID: u.ID, Type: itemType, Title: title, Content: content})
}

func (s *ItemService) GetItem(ctx context.Context, itemID int64) (*model.Item, error) {
	return s.store.Items().GetByID(ctx, itemID)
}

func (s *ItemService) ListBoardItems(ctx context.Context, boardID int64) ([]*model.Item, error) {
	return s.store.Items().ListByBoard(ctx, boardID)
}

// MoveItem reassigns the item to a board (nil = unsorted). The target board
// must exist and belong to the item's owner.
func (s *ItemService) MoveItem(ctx context.Context, itemID int64, boardID *int64) (*model.Item, error) {
	it, err := s.store.Items().GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if boardID != nil {
		b, err := s.store.Boards().GetByID(ctx, *boardID)
		if err != nil {
			return nil, err
		}
		if b.OwnerID != it.OwnerID {
			return nil, fmt.Errorf("board %d belongs to another user: %w", *boardID, model.ErrValidation)
		}
	}
	return s.store.Items().Move(ctx, itemID, boardID)
}

// SearchItems matches the query against item titles, case-insensitively,
// scoped to the owner. Queries shorter than SearchMinLength are rejected
// without touching the store.
func (s *ItemService) SearchItems(ctx context.Context, telegramID int64, query string) ([]*model.Item, error) {
	q := strings.TrimSpace(query)
	if len([]rune(q)) < SearchMinLength {
		return nil, fmt.Errorf("query must be at least %d characters: %w", SearchMinLength, model.ErrValidation)
	}
	u, err := s.store.Users().GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, err
	}
	return s.store.Items().SearchByTitle(ctx, u.ID, q)
}

func (s *ItemService) DeleteItem(ctx context.Context, itemID int64) error {
	return s.store.Items().Delete(ctx, itemID)
}

// ResolveDownload returns a delivery handle for the item's content. Text and
// location items carry their content inline; media items are resolved through
// the platform file API.
func (s *ItemService) ResolveDownload(ctx context.Context, itemID int64) (*model.Download, error) {
	it, err := s.store.Items().GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !it.Type.IsMedia() {
		return &model.Download{URL: it.Content, IsMedia: false}, nil
	}
	if s.resolver == nil {
		return nil, fmt.Errorf("no file resolver configured: %w", model.ErrUnavailable)
	}
	url, err := s.resolver.FileURL(ctx, it.Content)
	if err != nil {
		return nil, fmt.Errorf("resolve file handle: %w", err)
	}
	return &model.Download{URL: url, IsMedia: true}, nil
}
