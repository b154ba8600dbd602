package services

import (
	"context"

	"github.com/jansonXAXAXA/Saved-Messages-Pro/internal/model"
	"github.com/jansonXAXAXA/Saved-Messages-Pro/internal/store"
)

// BoardService orchestrates board use cases and owns the detach-on-delete rule.
type BoardService struct {
	store store.Store
}

func NewBoardService(s store.Store) *BoardService { return &BoardService{store: s} }

// CreateBoard creates a board for the user identified by Telegram id,
// registering the user on the fly if needed. The name is stored as given;
// empty names are accepted.
func (s *BoardService) CreateBoard(ctx context.Context, telegramID int64, name string, icon *string) (*model.Board, error) {
	u, err := ensureUser(ctx, s.store, telegramID)
	if err != nil {
		return nil, err
	}
	return s.store.Boards().Create(ctx, &model.Board{OwnerID: u.ID, Name: name, Icon: icon})
}

func (s *BoardService) GetBoard(ctx context.Context, boardID int64) (*model.Board, error) {
	return s.store.Boards().GetByID(ctx, boardID)
}

func (s *BoardService) ListBoards(ctx context.Context, telegramID int64) ([]*model.Board, error) {
	u, err := s.store.Users().GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, err
	}
	return s.store.Boards().ListByOwner(ctx, u.ID)
}

// DeleteBoard removes the board. Its items are detached, not deleted.
func (s *BoardService) DeleteBoard(ctx context.Context, boardID int64) error {
	return s.store.Boards().Delete(ctx, boardID)
}
