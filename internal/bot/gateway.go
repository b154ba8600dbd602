package bot

import (
	"context"

	"github.com/jansonXAXAXA/Saved-Messages-Pro/internal/model"
	"github.com/jansonXAXAXA/Saved-Messages-Pro/internal/telegram"
)

// Gateway is the dialogue machine's view of the content store. Every call is
// attempted once; implementations translate store responses into the
// model sentinel errors (ErrNotFound, ErrUnavailable, ...) and never retry.
type Gateway interface {
	EnsureUser(ctx context.Context, telegramID int64, username string) error

	ListBoards(ctx context.Context, telegramID int64) ([]model.Board, error)
	CreateBoard(ctx context.Context, telegramID int64, name, icon string) (*model.Board, error)
	GetBoard(ctx context.Context, boardID int64) (*model.Board, error)
	DeleteBoard(ctx context.Context, boardID int64) error

	CreateItem(ctx context.Context, telegramID int64, itemType model.ItemType, title, content string) (*model.Item, error)
	ListBoardItems(ctx context.Context, boardID int64) ([]model.Item, error)
	GetItem(ctx context.Context, itemID int64) (*model.Item, error)
	MoveItem(ctx context.Context, itemID int64, boardID *int64) error
	SearchItems(ctx context.Context, telegramID int64, query string) ([]model.Item, error)
	DeleteItem(ctx context.Context, itemID int64) error
	ResolveDownload(ctx context.Context, itemID int64) (*model.Download, error)
}

// Responder delivers rendered output back to the chat. *telegram.Client
// satisfies it; tests substitute a recorder.
type Responder interface {
	SendMessage(ctx context.Context, chatID int64, text string, replyMarkup interface{}) error
	EditMessageText(ctx context.Context, chatID int64, messageID int, text string, markup *telegram.InlineKeyboardMarkup) error
	AnswerCallbackQuery(ctx context.Context, callbackID, text string, showAlert bool) error
	SendMedia(ctx context.Context, chatID int64, itemType model.ItemType, ref string) error
	SendLocation(ctx context.Context, chatID int64, lat, lon float64) error
}
