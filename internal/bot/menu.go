package bot

import (
	"github.com/jansonXAXAXA/Saved-Messages-Pro/internal/model"
	"github.com/jansonXAXAXA/Saved-Messages-Pro/internal/telegram"
)

// Menu rendering is pure: domain records in, button layouts out. All state
// a button needs is encoded in its callback token.

// titleLimit is the display-safe title length; longer titles get a ".."
// marker.
const titleLimit = 40

const defaultBoardIcon = "📁"

// MainMenuKeyboard is the persistent reply keyboard with the four fixed
// menu commands.
func MainMenuKeyboard() *telegram.ReplyKeyboardMarkup {
	return &telegram.ReplyKeyboardMarkup{
		Keyboard: [][]telegram.KeyboardButton{
			{{Text: labelViewBoards}},
			{{Text: labelCreateBoard}, {Text: labelManage}},
			{{Text: labelSearch}},
		},
		ResizeKeyboard: true,
	}
}

// BoardsMenu lists boards one per row, each button firing the given action
// with the board id.
func BoardsMenu(boards []model.Board, action Action) *telegram.InlineKeyboardMarkup {
	rows := make([][]telegram.InlineKeyboardButton, 0, len(boards))
	for _, b := range boards {
		rows = append(rows, []telegram.InlineKeyboardButton{{
			Text:         boardLabel(b),
			CallbackData: Token(action, b.ID),
		}})
	}
	return &telegram.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// MoveTargetsMenu renders destination boards for a freshly saved item, two
// per row.
func MoveTargetsMenu(itemID int64, boards []model.Board) *telegram.InlineKeyboardMarkup {
	var rows [][]telegram.InlineKeyboardButton
	var row []telegram.InlineKeyboardButton
	for _, b := range boards {
		row = append(row, telegram.InlineKeyboardButton{
			Text:         boardLabel(b),
			CallbackData: Token(ActionMoveItem, itemID, b.ID),
		})
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return &telegram.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// BoardItemsMenu renders a board's items one per row, with a placeholder
// when the board is empty and a back row returning to the board list.
func BoardItemsMenu(items []model.Item, boardID int64) *telegram.InlineKeyboardMarkup {
	var rows [][]telegram.InlineKeyboardButton
	if len(items) == 0 {
		rows = append(rows, []telegram.InlineKeyboardButton{{
			Text:         msgEmptyBoard,
			CallbackData: Token(ActionDoNothing),
		}})
	}
	for _, it := range items {
		rows = append(rows, []telegram.InlineKeyboardButton{{
			Text:         itemLabel(it),
			CallbackData: Token(ActionManageItem, it.ID, boardID),
		}})
	}
	rows = append(rows, []telegram.InlineKeyboardButton{{
		Text:         labelBackToBoards,
		CallbackData: Token(ActionBackToBoards),
	}})
	return &telegram.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// ItemActionsMenu offers show and delete for one item, plus a back row to
// the owning board.
func ItemActionsMenu(itemID, boardID int64) *telegram.InlineKeyboardMarkup {
	return &telegram.InlineKeyboardMarkup{
		InlineKeyboard: [][]telegram.InlineKeyboardButton{
			{
				{Text: labelShow, CallbackData: Token(ActionShowItem, itemID)},
				{Text: labelDelete, CallbackData: Token(ActionDeleteItem, itemID, boardID)},
			},
			{
				{Text: labelBack, CallbackData: Token(ActionViewBoard, boardID)},
			},
		},
	}
}

// ConfirmDeleteMenu asks the user to confirm or abort a board deletion.
func ConfirmDeleteMenu(boardID int64) *telegram.InlineKeyboardMarkup {
	return &telegram.InlineKeyboardMarkup{
		InlineKeyboard: [][]telegram.InlineKeyboardButton{{
			{Text: labelConfirmDelete, CallbackData: Token(ActionConfirmDelete, boardID)},
			{Text: labelCancel, CallbackData: Token(ActionCancelDelete)},
		}},
	}
}

// SearchResultsMenu lists matched items one per row, each opening the item
// directly.
func SearchResultsMenu(items []model.Item) *telegram.InlineKeyboardMarkup {
	rows := make([][]telegram.InlineKeyboardButton, 0, len(items))
	for _, it := range items {
		rows = append(rows, []telegram.InlineKeyboardButton{{
			Text:         itemLabel(it),
			CallbackData: Token(ActionShowItem, it.ID),
		}})
	}
	return &telegram.InlineKeyboardMarkup{InlineKeyboard: rows}
}

func boardLabel(b model.Board) string {
	icon := defaultBoardIcon
	if b.Icon != nil && *b.Icon != "" {
		icon = *b.Icon
	}
	return icon + " " + b.Name
}

func itemLabel(it model.Item) string {
	return "▪️ " + truncateTitle(it.Title)
}

// truncateTitle caps a title at titleLimit runes, appending ".." when cut.
func truncateTitle(s string) string {
	r := []rune(s)
	if len(r) <= titleLimit {
		return s
	}
	return string(r[:titleLimit]) + ".."
}
