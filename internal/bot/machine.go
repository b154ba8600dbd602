package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/jansonXAXAXA/Saved-Messages-Pro/internal/model"
	"github.com/jansonXAXAXA/Saved-Messages-Pro/internal/telegram"
)

// searchMinLength is the minimum trimmed query length; shorter queries are
// rejected locally without a gateway call.
const searchMinLength = 2

// Machine drives the per-user dialogue. It consumes classified events,
// mutates dialogue state, calls the gateway, and renders menus through the
// responder.
//
// Gateway failures never escape as dialogue corruption: every flow resets
// to its terminal state whether the store call succeeded or not, and the
// outcome only changes the displayed text.
type Machine struct {
	gw     Gateway
	out    Responder
	states *StateStore
	log    zerolog.Logger
}

func NewMachine(gw Gateway, out Responder, states *StateStore, log zerolog.Logger) *Machine {
	return &Machine{gw: gw, out: out, states: states, log: log}
}

// Handle processes one inbound event for one user. The returned error only
// reports delivery problems; dialogue-level failures are already rendered as
// user-visible text.
func (m *Machine) Handle(ctx context.Context, ev *Event) error {
	st := m.states.Get(ev.UserID)
	class, cmd := Classify(ev, st.Flow)

	switch class {
	case ClassCallback:
		return m.handleCallback(ctx, ev)
	case ClassCommand:
		return m.handleCommand(ctx, ev, cmd)
	case ClassFlow:
		return m.handleFlow(ctx, ev, st)
	case ClassContent:
		return m.handleContent(ctx, ev)
	}
	return nil
}

// ------------------------- commands -------------------------

func (m *Machine) handleCommand(ctx context.Context, ev *Event, cmd Command) error {
	switch cmd {
	case CmdStart:
		m.states.Reset(ev.UserID)
		return m.sendGreeting(ctx, ev)

	case CmdCancel:
		m.states.Reset(ev.UserID)
		if err := m.out.SendMessage(ctx, ev.ChatID, msgCancelled, nil); err != nil {
			return err
		}
		return m.sendGreeting(ctx, ev)

	case CmdViewBoards:
		boards, err := m.gw.ListBoards(ctx, ev.UserID)
		if err != nil {
			m.log.Warn().Err(err).Int64("user", ev.UserID).Msg("list boards failed")
			return m.out.SendMessage(ctx, ev.ChatID, msgBoardsFailed, nil)
		}
		if len(boards) == 0 {
			return m.out.SendMessage(ctx, ev.ChatID, msgNoBoards, nil)
		}
		return m.out.SendMessage(ctx, ev.ChatID, msgChooseBoard, BoardsMenu(boards, ActionViewBoard))

	case CmdManage:
		boards, err := m.gw.ListBoards(ctx, ev.UserID)
		if err != nil {
			m.log.Warn().Err(err).Int64("user", ev.UserID).Msg("list boards failed")
			return m.out.SendMessage(ctx, ev.ChatID, msgBoardsFailed, nil)
		}
		if len(boards) == 0 {
			return m.out.SendMessage(ctx, ev.ChatID, msgNothingDelete, nil)
		}
		return m.out.SendMessage(ctx, ev.ChatID, msgChooseDelete, BoardsMenu(boards, ActionDeleteBoard))

	case CmdCreateBoard:
		m.states.Set(ev.UserID, DialogueState{Flow: FlowBoardName})
		return m.out.SendMessage(ctx, ev.ChatID, msgAskBoardName, telegram.ReplyKeyboardRemove{RemoveKeyboard: true})

	case CmdSearch:
		m.states.Set(ev.UserID, DialogueState{Flow: FlowSearchQuery})
		return m.out.SendMessage(ctx, ev.ChatID, msgAskQuery, telegram.ReplyKeyboardRemove{RemoveKeyboard: true})
	}
	return nil
}

// sendGreeting registers the user (best effort) and shows the main menu.
func (m *Machine) sendGreeting(ctx context.Context, ev *Event) error {
	if err := m.gw.EnsureUser(ctx, ev.UserID, ev.Username); err != nil {
		m.log.Warn().Err(err).Int64("user", ev.UserID).Msg("ensure user failed")
	}
	return m.out.SendMessage(ctx, ev.ChatID, msgGreeting, MainMenuKeyboard())
}

// ------------------------- flows -------------------------

func (m *Machine) handleFlow(ctx context.Context, ev *Event, st DialogueState) error {
	switch st.Flow {
	case FlowBoardName:
		// Empty names are accepted as-is.
		m.states.Set(ev.UserID, DialogueState{Flow: FlowBoardIcon, BoardName: ev.Text})
		return m.out.SendMessage(ctx, ev.ChatID, msgAskBoardIcon, nil)

	case FlowBoardIcon:
		return m.finishBoardCreation(ctx, ev, st.BoardName, ev.Text)

	case FlowSearchQuery:
		return m.finishSearch(ctx, ev, ev.Text)

	case FlowItemTitle:
		return m.finishItemSave(ctx, ev, st.Draft, ev.Text)
	}
	return nil
}

func (m *Machine) finishBoardCreation(ctx context.Context, ev *Event, name, icon string) error {
	m.states.Reset(ev.UserID)
	_, err := m.gw.CreateBoard(ctx, ev.UserID, name, icon)
	if gerr := m.sendGreeting(ctx, ev); gerr != nil {
		return gerr
	}
	if err != nil {
		m.log.Warn().Err(err).Int64("user", ev.UserID).Msg("create board failed")
		return m.out.SendMessage(ctx, ev.ChatID, msgBoardFailed, nil)
	}
	return m.out.SendMessage(ctx, ev.ChatID, fmt.Sprintf("✅ Board '%s %s' created!", icon, name), nil)
}

func (m *Machine) finishSearch(ctx context.Context, ev *Event, raw string) error {
	m.states.Reset(ev.UserID)

	query := strings.TrimSpace(raw)
	if utf8.RuneCountInString(query) < searchMinLength {
		if err := m.out.SendMessage(ctx, ev.ChatID, msgQueryTooShort, nil); err != nil {
			return err
		}
		return m.sendGreeting(ctx, ev)
	}

	items, err := m.gw.SearchItems(ctx, ev.UserID, query)
	switch {
	case err != nil:
		m.log.Warn().Err(err).Int64("user", ev.UserID).Msg("search failed")
		if serr := m.out.SendMessage(ctx, ev.ChatID, msgSearchFailed, nil); serr != nil {
			return serr
		}
	case len(items) == 0:
		if serr := m.out.SendMessage(ctx, ev.ChatID, msgSearchNothing, nil); serr != nil {
			return serr
		}
	default:
		if serr := m.out.SendMessage(ctx, ev.ChatID, msgSearchResults, SearchResultsMenu(items)); serr != nil {
			return serr
		}
	}
	// Restore the main keyboard without repeating the greeting.
	return m.out.SendMessage(ctx, ev.ChatID, msgMainMenu, MainMenuKeyboard())
}

func (m *Machine) finishItemSave(ctx context.Context, ev *Event, draft *ItemDraft, text string) error {
	m.states.Reset(ev.UserID)
	if draft == nil {
		return m.sendGreeting(ctx, ev)
	}

	// "." keeps the auto-derived title.
	title := text
	if title == "." {
		title = draft.Title
	}

	item, err := m.gw.CreateItem(ctx, ev.UserID, draft.Type, title, draft.Content)
	if err != nil {
		m.log.Warn().Err(err).Int64("user", ev.UserID).Msg("create item failed")
		if serr := m.out.SendMessage(ctx, ev.ChatID, msgItemFailed, nil); serr != nil {
			return serr
		}
		return m.sendGreeting(ctx, ev)
	}

	// The destination picker is offered only here, right after a save.
	boards, err := m.gw.ListBoards(ctx, ev.UserID)
	if err != nil || len(boards) == 0 {
		if err != nil {
			m.log.Warn().Err(err).Int64("user", ev.UserID).Msg("list boards failed")
		}
		if serr := m.out.SendMessage(ctx, ev.ChatID, msgSavedUnsorted, nil); serr != nil {
			return serr
		}
		return m.sendGreeting(ctx, ev)
	}
	if serr := m.out.SendMessage(ctx, ev.ChatID, msgSavedWhereTo, MoveTargetsMenu(item.ID, boards)); serr != nil {
		return serr
	}
	return m.sendGreeting(ctx, ev)
}

func (m *Machine) handleContent(ctx context.Context, ev *Event) error {
	draft := ev.Content
	m.states.Set(ev.UserID, DialogueState{Flow: FlowItemTitle, Draft: draft})
	return m.out.SendMessage(ctx, ev.ChatID, msgAskTitle(draft.Title), telegram.ReplyKeyboardRemove{RemoveKeyboard: true})
}

// ------------------------- callbacks -------------------------

// handleCallback executes a button press. Callbacks are stateless: they act
// purely on the ids embedded in the token and never touch dialogue state.
func (m *Machine) handleCallback(ctx context.Context, ev *Event) error {
	action, ids, ok := ParseToken(ev.Callback.Data)
	if !ok {
		return m.out.AnswerCallbackQuery(ctx, ev.Callback.ID, "", false)
	}

	switch {
	case action == ActionViewBoard && len(ids) == 1:
		return m.showBoardContents(ctx, ev, ids[0])

	case action == ActionManageItem && len(ids) == 2:
		if err := m.out.EditMessageText(ctx, ev.ChatID, ev.MessageID, msgChooseAction, ItemActionsMenu(ids[0], ids[1])); err != nil {
			return err
		}
		return m.out.AnswerCallbackQuery(ctx, ev.Callback.ID, "", false)

	case action == ActionDeleteItem && len(ids) == 2:
		return m.deleteItem(ctx, ev, ids[0], ids[1])

	case action == ActionBackToBoards:
		return m.backToBoards(ctx, ev)

	case action == ActionShowItem && len(ids) == 1:
		return m.showItem(ctx, ev, ids[0])

	case action == ActionDeleteBoard && len(ids) == 1:
		if err := m.out.EditMessageText(ctx, ev.ChatID, ev.MessageID, msgConfirmDelete, ConfirmDeleteMenu(ids[0])); err != nil {
			return err
		}
		return m.out.AnswerCallbackQuery(ctx, ev.Callback.ID, "", false)

	case action == ActionConfirmDelete && len(ids) == 1:
		text := msgBoardDeleted
		if err := m.gw.DeleteBoard(ctx, ids[0]); err != nil {
			m.log.Warn().Err(err).Int64("board", ids[0]).Msg("delete board failed")
			text = msgBoardDelFailed
		}
		if err := m.out.EditMessageText(ctx, ev.ChatID, ev.MessageID, text, nil); err != nil {
			return err
		}
		return m.out.AnswerCallbackQuery(ctx, ev.Callback.ID, "", false)

	case action == ActionCancelDelete:
		if err := m.out.EditMessageText(ctx, ev.ChatID, ev.MessageID, msgDeleteAborted, nil); err != nil {
			return err
		}
		return m.out.AnswerCallbackQuery(ctx, ev.Callback.ID, "", false)

	case action == ActionMoveItem && len(ids) == 2:
		text := msgItemMoved
		boardID := ids[1]
		if err := m.gw.MoveItem(ctx, ids[0], &boardID); err != nil {
			m.log.Warn().Err(err).Int64("item", ids[0]).Msg("move item failed")
			text = msgMoveFailed
		}
		if err := m.out.EditMessageText(ctx, ev.ChatID, ev.MessageID, text, nil); err != nil {
			return err
		}
		return m.out.AnswerCallbackQuery(ctx, ev.Callback.ID, "", false)
	}

	// Unknown action, or an arity the action does not support.
	return m.out.AnswerCallbackQuery(ctx, ev.Callback.ID, "", false)
}

func (m *Machine) showBoardContents(ctx context.Context, ev *Event, boardID int64) error {
	items, err := m.gw.ListBoardItems(ctx, boardID)
	if err != nil {
		m.log.Warn().Err(err).Int64("board", boardID).Msg("list items failed")
		return m.out.AnswerCallbackQuery(ctx, ev.Callback.ID, msgItemsFailed, true)
	}

	// Board name is cosmetic here, so a fetch failure degrades to an empty
	// heading instead of aborting.
	name := ""
	if board, err := m.gw.GetBoard(ctx, boardID); err == nil {
		name = board.Name
	}

	text := fmt.Sprintf(msgBoardContents, name)
	if err := m.out.EditMessageText(ctx, ev.ChatID, ev.MessageID, text, BoardItemsMenu(items, boardID)); err != nil {
		return err
	}
	return m.out.AnswerCallbackQuery(ctx, ev.Callback.ID, "", false)
}

func (m *Machine) deleteItem(ctx context.Context, ev *Event, itemID, boardID int64) error {
	if err := m.gw.DeleteItem(ctx, itemID); err != nil {
		m.log.Warn().Err(err).Int64("item", itemID).Msg("delete item failed")
		return m.out.AnswerCallbackQuery(ctx, ev.Callback.ID, msgItemDelFailed, true)
	}
	if err := m.out.AnswerCallbackQuery(ctx, ev.Callback.ID, msgItemDeleted, true); err != nil {
		return err
	}
	// Re-render the owning board in place.
	items, err := m.gw.ListBoardItems(ctx, boardID)
	if err != nil {
		m.log.Warn().Err(err).Int64("board", boardID).Msg("list items failed")
		return nil
	}
	name := ""
	if board, err := m.gw.GetBoard(ctx, boardID); err == nil {
		name = board.Name
	}
	return m.out.EditMessageText(ctx, ev.ChatID, ev.MessageID, fmt.Sprintf(msgBoardContents, name), BoardItemsMenu(items, boardID))
}

func (m *Machine) backToBoards(ctx context.Context, ev *Event) error {
	boards, err := m.gw.ListBoards(ctx, ev.UserID)
	if err != nil {
		m.log.Warn().Err(err).Int64("user", ev.UserID).Msg("list boards failed")
		return m.out.AnswerCallbackQuery(ctx, ev.Callback.ID, msgBoardsFailed, true)
	}
	var markup *telegram.InlineKeyboardMarkup
	if len(boards) > 0 {
		markup = BoardsMenu(boards, ActionViewBoard)
	}
	if err := m.out.EditMessageText(ctx, ev.ChatID, ev.MessageID, msgChooseBoard, markup); err != nil {
		return err
	}
	return m.out.AnswerCallbackQuery(ctx, ev.Callback.ID, "", false)
}

func (m *Machine) showItem(ctx context.Context, ev *Event, itemID int64) error {
	item, err := m.gw.GetItem(ctx, itemID)
	if err != nil {
		m.log.Warn().Err(err).Int64("item", itemID).Msg("get item failed")
		return m.out.AnswerCallbackQuery(ctx, ev.Callback.ID, msgItemNotFound, true)
	}

	switch {
	case item.Type.IsMedia():
		dl, err := m.gw.ResolveDownload(ctx, itemID)
		if err != nil {
			m.log.Warn().Err(err).Int64("item", itemID).Msg("resolve download failed")
			return m.out.AnswerCallbackQuery(ctx, ev.Callback.ID, msgShowFailed, true)
		}
		if err := m.out.SendMedia(ctx, ev.ChatID, item.Type, dl.URL); err != nil {
			return err
		}

	case item.Type == model.ItemLocation:
		lat, lon, perr := parseCoordinates(item.Content)
		if perr != nil {
			if err := m.out.SendMessage(ctx, ev.ChatID, fmt.Sprintf(msgBadLocation, item.Content), nil); err != nil {
				return err
			}
			break
		}
		if err := m.out.SendLocation(ctx, ev.ChatID, lat, lon); err != nil {
			return err
		}

	default:
		// Text and unrecognized types render their raw content.
		if err := m.out.SendMessage(ctx, ev.ChatID, item.Content, nil); err != nil {
			return err
		}
	}
	return m.out.AnswerCallbackQuery(ctx, ev.Callback.ID, "", false)
}

// parseCoordinates splits a stored "lat,lon" pair.
func parseCoordinates(s string) (lat, lon float64, err error) {
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("not a coordinate pair: %q", s)
	}
	if lat, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64); err != nil {
		return 0, 0, err
	}
	if lon, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64); err != nil {
		return 0, 0, err
	}
	return lat, lon, nil
}
