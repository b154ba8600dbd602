package bot

import (
	"strconv"

	"github.com/jansonXAXAXA/Saved-Messages-Pro/internal/model"
	"github.com/jansonXAXAXA/Saved-Messages-Pro/internal/telegram"
)

// textTitleLimit caps the auto-derived title of a text item.
const textTitleLimit = 50

// Event is a transport-neutral inbound event: either a message (text or
// media) or a button press.
type Event struct {
	UserID    int64
	Username  string
	ChatID    int64
	MessageID int // for callbacks, the message carrying the pressed keyboard

	Text     string
	Content  *ItemDraft // non-nil when the message carries savable content
	Callback *Callback  // non-nil for button presses
}

// Callback carries a button press and its opaque token.
type Callback struct {
	ID   string
	Data string
}

// EventFromUpdate converts a raw update into an Event. The second return is
// false for update kinds the bot does not handle.
func EventFromUpdate(u telegram.Update) (*Event, bool) {
	switch {
	case u.CallbackQuery != nil:
		cq := u.CallbackQuery
		ev := &Event{
			UserID:   cq.From.ID,
			Username: cq.From.Username,
			Callback: &Callback{ID: cq.ID, Data: cq.Data},
		}
		if cq.Message != nil {
			ev.ChatID = cq.Message.Chat.ID
			ev.MessageID = cq.Message.MessageID
		}
		return ev, true

	case u.Message != nil && u.Message.From != nil:
		m := u.Message
		return &Event{
			UserID:    m.From.ID,
			Username:  m.From.Username,
			ChatID:    m.Chat.ID,
			MessageID: m.MessageID,
			Text:      m.Text,
			Content:   classifyContent(m),
		}, true
	}
	return nil, false
}

// classifyContent derives an item draft from a message, or nil when the
// message carries nothing savable. For each kind the title is derived from
// the content and may later be overridden by the user.
func classifyContent(m *telegram.Message) *ItemDraft {
	switch {
	case m.Text != "":
		return &ItemDraft{Type: model.ItemText, Title: firstRunes(m.Text, textTitleLimit), Content: m.Text}
	case len(m.Photo) > 0:
		// The last photo size is the largest resolution.
		return &ItemDraft{Type: model.ItemPhoto, Title: "Photo", Content: m.Photo[len(m.Photo)-1].FileID}
	case m.Video != nil:
		return &ItemDraft{
			Type:    model.ItemVideo,
			Title:   "Video (" + strconv.Itoa(m.Video.Duration) + " sec)",
			Content: m.Video.FileID,
		}
	case m.Voice != nil:
		return &ItemDraft{
			Type:    model.ItemVoice,
			Title:   "Voice message (" + strconv.Itoa(m.Voice.Duration) + " sec)",
			Content: m.Voice.FileID,
		}
	case m.Document != nil:
		return &ItemDraft{Type: model.ItemDocument, Title: "Document: " + m.Document.FileName, Content: m.Document.FileID}
	case m.VideoNote != nil:
		return &ItemDraft{Type: model.ItemVideoNote, Title: "Video note", Content: m.VideoNote.FileID}
	case m.Location != nil:
		content := strconv.FormatFloat(m.Location.Latitude, 'f', -1, 64) +
			"," + strconv.FormatFloat(m.Location.Longitude, 'f', -1, 64)
		return &ItemDraft{Type: model.ItemLocation, Title: "Location", Content: content}
	}
	return nil
}

// firstRunes returns at most n leading runes of s.
func firstRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
