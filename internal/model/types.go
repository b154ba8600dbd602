package model

import "time"

// ItemType classifies the kind of content an item holds.
type ItemType string

const (
	ItemText      ItemType = "text"
	ItemPhoto     ItemType = "photo"
	ItemVideo     ItemType = "video"
	ItemVoice     ItemType = "voice"
	ItemDocument  ItemType = "document"
	ItemVideoNote ItemType = "video_note"
	ItemLocation  ItemType = "location"
)

// Valid reports whether t is one of the known item types.
func (t ItemType) Valid() bool {
	switch t {
	case ItemText, ItemPhoto, ItemVideo, ItemVoice, ItemDocument, ItemVideoNote, ItemLocation:
		return true
	}
	return false
}

// IsMedia reports whether the item's content is a platform file handle
// rather than inline text or coordinates.
func (t ItemType) IsMedia() bool {
	switch t {
	case ItemPhoto, ItemVideo, ItemVoice, ItemDocument, ItemVideoNote:
		return true
	}
	return false
}

// User represents an account keyed by the platform-assigned Telegram id.
type User struct {
	ID           int64     `json:"id"`
	TelegramID   int64     `json:"telegramId"`
	Username     *string   `json:"username,omitempty"`
	CreationTime time.Time `json:"creationTime"`
}

// Board is a named collection of items owned by one user.
type Board struct {
	ID           int64     `json:"id"`
	OwnerID      int64     `json:"ownerId"`
	Name         string    `json:"name"`
	Icon         *string   `json:"icon,omitempty"`
	CreationTime time.Time `json:"creationTime"`
}

// Item is one saved unit of content. BoardID is nil for unsorted items.
// OwnerID is immutable after creation; BoardID may change via a move.
type Item struct {
	ID           int64     `json:"id"`
	OwnerID      int64     `json:"ownerId"`
	BoardID      *int64    `json:"boardId,omitempty"`
	Type         ItemType  `json:"itemType"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	CreationTime time.Time `json:"creationTime"`
}

// Download is a resolved delivery handle for an item's content.
// For text and location items URL carries the raw content verbatim.
type Download struct {
	URL     string `json:"url"`
	IsMedia bool   `json:"isMedia"`
}
