package bot

import (
	"sync"

	"github.com/jansonXAXAXA/Saved-Messages-Pro/internal/model"
)

// Flow tags the multi-step dialogue a user is currently in.
type Flow int

const (
	FlowIdle Flow = iota
	FlowBoardName
	FlowBoardIcon
	FlowSearchQuery
	FlowItemTitle
)

// ItemDraft is the partially built item accumulated while a save dialogue
// is in progress. Title holds the auto-derived title until the user either
// confirms it with "." or overrides it.
type ItemDraft struct {
	Type    model.ItemType
	Title   string
	Content string
}

// DialogueState is the transient per-user record of an in-progress flow.
// Exactly one is active per user; starting a new flow discards the old one.
type DialogueState struct {
	Flow      Flow
	BoardName string     // set while a board-creation flow awaits its icon
	Draft     *ItemDraft // set while an item-save flow awaits its title
}

// StateStore holds dialogue state in memory, keyed by platform user id.
// State is created lazily on first access and never persisted; an
// in-progress dialogue is abandoned on restart.
//
// The mutex only guards the map itself. Read-decide-write sequences on one
// user's state must be serialized externally (the dispatcher runs all events
// for a user on one shard).
type StateStore struct {
	mu     sync.Mutex
	states map[int64]DialogueState
}

func NewStateStore() *StateStore {
	return &StateStore{states: make(map[int64]DialogueState)}
}

// Get returns the user's current state, defaulting to idle.
func (s *StateStore) Get(userID int64) DialogueState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.states[userID]
}

// Set replaces the user's state wholesale.
func (s *StateStore) Set(userID int64, st DialogueState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[userID] = st
}

// Reset returns the user to idle and discards any scratch payload.
func (s *StateStore) Reset(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, userID)
}
