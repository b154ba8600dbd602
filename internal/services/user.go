package services

import (
	"context"
	"errors"

	"github.com/jansonXAXAXA/Saved-Messages-Pro/internal/model"
	"github.com/jansonXAXAXA/Saved-Messages-Pro/internal/store"
)

// ChatResolver turns a public Telegram username into a Telegram id.
type ChatResolver interface {
	ChatID(ctx context.Context, username string) (int64, error)
}

// UserService handles user-related operations.
type UserService struct {
	store store.Store
}

func NewUserService(s store.Store) *UserService { return &UserService{store: s} }

// CreateUser registers a user keyed by Telegram id.
// Returns model.ErrConflict when the id is already registered.
func (s *UserService) CreateUser(ctx context.Context, u *model.User) (*model.User, error) {
	return s.store.Users().Create(ctx, u)
}

func (s *UserService) GetUser(ctx context.Context, telegramID int64) (*model.User, error) {
	return s.store.Users().GetByTelegramID(ctx, telegramID)
}

// ensureUser resolves a user by Telegram id, creating the record on first
// contact. Shared by board creation, which the original flow allows to run
// before the user ever issued /start.
func ensureUser(ctx context.Context, st store.Store, telegramID int64) (*model.User, error) {
	u, err := st.Users().GetByTelegramID(ctx, telegramID)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		return nil, err
	}
	return st.Users().Create(ctx, &model.User{TelegramID: telegramID})
}
