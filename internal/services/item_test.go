package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/jansonXAXAXA/Saved-Messages-Pro/internal/model"
	"github.com/jansonXAXAXA/Saved-Messages-Pro/internal/store"
	"github.com/jansonXAXAXA/Saved-Messages-Pro/internal/store/sqlite"
)

type fixedResolver struct{ url string }

func (f fixedResolver) FileURL(context.Context, string) (string, error) { return f.url, nil }

func newStore(t *testing.T) store.Store {
	t.Helper()
	st, err := sqlite.New(filepath.Join(t.TempDir(), "svc.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return st
}

func TestCreateItemRejectsUnknownType(t *testing.T) {
	st := newStore(t)
	svc := NewItemService(st, nil)
	ctx := context.Background()

	if _, err := st.Users().Create(ctx, &model.User{TelegramID: 42}); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	_, err := svc.CreateItem(ctx, 42, "hologram", "x", "y")
	if !errors.Is(err, model.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestCreateItemForUnknownUser(t *testing.T) {
	svc := NewItemService(newStore(t), nil)
	_, err := svc.CreateItem(context.Background(), 999, model.ItemText, "x", "y")
	if !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestMoveItemRejectsForeignBoard(t *testing.T) {
	st := newStore(t)
	svc := NewItemService(st, nil)
	ctx := context.Background()

	alice, _ := st.Users().Create(ctx, &model.User{TelegramID: 1})
	bob, _ := st.Users().Create(ctx, &model.User{TelegramID: 2})
	bobBoard, _ := st.Boards().Create(ctx, &model.Board{OwnerID: bob.ID, Name: "Bob's"})
	it, _ := st.Items().Create(ctx, &model.Item{OwnerID: alice.ID, Type: model.ItemText, Title: "note", Content: "note"})

	_, err := svc.MoveItem(ctx, it.ID, &bobBoard.ID)
	if !errors.Is(err, model.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}

	// Item must be untouched.
	got, _ := st.Items().GetByID(ctx, it.ID)
	if got.BoardID != nil {
		t.Fatalf("board ref = %v, want nil", *got.BoardID)
	}
}

func TestSearchValidatesBeforeStore(t *testing.T) {
	svc := NewItemService(newStore(t), nil)

	// A short query never consults the store, so even a missing user is not
	// reported.
	_, err := svc.SearchItems(context.Background(), 999, " a ")
	if !errors.Is(err, model.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestResolveDownloadInlineVersusMedia(t *testing.T) {
	st := newStore(t)
	svc := NewItemService(st, fixedResolver{url: "https://files.example/xyz"})
	ctx := context.Background()

	u, _ := st.Users().Create(ctx, &model.User{TelegramID: 42})
	text, _ := st.Items().Create(ctx, &model.Item{OwnerID: u.ID, Type: model.ItemText, Title: "t", Content: "raw"})
	photo, _ := st.Items().Create(ctx, &model.Item{OwnerID: u.ID, Type: model.ItemPhoto, Title: "p", Content: "file-1"})

	dl, err := svc.ResolveDownload(ctx, text.ID)
	if err != nil {
		t.Fatalf("text: %v", err)
	}
	if dl.IsMedia || dl.URL != "raw" {
		t.Fatalf("text download = %+v", dl)
	}

	dl, err = svc.ResolveDownload(ctx, photo.ID)
	if err != nil {
		t.Fatalf("photo: %v", err)
	}
	if !dl.IsMedia || dl.URL != "https://files.example/xyz" {
		t.Fatalf("photo download = %+v", dl)
	}
}

func TestResolveDownloadWithoutResolver(t *testing.T) {
	st := newStore(t)
	svc := NewItemService(st, nil)
	ctx := context.Background()

	u, _ := st.Users().Create(ctx, &model.User{TelegramID: 42})
	photo, _ := st.Items().Create(ctx, &model.Item{OwnerID: u.ID, Type: model.ItemPhoto, Title: "p", Content: "file-1"})

	_, err := svc.ResolveDownload(ctx, photo.ID)
	if !errors.Is(err, model.ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
}

func TestBoardServiceAcceptsEmptyName(t *testing.T) {
	st := newStore(t)
	svc := NewBoardService(st)
	ctx := context.Background()

	b, err := svc.CreateBoard(ctx, 42, "", nil)
	if err != nil {
		t.Fatalf("create board: %v", err)
	}
	if b.Name != "" {
		t.Fatalf("name = %q, want empty", b.Name)
	}
}

func TestBoardServiceCreatesUserOnDemand(t *testing.T) {
	st := newStore(t)
	svc := NewBoardService(st)
	ctx := context.Background()

	if _, err := svc.CreateBoard(ctx, 42, "Ideas", nil); err != nil {
		t.Fatalf("create board: %v", err)
	}
	if _, err := st.Users().GetByTelegramID(ctx, 42); err != nil {
		t.Fatalf("user should exist after first board: %v", err)
	}
}
