package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jansonXAXAXA/Saved-Messages-Pro/internal/model"
)

func TestStatusCodesMapToSentinels(t *testing.T) {
	cases := []struct {
		status int
		want   error
	}{
		{http.StatusNotFound, model.ErrNotFound},
		{http.StatusUnprocessableEntity, model.ErrValidation},
		{http.StatusInternalServerError, model.ErrUnavailable},
		{http.StatusBadGateway, model.ErrUnavailable},
	}
	for _, tc := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(tc.status)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"error": http.StatusText(tc.status), "code": tc.status})
		}))
		c := New(srv.URL)
		_, err := c.GetItem(context.Background(), 1)
		srv.Close()
		if !errors.Is(err, tc.want) {
			t.Fatalf("status %d: err = %v, want %v", tc.status, err, tc.want)
		}
	}
}

func TestTransportFaultIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := New(srv.URL)
	_, err := c.ListBoards(context.Background(), 1)
	if !errors.Is(err, model.ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
}

func TestEachCallAttemptedExactlyOnce(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL)
	if _, err := c.GetBoard(context.Background(), 1); err == nil {
		t.Fatal("expected error")
	}
	if hits != 1 {
		t.Fatalf("server hit %d times, want 1", hits)
	}
}

func TestEnsureUserTreatsConflictAsSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"error": "Conflict", "code": 409})
	}))
	defer srv.Close()

	c := New(srv.URL)
	if err := c.EnsureUser(context.Background(), 42, "alice"); err != nil {
		t.Fatalf("conflict must be swallowed, got %v", err)
	}
}

func TestListBoardsDecodesPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/users/42/boards" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"boards": []map[string]interface{}{{"id": 3, "name": "Ideas"}},
			"count":  1,
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	boards, err := c.ListBoards(context.Background(), 42)
	if err != nil {
		t.Fatalf("ListBoards: %v", err)
	}
	if len(boards) != 1 || boards[0].ID != 3 || boards[0].Name != "Ideas" {
		t.Fatalf("boards = %+v", boards)
	}
}

func TestMoveItemSendsNullForUnsorted(t *testing.T) {
	var body map[string]json.RawMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/items/10/board" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"id": 10})
	}))
	defer srv.Close()

	c := New(srv.URL)
	if err := c.MoveItem(context.Background(), 10, nil); err != nil {
		t.Fatalf("MoveItem: %v", err)
	}
	if string(body["boardId"]) != "null" {
		t.Fatalf("boardId = %s, want null", body["boardId"])
	}
}

func TestSearchEncodesQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "молоко и хлеб" {
			t.Errorf("q = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"items": []interface{}{}, "count": 0})
	}))
	defer srv.Close()

	c := New(srv.URL)
	items, err := c.SearchItems(context.Background(), 42, "молоко и хлеб")
	if err != nil {
		t.Fatalf("SearchItems: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("items = %+v", items)
	}
}
