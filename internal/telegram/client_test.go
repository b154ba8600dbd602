package telegram

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jansonXAXAXA/Saved-Messages-Pro/internal/model"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClientWithBase(srv.URL, "TOKEN"), srv
}

func TestCallRoutesToTokenPath(t *testing.T) {
	var gotPath string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"result":true}`))
	})

	if err := c.SendMessage(context.Background(), 1, "hi", nil); err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if gotPath != "/botTOKEN/sendMessage" {
		t.Fatalf("path = %q", gotPath)
	}
}

func TestCallSurfacesAPIError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"ok":false,"description":"Bad Request: chat not found"}`))
	})

	err := c.SendMessage(context.Background(), 1, "hi", nil)
	if err == nil || !strings.Contains(err.Error(), "chat not found") {
		t.Fatalf("err = %v", err)
	}
}

func TestServerFaultIsUnavailable(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	err := c.SendMessage(context.Background(), 1, "hi", nil)
	if !errors.Is(err, model.ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
}

func TestGetUpdatesDecodesResult(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var params map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&params)
		if params["offset"].(float64) != 5 {
			t.Errorf("offset = %v", params["offset"])
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"result":[{"update_id":6,"message":{"message_id":1,"chat":{"id":9},"text":"hi"}}]}`))
	})

	updates, err := c.GetUpdates(context.Background(), 5, 0)
	if err != nil {
		t.Fatalf("GetUpdates: %v", err)
	}
	if len(updates) != 1 || updates[0].UpdateID != 6 || updates[0].Message.Text != "hi" {
		t.Fatalf("updates = %+v", updates)
	}
}

func TestFileURLJoinsDownloadPath(t *testing.T) {
	c, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"result":{"file_id":"abc","file_path":"photos/file_1.jpg"}}`))
	})

	url, err := c.FileURL(context.Background(), "abc")
	if err != nil {
		t.Fatalf("FileURL: %v", err)
	}
	want := srv.URL + "/file/botTOKEN/photos/file_1.jpg"
	if url != want {
		t.Fatalf("url = %q, want %q", url, want)
	}
}

func TestChatIDResolvesUsername(t *testing.T) {
	var gotBody map[string]interface{}
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"result":{"id":99}}`))
	})

	id, err := c.ChatID(context.Background(), "alice")
	if err != nil {
		t.Fatalf("ChatID: %v", err)
	}
	if id != 99 {
		t.Fatalf("id = %d, want 99", id)
	}
	if gotBody["chat_id"] != "@alice" {
		t.Fatalf("chat_id = %v, want @alice", gotBody["chat_id"])
	}
}

func TestChatIDUnknownUsernameIsNotFound(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"ok":false,"description":"Bad Request: chat not found"}`))
	})

	_, err := c.ChatID(context.Background(), "ghost")
	if !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestSendMediaRejectsNonMediaType(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})
	if err := c.SendMedia(context.Background(), 1, model.ItemText, "x"); err == nil {
		t.Fatal("expected error for non-media type")
	}
}

func TestSendMediaMethodPerType(t *testing.T) {
	var paths []string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"result":{}}`))
	})

	for _, typ := range []model.ItemType{model.ItemPhoto, model.ItemVideo, model.ItemVoice, model.ItemDocument, model.ItemVideoNote} {
		if err := c.SendMedia(context.Background(), 1, typ, "ref"); err != nil {
			t.Fatalf("SendMedia(%s): %v", typ, err)
		}
	}
	want := []string{"/botTOKEN/sendPhoto", "/botTOKEN/sendVideo", "/botTOKEN/sendVoice", "/botTOKEN/sendDocument", "/botTOKEN/sendVideoNote"}
	for i := range want {
		if paths[i] != want[i] {
			t.Fatalf("paths = %v", paths)
		}
	}
}
