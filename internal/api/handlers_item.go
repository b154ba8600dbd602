package api

import (
	"encoding/json"
	"net/http"

	respond "github.com/jansonXAXAXA/Saved-Messages-Pro/internal/api/respond"
	"github.com/jansonXAXAXA/Saved-Messages-Pro/internal/model"
	"github.com/jansonXAXAXA/Saved-Messages-Pro/internal/services"
)

// ItemHandler is a thin HTTP transport over ItemService.
type ItemHandler struct {
	svc *services.ItemService
}

func NewItemHandler(svc *services.ItemService) *ItemHandler { return &ItemHandler{svc: svc} }

// CreateItem POST /api/users/{telegramId}/items
func (h *ItemHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	tid, ok := pathID(r, "telegramId")
	if !ok {
		respond.WriteBadRequest(w, "invalid telegram id")
		return
	}
	var req struct {
		ItemType string `json:"itemType"`
		Title    string `json:"title"`
		Content  string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	out, err := h.svc.CreateItem(r.Context(), tid, model.ItemType(req.ItemType), req.Title, req.Content)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, out)
}

// GetItem GET /api/items/{itemId}
func (h *ItemHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "itemId")
	if !ok {
		respond.WriteBadRequest(w, "invalid item id")
		return
	}
	it, err := h.svc.GetItem(r.Context(), id)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, it)
}

// ListBoardItems GET /api/boards/{boardId}/items
func (h *ItemHandler) ListBoardItems(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "boardId")
	if !ok {
		respond.WriteBadRequest(w, "invalid board id")
		return
	}
	items, err := h.svc.ListBoardItems(r.Context(), id)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"items": items, "count": len(items)})
}

// MoveItem PUT /api/items/{itemId}/board
func (h *ItemHandler) MoveItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "itemId")
	if !ok {
		respond.WriteBadRequest(w, "invalid item id")
		return
	}
	var req struct {
		BoardID *int64 `json:"boardId"` // null moves the item to unsorted
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	it, err := h.svc.MoveItem(r.Context(), id, req.BoardID)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, it)
}

// SearchItems GET /api/users/{telegramId}/search?q=
func (h *ItemHandler) SearchItems(w http.ResponseWriter, r *http.Request) {
	tid, ok := pathID(r, "telegramId")
	if !ok {
		respond.WriteBadRequest(w, "invalid telegram id")
		return
	}
	items, err := h.svc.SearchItems(r.Context(), tid, r.URL.Query().Get("q"))
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"items": items, "count": len(items)})
}

// DeleteItem DELETE /api/items/{itemId}
func (h *ItemHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "itemId")
	if !ok {
		respond.WriteBadRequest(w, "invalid item id")
		return
	}
	if err := h.svc.DeleteItem(r.Context(), id); err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ResolveDownload GET /api/items/{itemId}/download
func (h *ItemHandler) ResolveDownload(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "itemId")
	if !ok {
		respond.WriteBadRequest(w, "invalid item id")
		return
	}
	dl, err := h.svc.ResolveDownload(r.Context(), id)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, dl)
}
