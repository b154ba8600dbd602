package api

import (
	"encoding/json"
	"net/http"

	respond "github.com/jansonXAXAXA/Saved-Messages-Pro/internal/api/respond"
	"github.com/jansonXAXAXA/Saved-Messages-Pro/internal/services"
)

// BoardHandler is a thin HTTP transport over BoardService.
type BoardHandler struct {
	svc *services.BoardService
}

func NewBoardHandler(svc *services.BoardService) *BoardHandler { return &BoardHandler{svc: svc} }

// CreateBoard POST /api/users/{telegramId}/boards
func (h *BoardHandler) CreateBoard(w http.ResponseWriter, r *http.Request) {
	tid, ok := pathID(r, "telegramId")
	if !ok {
		respond.WriteBadRequest(w, "invalid telegram id")
		return
	}
	var req struct {
		Name string  `json:"name"`
		Icon *string `json:"icon,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	out, err := h.svc.CreateBoard(r.Context(), tid, req.Name, req.Icon)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, out)
}

// ListBoards GET /api/users/{telegramId}/boards
func (h *BoardHandler) ListBoards(w http.ResponseWriter, r *http.Request) {
	tid, ok := pathID(r, "telegramId")
	if !ok {
		respond.WriteBadRequest(w, "invalid telegram id")
		return
	}
	boards, err := h.svc.ListBoards(r.Context(), tid)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"boards": boards, "count": len(boards)})
}

// GetBoard GET /api/boards/{boardId}
func (h *BoardHandler) GetBoard(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "boardId")
	if !ok {
		respond.WriteBadRequest(w, "invalid board id")
		return
	}
	b, err := h.svc.GetBoard(r.Context(), id)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, b)
}

// DeleteBoard DELETE /api/boards/{boardId}
func (h *BoardHandler) DeleteBoard(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "boardId")
	if !ok {
		respond.WriteBadRequest(w, "invalid board id")
		return
	}
	if err := h.svc.DeleteBoard(r.Context(), id); err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
