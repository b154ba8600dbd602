package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	respond "github.com/jansonXAXAXA/Saved-Messages-Pro/internal/api/respond"
	"github.com/jansonXAXAXA/Saved-Messages-Pro/internal/model"
	"github.com/jansonXAXAXA/Saved-Messages-Pro/internal/services"
)

// UserHandler is a thin HTTP transport over UserService. chats is nil when
// the service runs without a bot token; username resolution is then
// unavailable.
type UserHandler struct {
	svc   *services.UserService
	chats services.ChatResolver
}

func NewUserHandler(svc *services.UserService, chats services.ChatResolver) *UserHandler {
	return &UserHandler{svc: svc, chats: chats}
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	return id, err == nil
}

// CreateUser POST /api/users
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TelegramID int64   `json:"telegramId"`
		Username   *string `json:"username,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if req.TelegramID == 0 {
		respond.WriteBadRequest(w, "telegramId is required")
		return
	}
	u := &model.User{TelegramID: req.TelegramID, Username: req.Username}
	out, err := h.svc.CreateUser(r.Context(), u)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, out)
}

// GetUser GET /api/users/{telegramId}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	tid, ok := pathID(r, "telegramId")
	if !ok {
		respond.WriteBadRequest(w, "invalid telegram id")
		return
	}
	u, err := h.svc.GetUser(r.Context(), tid)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, u)
}

// ResolveUsername GET /api/resolve-username/{username}
func (h *UserHandler) ResolveUsername(w http.ResponseWriter, r *http.Request) {
	if h.chats == nil {
		respond.WriteError(w, http.StatusServiceUnavailable, "bot token not configured")
		return
	}
	username := strings.TrimPrefix(mux.Vars(r)["username"], "@")
	if username == "" {
		respond.WriteBadRequest(w, "username is required")
		return
	}
	id, err := h.chats.ChatID(r.Context(), username)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]int64{"telegramId": id})
}
