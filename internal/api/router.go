package api

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/jansonXAXAXA/Saved-Messages-Pro/internal/api/middleware"
	"github.com/jansonXAXAXA/Saved-Messages-Pro/internal/api/recovery"
	respond "github.com/jansonXAXAXA/Saved-Messages-Pro/internal/api/respond"
	"github.com/jansonXAXAXA/Saved-Messages-Pro/internal/services"
	"github.com/jansonXAXAXA/Saved-Messages-Pro/internal/store"
)

// healthPinger is implemented by store adapters that can report connectivity.
type healthPinger interface {
	HealthPing(ctx context.Context) error
}

// NewRouter wires services and handlers into the HTTP API. When resolver also
// implements services.ChatResolver (the Bot API client does), username
// resolution is enabled.
func NewRouter(st store.Store, resolver services.FileResolver, log zerolog.Logger) *mux.Router {
	router := mux.NewRouter()
	router.Use(recovery.Middleware(log))
	router.Use(middleware.RequestLog(log))

	userSvc := services.NewUserService(st)
	boardSvc := services.NewBoardService(st)
	itemSvc := services.NewItemService(st, resolver)

	chats, _ := resolver.(services.ChatResolver)
	userHandler := NewUserHandler(userSvc, chats)
	boardHandler := NewBoardHandler(boardSvc)
	itemHandler := NewItemHandler(itemSvc)

	// Health endpoint
	router.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		if hp, ok := st.(healthPinger); ok {
			if err := hp.HealthPing(r.Context()); err != nil {
				respond.WriteError(w, http.StatusServiceUnavailable, err.Error())
				return
			}
		}
		respond.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	// User endpoints
	router.HandleFunc("/api/users", userHandler.CreateUser).Methods("POST")
	router.HandleFunc("/api/users/{telegramId:[0-9]+}", userHandler.GetUser).Methods("GET")
	router.HandleFunc("/api/resolve-username/{username}", userHandler.ResolveUsername).Methods("GET")

	// Board endpoints
	router.HandleFunc("/api/users/{telegramId:[0-9]+}/boards", boardHandler.CreateBoard).Methods("POST")
	router.HandleFunc("/api/users/{telegramId:[0-9]+}/boards", boardHandler.ListBoards).Methods("GET")
	router.HandleFunc("/api/boards/{boardId:[0-9]+}", boardHandler.GetBoard).Methods("GET")
	router.HandleFunc("/api/boards/{boardId:[0-9]+}", boardHandler.DeleteBoard).Methods("DELETE")

	// Item endpoints
	router.HandleFunc("/api/users/{telegramId:[0-9]+}/items", itemHandler.CreateItem).Methods("POST")
	router.HandleFunc("/api/users/{telegramId:[0-9]+}/search", itemHandler.SearchItems).Methods("GET")
	router.HandleFunc("/api/boards/{boardId:[0-9]+}/items", itemHandler.ListBoardItems).Methods("GET")
	router.HandleFunc("/api/items/{itemId:[0-9]+}", itemHandler.GetItem).Methods("GET")
	router.HandleFunc("/api/items/{itemId:[0-9]+}", itemHandler.DeleteItem).Methods("DELETE")
	router.HandleFunc("/api/items/{itemId:[0-9]+}/board", itemHandler.MoveItem).Methods("PUT")
	router.HandleFunc("/api/items/{itemId:[0-9]+}/download", itemHandler.ResolveDownload).Methods("GET")

	return router
}
