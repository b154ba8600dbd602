package factory

import (
	"fmt"

	"github.com/jansonXAXAXA/Saved-Messages-Pro/internal/config"
	"github.com/jansonXAXAXA/Saved-Messages-Pro/internal/store"
	"github.com/jansonXAXAXA/Saved-Messages-Pro/internal/store/postgres"
	"github.com/jansonXAXAXA/Saved-Messages-Pro/internal/store/sqlite"
)

// NewStore builds the storage adapter selected by configuration.
func NewStore(cfg *config.Config) (store.Store, error) {
	switch cfg.DBDriver {
	case "sqlite":
		return sqlite.New(cfg.SQLitePath)
	case "postgres":
		db, err := postgres.Open(cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		return postgres.NewWithDB(db), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER: %s", cfg.DBDriver)
	}
}
