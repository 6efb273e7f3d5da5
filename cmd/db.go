package cmd

import (
	"fmt"

	"github.com/killallgit/seispick/internal/database"
	"github.com/killallgit/seispick/pkg/config"
)

// openDatabase opens the pick database and brings its schema up to date
func openDatabase(cfg *config.Config) (*database.DB, error) {
	db, err := database.InitializeWithTimeout(cfg.Database.Path, cfg.Database.Verbose, cfg.Database.BusyTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}
