package database

import (
	"context"
	"fmt"

	"github.com/saltyorg/fitcenter/internal/config"
)

// Optimize runs SQLite's PRAGMA optimize to refresh planner stats.
func (db *DB) Optimize(ctx context.Context) error {
	if db == nil || db.pool == nil {
		return fmt.Errorf("database not initialized")
	}
	if db.driver != config.DriverSQLite {
		return fmt.Errorf("optimize is only supported for %s, not %s", config.DriverSQLite, db.driver)
	}

	if _, err := db.Exec(ctx, "PRAGMA optimize"); err != nil {
		return fmt.Errorf("failed to optimize database: %w", err)
	}

	return nil
}
