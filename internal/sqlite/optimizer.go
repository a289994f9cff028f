package sqlite

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// optimizeInterval is how often PRAGMA optimize reruns on the write handle.
const optimizeInterval = time.Hour

// startDatabaseOptimizer keeps query planner statistics fresh for the
// long-lived connection. See https://www.sqlite.org/pragma.html#pragma_optimize.
func (db *Database) startDatabaseOptimizer(ctx context.Context) {
	// 0x10002 makes the first run analyze all tables that need it.
	if _, err := db.ReadWrite.ExecContext(ctx, "PRAGMA optimize = 0x10002;"); err != nil {
		err = fmt.Errorf("initial optimize: %w", err)
		db.logger.LogAttrs(ctx, slog.LevelError, "database optimize failed", slog.Any("error", err))
	}
	for {
		select {
		case <-ctx.Done():
			return
		case <-time.After(optimizeInterval):
		}

		start := time.Now()
		if _, err := db.ReadWrite.ExecContext(ctx, "PRAGMA optimize;"); err != nil {
			err = fmt.Errorf("periodic optimize: %w", err)
			db.logger.LogAttrs(ctx, slog.LevelError, "database optimize failed", slog.Any("error", err))
			continue
		}
		db.logger.LogAttrs(ctx, slog.LevelInfo, "database optimized",
			slog.Duration("duration", time.Since(start)))
	}
}
