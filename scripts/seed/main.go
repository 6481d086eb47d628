// Script to seed a local database with sample users and day entries.
// Usage: go run scripts/seed/main.go
package main

import (
	"context"
	"fmt"

	"github.com/blaisecz/flare-tracker/internal/config"
	"github.com/blaisecz/flare-tracker/internal/logger"
	"github.com/blaisecz/flare-tracker/internal/seed"
)

func main() {
	cfg := config.Load()
	log := logger.Get(cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	ctx := context.Background()

	db, err := config.NewDatabase(ctx, cfg, log)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}

	if err := seed.Run(ctx, db, log); err != nil {
		log.Fatalw("seed failed", "error", err)
	}

	fmt.Println("\nSample user IDs for testing:")
	for _, user := range seed.Users {
		fmt.Printf("  %s (%s) modules=%+v\n", user.ID, user.Timezone, user.Modules)
	}
}
