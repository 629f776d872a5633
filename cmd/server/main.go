package main // Entry point package

import (
	"context" // context for startup DB calls
	"log"     // Logging library

	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/event-checkin/internal/config"     // Internal config loader
	"github.com/iliyamo/event-checkin/internal/database"   // SQLite store
	"github.com/iliyamo/event-checkin/internal/guestlist"  // CSV seed import
	"github.com/iliyamo/event-checkin/internal/handler"    // HTTP handlers
	"github.com/iliyamo/event-checkin/internal/middleware" // Rate limiter
	"github.com/iliyamo/event-checkin/internal/queue"      // Check-in event consumer
	"github.com/iliyamo/event-checkin/internal/repository" // Data access
	"github.com/iliyamo/event-checkin/internal/router"     // Route registration
)

func main() {
	cfg := config.Load() // Load environment config
	ctx := context.Background()

	db, err := database.Open(cfg.DBPath) // Open the SQLite store
	if err != nil {
		log.Fatalf("open store %s: %v", cfg.DBPath, err)
	}
	defer db.Close()
	if err := database.Init(ctx, db); err != nil { // Create tables on first run
		log.Fatalf("init store: %v", err)
	}

	guests := repository.NewGuestRepo(db)
	checkins := repository.NewCheckinRepo(db)

	// Seed the directory from the guest list file, but only when the
	// directory is empty: the store is authoritative once it has data.
	if n, err := guests.Count(ctx); err != nil {
		log.Fatalf("count guests: %v", err)
	} else if n == 0 {
		imported, skipped, err := guestlist.Import(ctx, guests, cfg.GuestsCSV)
		if err != nil {
			log.Fatalf("seed guest list from %s: %v", cfg.GuestsCSV, err)
		}
		if imported > 0 || len(skipped) > 0 {
			log.Printf("seeded %d guests from %s (%d rows skipped)", imported, cfg.GuestsCSV, len(skipped))
		}
		for _, serr := range skipped {
			log.Printf("guestlist: %v", serr)
		}
	}

	// Rate limiter for the public endpoint; pass-through without Redis.
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), config.NewRedisClient())

	// Optional in-process consumer mirroring check-ins to logs/checkin.log.
	if cfg.BrokerURL != "" && cfg.QueueConsumer {
		go func() {
			if err := queue.StartCheckinConsumer(cfg.BrokerURL); err != nil {
				log.Printf("checkin-consumer stopped: %v", err)
			}
		}()
	}

	e := echo.New() // Create Echo instance
	e.HideBanner = true
	ch := handler.NewCheckinHandler(cfg, guests, checkins)
	ah := handler.NewAdminHandler(cfg, guests, checkins)
	router.Register(e, cfg, ch, ah, limiter) // Register application routes

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
