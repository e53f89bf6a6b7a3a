package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"

	"pixelperfect/internal/api"
	"pixelperfect/internal/config"
	"pixelperfect/internal/database"
	"pixelperfect/internal/session"
	"pixelperfect/internal/store"
)

func main() {
	cfg := config.MustLoad()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	log.Printf("api bootstrapped with db host=%s port=%d db=%s sslmode=%s",
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.Name,
		cfg.Database.SSLMode,
	)

	db, err := database.InitDatabase(cfg.Database)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}
	log.Printf("database connection ready")

	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	if err := database.Seed(db, cfg.Seed); err != nil {
		log.Fatalf("seed: %v", err)
	}
	log.Printf("database migrated and seeded")

	var redisClient redis.UniversalClient
	var sessions session.Store
	if cfg.Redis.Enabled() {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr()})
		sessions = session.NewRedisStore(redisClient, cfg.Session.TTL())
		log.Printf("session store backed by redis at %s", cfg.Redis.Addr())
	} else {
		sessions = session.NewMemoryStore(cfg.Session.TTL())
		log.Printf("session store in memory; sessions will not survive a restart")
	}

	st := store.New(db)

	address := fmt.Sprintf(":%d", cfg.API.Port)
	log.Printf("api listening on %s", address)

	router := api.NewRouter(logger)
	api.RegisterRoutes(router, st, sessions, redisClient, logger, cfg)

	if err := router.Run(address); err != nil {
		log.Fatalf("failed to start api server: %v", err)
	}
}
