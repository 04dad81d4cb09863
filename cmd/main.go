package main

import (
	"context"
	"log"

	"github.com/Tanimou/user-management-system-sub001/config"
	"github.com/Tanimou/user-management-system-sub001/db"
	"github.com/Tanimou/user-management-system-sub001/internal/auth/blacklist"
	"github.com/Tanimou/user-management-system-sub001/internal/auth/handler"
	repo "github.com/Tanimou/user-management-system-sub001/internal/auth/repository/postgres"
	"github.com/Tanimou/user-management-system-sub001/internal/auth/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	if err := db.RunMigrations(ctx, cfg.DBURL); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	dbPool, err := db.NewPostgresPool(ctx, cfg.DBURL)
	if err != nil {
		log.Fatalf("failed to set up database: %v", err)
	}
	defer dbPool.Close()

	userRepo := repo.NewPostgresRepository(dbPool)
	tokenService := service.NewTokenService(cfg.TokenSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	replayGuard := newReplayGuard(cfg)
	userService := service.NewUserService(userRepo, tokenService, replayGuard)
	authHandler := handler.NewAuthHandler(userService, tokenService, cfg)

	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())
	handler.RegisterRoutes(app, authHandler)

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

// newReplayGuard picks the blacklist backend: a shared Redis store when
// REDIS_ADDR is set (multi-instance deployments), otherwise the
// process-local map with a periodic sweep.
func newReplayGuard(cfg *config.Config) blacklist.Store {
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		return blacklist.NewRedisStore(client)
	}

	store := blacklist.NewMemoryStore()
	store.StartSweeping(cfg.BlacklistSweepInterval)

	return store
}
