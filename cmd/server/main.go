package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/tierlist-vote/internal/auth"
	"github.com/iliyamo/tierlist-vote/internal/config"
	"github.com/iliyamo/tierlist-vote/internal/database"
	"github.com/iliyamo/tierlist-vote/internal/handler"
	"github.com/iliyamo/tierlist-vote/internal/media"
	"github.com/iliyamo/tierlist-vote/internal/queue"
	"github.com/iliyamo/tierlist-vote/internal/repository"
	"github.com/iliyamo/tierlist-vote/internal/router"
)

func main() {
	_ = godotenv.Load() // a .env file is optional; real env vars win
	cfg := config.Load()

	db, err := database.OpenWithRetry(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName, 10)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.EnsureSchema(ctx, db); err != nil {
		cancel()
		log.Fatalf("schema setup failed: %v", err)
	}
	cancel()

	store, err := media.NewDiskStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("media store setup failed: %v", err)
	}

	rdb := config.NewRedisClient() // nil disables caching and rate limiting
	if rdb == nil {
		log.Printf("redis unavailable; response cache and rate limiting disabled")
	}

	// Background consumer logging vote events; reconnects on its own.
	go func() {
		if err := queue.StartVoteConsumer(); err != nil {
			log.Printf("vote consumer stopped: %v", err)
		}
	}()

	oidc := auth.NewOIDCClient(cfg.OIDCBaseURL, cfg.OIDCClientID, cfg.OIDCClientSecret, cfg.OIDCRedirectURL)
	authHandler := handler.NewAuthHandler(cfg, oidc)
	apiHandler := handler.NewTierlistHandler(
		repository.NewTierlistRepo(db),
		repository.NewTierRepo(db),
		repository.NewItemRepo(db),
		repository.NewVoteRepo(db),
		store,
	)

	e := echo.New()
	if len(cfg.CORSOrigins) > 0 {
		e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
			AllowOrigins:     cfg.CORSOrigins,
			AllowCredentials: true,
		}))
	}
	router.RegisterRoutes(e, cfg, authHandler, apiHandler, rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
