package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/tourwire/flight-desk/internal/config"
	"github.com/tourwire/flight-desk/internal/database"
	"github.com/tourwire/flight-desk/internal/handler"
	"github.com/tourwire/flight-desk/internal/middleware"
	"github.com/tourwire/flight-desk/internal/queue"
	"github.com/tourwire/flight-desk/internal/repository"
	"github.com/tourwire/flight-desk/internal/router"
	queuepublisher "github.com/tourwire/flight-desk/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; deployments use the real environment

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Repositories.
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	projects := repository.NewProjectRepo(db)
	legs := repository.NewLegRepo(db)
	groups := repository.NewSelectionGroupRepo(db)
	options := repository.NewOptionRepo(db)
	selections := repository.NewSelectionRepo(db)
	holds := repository.NewHoldRepo(db)
	ticketing := repository.NewTicketingRepo(db)
	passengers := repository.NewPassengerRepo(db)

	// Redis is optional: a nil client turns the response cache, the
	// rate limiter and cache invalidation into no-ops.
	rdb := config.NewRedisClient()
	cacheCfg := config.LoadCacheConfig()
	rlCfg := config.LoadRateLimitConfig()

	bustQueueCache := func(ctx context.Context) {
		if err := middleware.InvalidateCachePrefix(ctx, rdb, cacheCfg.Prefix); err != nil {
			log.Printf("cache: invalidation failed (ignored): %v", err)
		}
	}

	agent := handler.NewAgentHandler(projects, legs, groups, options, selections, holds, ticketing, passengers)
	agent.Notify = queuepublisher.PublishNotification
	agent.BustQueueCache = bustQueueCache

	client := handler.NewClientHandler(legs, options, selections, passengers, ticketing)
	client.BustQueueCache = func(c echo.Context) { bustQueueCache(c.Request().Context()) }

	auth := handler.NewAuthHandler(cfg, users, tokens)

	e := echo.New()
	e.HideBanner = true

	router.RegisterRoutes(e)
	router.RegisterAuth(e, auth, cfg.JWTSecret)
	extra := []echo.MiddlewareFunc{
		middleware.NewTokenBucket(rlCfg, rdb),
		middleware.NewRedisCache(cacheCfg, rdb),
	}
	router.RegisterAgent(e, agent, cfg.JWTSecret, extra...)
	router.RegisterClient(e, client, cfg.JWTSecret, extra...)

	// Notification consumer runs for the life of the process and
	// reconnects on broker failures.
	go func() {
		if err := queue.StartNotificationConsumer(); err != nil {
			log.Printf("queue: consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
