package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/ldiadam/kitabooking/internal/config"
	"github.com/ldiadam/kitabooking/internal/database"
	"github.com/ldiadam/kitabooking/internal/handler"
	"github.com/ldiadam/kitabooking/internal/middleware"
	"github.com/ldiadam/kitabooking/internal/queue"
	"github.com/ldiadam/kitabooking/internal/repository"
	"github.com/ldiadam/kitabooking/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err == nil {
		log.Println("loaded configuration from .env")
	}
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	migCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.Migrate(migCtx, db); err != nil {
		cancel()
		log.Fatalf("migrate database: %v", err)
	}
	cancel()

	// Redis is optional: with no client both the response cache and the
	// rate limiter become pass-throughs.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; cache and rate limiting disabled")
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	venues := repository.NewVenueRepo(db)
	slots := repository.NewTimeSlotRepo(db)
	reservations := repository.NewReservationRepo(db, slots)

	e := echo.New()
	e.HideBanner = true
	// The limiter runs before any JWT middleware, so its key strategy
	// must not depend on the authenticated user (see LoadRateLimitConfig).
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	authH := handler.NewAuthHandler(cfg, users, tokens)
	publicH := handler.NewPublicHandler(venues, slots, reservations)
	resH := handler.NewReservationHandler(reservations, venues)
	adminH := handler.NewAdminHandler(venues, slots, users)
	adminResH := handler.NewAdminReservationHandler(reservations)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterPublic(e, publicH, config.LoadCacheConfig(), rdb)
	router.RegisterCustomer(e, resH, cfg.JWTSecret)
	router.RegisterAdmin(e, adminH, adminResH, cfg.JWTSecret)

	// The consumer keeps its own reconnect loop; it never brings the
	// server down with it.
	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("reservation consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
