package main // storefront API server entry point

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/floramart/storefront/internal/authz"
	"github.com/floramart/storefront/internal/config"
	"github.com/floramart/storefront/internal/database"
	"github.com/floramart/storefront/internal/handler"
	"github.com/floramart/storefront/internal/middleware"
	"github.com/floramart/storefront/internal/queue"
	"github.com/floramart/storefront/internal/repository"
	"github.com/floramart/storefront/internal/router"
)

func main() {
	// .env is a dev convenience; in prod the variables come from the
	// environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	categories := repository.NewCategoryRepo(db)
	products := repository.NewProductRepo(db)
	flowers := repository.NewFlowerRepo(db)
	orders := repository.NewOrderRepo(db)
	settings := repository.NewSettingRepo(db)

	// Promote the ADMIN_EMAILS allowlist exactly once, before serving.
	// Doing this here instead of lazily per-request keeps business code free
	// of global state and makes a failed promotion visible at startup.
	if len(cfg.AdminEmails) > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		n, err := users.PromoteAdminsByEmail(ctx, cfg.AdminEmails)
		cancel()
		if err != nil {
			log.Printf("admin sync: promotion failed: %v", err)
		} else {
			log.Printf("admin sync: %d profile(s) promoted from %d allowlisted email(s)", n, len(cfg.AdminEmails))
		}
	}

	gate := authz.NewGate(users)

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable: response cache and rate limiting disabled")
	}
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	authHandler := handler.NewAuthHandler(cfg, users, tokens)
	adminHandler := &handler.AdminHandler{
		Gate:       gate,
		Categories: categories,
		Products:   products,
		Flowers:    flowers,
		Orders:     orders,
		Settings:   settings,
	}
	publicHandler := handler.NewPublicHandler(categories, products, flowers, settings)
	customerHandler := handler.NewCustomerHandler(gate, orders, products, flowers, settings)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret, limiter)
	router.RegisterPublic(e, publicHandler, cache)
	router.RegisterAdmin(e, adminHandler, cfg.JWTSecret)
	router.RegisterCustomer(e, customerHandler, cfg.JWTSecret)

	// Fulfilment log consumer; runs its own reconnect loop for the broker.
	go func() {
		if err := queue.StartOrderConsumer(); err != nil {
			log.Printf("order consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
