package main // entry point of the property listing API

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/property-listing/internal/config"
	"github.com/iliyamo/property-listing/internal/database"
	"github.com/iliyamo/property-listing/internal/handler"
	"github.com/iliyamo/property-listing/internal/middleware"
	"github.com/iliyamo/property-listing/internal/queue"
	"github.com/iliyamo/property-listing/internal/repository"
	"github.com/iliyamo/property-listing/internal/router"
	"github.com/iliyamo/property-listing/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	// Redis is optional: a nil client disables the response cache.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; response cache disabled")
	}
	cacheCfg := config.LoadCacheConfig()

	propertyRepo := repository.NewPropertyRepo(db)
	ownerRepo := repository.NewOwnerRepo(db)
	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)

	propertySvc := service.NewPropertyService(propertyRepo, ownerRepo, queue.PublishTraceRecorded)

	authHandler := handler.NewAuthHandler(cfg, userRepo, tokenRepo)
	propertyHandler := handler.NewPropertyHandler(propertySvc)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterProperty(e, propertyHandler, cfg.JWTSecret, middleware.NewRedisCache(cacheCfg, rdb))

	// Audit consumer; reconnects on its own and never stops the server.
	go func() {
		if err := queue.StartTraceConsumer(); err != nil {
			log.Printf("trace consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
