package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/havenlist/estate-api/internal/auth"
	"github.com/havenlist/estate-api/internal/config"
	"github.com/havenlist/estate-api/internal/database"
	"github.com/havenlist/estate-api/internal/handler"
	"github.com/havenlist/estate-api/internal/queue"
	"github.com/havenlist/estate-api/internal/repository"
	"github.com/havenlist/estate-api/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	codec := auth.NewCodec(cfg.UserTokenSecret, cfg.AdminTokenSecret)

	users := repository.NewUserRepo(db)
	admins := repository.NewAdminRepo(db)
	properties := repository.NewPropertyRepo(db)
	likes := repository.NewLikeRepo(db)
	documents := repository.NewDocumentRepo(db)

	h := router.Handlers{
		Auth:          handler.NewAuthHandler(cfg, codec, users),
		AdminAuth:     handler.NewAdminAuthHandler(cfg, codec, admins),
		Property:      handler.NewPropertyHandler(properties, likes),
		OwnerProperty: handler.NewOwnerPropertyHandler(properties, documents),
		Like:          handler.NewLikeHandler(properties, likes),
		AdminProperty: handler.NewAdminPropertyHandler(properties, likes),
	}

	// Redis may be nil; cache and rate limiting degrade to no-ops.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; cache and rate limiting disabled")
	}

	// Background consumer for the engagement event stream.
	go func() {
		if err := queue.StartEngagementConsumer(); err != nil {
			log.Printf("engagement consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	router.Register(e, h, codec, rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
