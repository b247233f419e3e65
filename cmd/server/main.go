package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/item-sharing-service/internal/config"
	"github.com/iliyamo/item-sharing-service/internal/database"
	"github.com/iliyamo/item-sharing-service/internal/handler"
	"github.com/iliyamo/item-sharing-service/internal/middleware"
	"github.com/iliyamo/item-sharing-service/internal/queue"
	"github.com/iliyamo/item-sharing-service/internal/repository"
	"github.com/iliyamo/item-sharing-service/internal/router"
	"github.com/iliyamo/item-sharing-service/internal/service"
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

	rdb := config.NewRedisClient()

	// Repositories.
	users := repository.NewUserRepo(db)
	items := repository.NewItemRepo(db)
	bookings := repository.NewBookingRepo(db)
	comments := repository.NewCommentRepo(db)
	requests := repository.NewRequestRepo(db)
	tokens := repository.NewTokenRepo(db)

	// Booking events flow through RabbitMQ; the consumer appends them
	// to logs/booking.log.
	publisher := queue.NewPublisher(cfg.AMQPURL)
	go func() {
		if err := queue.StartBookingConsumer(publisher.URL); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	// Services.
	bookingSvc := service.NewBookingService(bookings, items, users, publisher)
	itemSvc := service.NewItemService(items, users, bookings, comments, requests)
	userSvc := service.NewUserService(users)
	requestSvc := service.NewRequestService(requests, items, users)

	e := echo.New()
	e.HideBanner = true

	rateCfg := config.LoadRateLimitConfig()
	e.Use(middleware.NewTokenBucket(rateCfg, rdb))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, tokens), cfg.JWTSecret)
	router.RegisterSharing(e, router.SharingHandlers{
		Bookings: handler.NewBookingHandler(bookingSvc),
		Items:    handler.NewItemHandler(itemSvc),
		Users:    handler.NewUserHandler(userSvc, cfg.BcryptCost),
		Requests: handler.NewRequestHandler(requestSvc),
	}, cfg.JWTSecret, config.LoadCacheConfig(), rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
