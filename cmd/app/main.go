package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gmelashvili/paraglide/config"
	"github.com/gmelashvili/paraglide/internal/bootstrap"
	"github.com/gmelashvili/paraglide/internal/cache"
	"github.com/gmelashvili/paraglide/internal/kafka"
	"github.com/gmelashvili/paraglide/internal/repository"
	"github.com/gmelashvili/paraglide/internal/service/booking"
	"github.com/gmelashvili/paraglide/internal/service/locations"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.LocationsCacheTTL)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	locationRepo := repository.NewLocationRepository(pool)
	pilotRepo := repository.NewPilotRepository(pool)
	companyRepo := repository.NewCompanyRepository(pool)
	promoRepo := repository.NewPromoRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)

	locationService := locations.NewLocationService(locationRepo, redisCache)
	bookingService := booking.NewBookingService(
		bookingRepo,
		locationRepo,
		pilotRepo,
		companyRepo,
		promoRepo,
		redisCache,
		producer,
		cfg.Kafka.BookingTopic,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)

	if err := bootstrap.Run(ctx, cfg, locationService, bookingService); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
