package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/airline/config"
	"github.com/Domenick1991/airline/internal/cache"
	"github.com/Domenick1991/airline/internal/kafka"
	"github.com/Domenick1991/airline/internal/logger"
	"github.com/Domenick1991/airline/internal/notify"
	"github.com/Domenick1991/airline/internal/repository"
	"github.com/Domenick1991/airline/internal/service/flights"
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
	if err := logger.Init(cfg.Log); err != nil {
		log.Fatalf("init logger: %v", err)
	}
	logWorker := logger.WithComponent("worker")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, cfg.Cache.FlightsTTL())
	defer redisCache.Close()

	flightRepo := repository.NewFlightRepository(pool)
	flightService := flights.NewFlightService(
		repository.NewTxManager(pool, cfg.Database.LockTimeout()),
		flightRepo,
		repository.NewPlaneRepository(pool),
		repository.NewTicketRepository(pool),
		nil,
		logger.WithComponent("flights"),
	)

	processor := notify.NewProcessor(redisCache, redisCache, notify.NewNotifier(logger.WithComponent("notify")), logWorker)

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.TicketEventsTopic, logger.WithComponent("kafka"))
	defer consumer.Close()

	go func() {
		if err := consumer.Consume(ctx, kafka.TicketEventHandler(logWorker, processor.Handle)); err != nil {
			logWorker.Error("consumer stopped", "error", err)
			stop()
		}
	}()

	auditTicker := time.NewTicker(time.Duration(cfg.Worker.AuditSweepMinutes) * time.Minute)
	defer auditTicker.Stop()

	logWorker.Info("worker started", "topic", cfg.Kafka.TicketEventsTopic, "group_id", cfg.Kafka.GroupID)
	for {
		select {
		case <-auditTicker.C:
			violations, err := flightService.AuditSeats(ctx)
			if err != nil {
				logWorker.Error("seat audit failed", "error", err)
				continue
			}
			for _, v := range violations {
				logWorker.Error("free seats out of range",
					"flight_number", v.FlightNumber,
					"free_seats", v.FreeSeats,
					"seats_count", v.SeatsCount)
			}
			logWorker.Debug("seat audit finished", "violations", len(violations))
		case <-ctx.Done():
			logWorker.Info("shutting down")
			return
		}
	}
}
