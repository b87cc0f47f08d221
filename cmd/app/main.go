package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/airline/api"
	"github.com/Domenick1991/airline/config"
	inventoryapi "github.com/Domenick1991/airline/internal/api/inventory_service_api"
	"github.com/Domenick1991/airline/internal/bootstrap"
	"github.com/Domenick1991/airline/internal/cache"
	"github.com/Domenick1991/airline/internal/kafka"
	"github.com/Domenick1991/airline/internal/logger"
	"github.com/Domenick1991/airline/internal/middleware"
	"github.com/Domenick1991/airline/internal/migrations"
	"github.com/Domenick1991/airline/internal/repository"
	"github.com/Domenick1991/airline/internal/service/booking"
	"github.com/Domenick1991/airline/internal/service/flights"
	"github.com/Domenick1991/airline/internal/service/inventory"
	"github.com/Domenick1991/airline/internal/service/planes"
	"github.com/Domenick1991/airline/internal/service/reports"
	"github.com/jackc/pgx/v5/pgxpool"
	"google.golang.org/grpc"
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logger.Get().Error("app stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	log := logger.WithComponent("app")

	pool, err := newPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	if cfg.Database.AutoMigrate {
		migrator, err := migrations.FromPool(pool, logger.WithComponent("migrations"))
		if err != nil {
			return err
		}
		if err := migrator.Up(ctx); err != nil {
			return err
		}
	}

	redisCache := cache.NewRedisCache(cfg.Redis, cfg.Cache.FlightsTTL())
	defer redisCache.Close()

	producer := kafka.NewProducer(cfg.Kafka.Brokers, logger.WithComponent("kafka"))
	defer producer.Close()

	txManager := repository.NewTxManager(pool, cfg.Database.LockTimeout())
	flightRepo := repository.NewFlightRepository(pool)
	planeRepo := repository.NewPlaneRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)

	seatManager := inventory.NewManager(txManager, flightRepo, logger.WithComponent("inventory"))
	flightService := flights.NewFlightService(txManager, flightRepo, planeRepo, ticketRepo, redisCache, logger.WithComponent("flights"))
	planeService := planes.NewPlaneService(txManager, planeRepo, flightRepo, logger.WithComponent("planes"))
	reportService := reports.NewReportService(flightService, ticketRepo, logger.WithComponent("reports"))
	bookingService := booking.NewBookingService(
		txManager,
		ticketRepo,
		seatManager,
		logger.WithComponent("booking"),
		booking.WithCache(redisCache),
		booking.WithEvents(producer, cfg.Kafka.TicketEventsTopic, cfg.Kafka.PublishRetries),
		booking.WithCounterRange(cfg.Booking.MinCounter, cfg.Booking.MaxCounter),
		booking.WithMaxSaleSkew(cfg.Booking.MaxSaleSkew()),
	)

	auth := middleware.NewAuth(cfg.Auth.JWTSecret, cfg.Auth.Issuer, logger.WithComponent("auth"))
	if !auth.Enabled() {
		log.Warn("auth.jwt_secret is empty, write routes are not protected")
	}

	router := api.NewRouter(cfg.HTTP, api.Handlers{
		Flights: api.NewFlightHandler(flightService),
		Planes:  api.NewPlaneHandler(planeService),
		Tickets: api.NewTicketHandler(bookingService, reportService),
		Reports: api.NewReportHandler(reportService),
	}, auth, logger.WithComponent("http"),
		api.HealthCheck{Name: "postgres", Check: pool.Ping},
		api.HealthCheck{Name: "redis", Check: redisCache.Ping},
		api.HealthCheck{Name: "kafka", Check: producer.CheckConnection},
	)

	grpcServer := grpc.NewServer(grpc.UnaryInterceptor(inventoryapi.LoggingInterceptor(logger.WithComponent("grpc"))))
	inventoryapi.RegisterInventoryServiceServer(grpcServer, inventoryapi.NewServer(flightService, bookingService, logger.WithComponent("grpc")))

	if err := producer.CheckConnection(ctx); err != nil {
		log.Warn("kafka is not reachable, ticket events will be dropped until it is", "error", err)
	}

	return bootstrap.NewServers(cfg, router, grpcServer, logger.WithComponent("server")).Run(ctx, cfg.GRPC.Address)
}

func newPool(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parse database config: %w", err)
	}
	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return pool, nil
}
