package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ordering/cmd"
	"ordering/internal/adapters/out/events"
	postgres_adapter "ordering/internal/adapters/out/postgres"
	"ordering/internal/pkg/logging"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	amqp "github.com/rabbitmq/amqp091-go"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := logging.New(configs.LogLevel, configs.LogFormat)

	gormDB, err := gorm.Open(postgres.Open(configs.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	if err = gormDB.AutoMigrate(postgres_adapter.Models()...); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	redisOptions, err := redis.ParseURL(configs.RedisURL)
	if err != nil {
		log.Fatalf("Error parsing REDIS_URL: %v", err)
	}
	rdb := redis.NewClient(redisOptions)
	defer rdb.Close()

	amqpConn, err := amqp.Dial(configs.RabbitMQURL)
	if err != nil {
		log.Fatalf("Error connecting to RabbitMQ: %v", err)
	}
	defer amqpConn.Close()
	amqpChannel, err := amqpConn.Channel()
	if err != nil {
		log.Fatalf("Error opening RabbitMQ channel: %v", err)
	}
	publisher, err := events.NewAMQPPublisher(amqpChannel, configs.NotificationExchange)
	if err != nil {
		log.Fatalf("Error preparing notification exchange: %v", err)
	}

	app := cmd.NewCompositionRoot(configs, gormDB, rdb, publisher, logger)

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	startWebServer(ctx, app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}
	config, err := cmd.ConfigFromEnv(os.Getenv)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	return config
}

func startWebServer(ctx context.Context, app cmd.CompositionRoot, port string) {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	app.CreateHTTPServer().Register(e)

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		e.Logger.Error(err)
	}
}
