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

	"production/cmd"
	httpin "production/internal/adapters/in/http"
	"production/internal/adapters/out/kafka"
	"production/internal/adapters/out/postgres/migrations"
	redisadapter "production/internal/adapters/out/redis"
	"production/internal/config"
	"production/internal/core/ports"
	"production/internal/jobs"
	"production/internal/pkg/logger"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 15 * time.Second

func main() {
	configs := getConfigs()

	appLogger, err := logger.New(configs.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	plant, err := config.Load(configs.PlantConfigPath)
	if err != nil {
		log.Fatalf("plant config %s: %v", configs.PlantConfigPath, err)
	}

	gormDB, err := gorm.Open(pgdriver.Open(configs.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("connect to postgres: %v", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Fatalf("postgres pool: %v", err)
	}
	defer sqlDB.Close()
	if err := migrations.Up(ctx, sqlDB); err != nil {
		log.Fatalf("migrations: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     configs.RedisAddr,
		Password: configs.RedisPassword,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("connect to redis %s: %v", configs.RedisAddr, err)
	}

	var publisher ports.HealthAlertPublisher
	if brokers := configs.Brokers(); len(brokers) > 0 {
		client, err := kafka.NewClient(brokers, configs.KafkaAlertTopic, configs.KafkaClientID)
		if err != nil {
			log.Fatalf("kafka client: %v", err)
		}
		defer client.Close()
		publisher = kafka.NewHealthAlertPublisher(client, configs.KafkaAlertTopic)
	} else {
		appLogger.Warn("KAFKA_BROKERS is empty, health alerts will not be published")
	}

	app, err := cmd.NewCompositionRoot(
		configs,
		plant,
		gormDB,
		redisadapter.NewPassLock(redisClient),
		publisher,
		appLogger,
	)
	if err != nil {
		log.Fatalf("composition root: %v", err)
	}

	report, err := app.SyncFixtures(ctx)
	if err != nil {
		log.Fatalf("sync fixtures: %v", err)
	}
	appLogger.Info("fixtures synced",
		zap.Int("added", report.Added),
		zap.Int("updated", report.Updated),
		zap.Int("disabled", report.Disabled),
	)

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("start jobs: %v", err)
	}
	defer jobManager.StopAll()

	if err := startWebServer(ctx, app, configs.HTTPPort, appLogger); err != nil {
		appLogger.Error("web server stopped", zap.Error(err))
	}
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Warnf("Warning: .env file not found or could not be loaded: %v", err)
	}

	return cmd.Config{
		HTTPPort:          getEnv("HTTP_PORT", "8080"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getEnv("DB_PASSWORD", ""),
		DBName:            getEnv("DB_NAME", "production"),
		DBSslMode:         getEnv("DB_SSLMODE", "disable"),
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		KafkaBrokers:      getEnv("KAFKA_BROKERS", ""),
		KafkaAlertTopic:   getEnv("KAFKA_ALERT_TOPIC", "production.health-alerts"),
		KafkaClientID:     getEnv("KAFKA_CLIENT_ID", "production"),
		OrderIDScheme:     getEnv("ORDER_ID_SCHEME", "period"),
		BaseDate:          getEnv("BASE_DATE", ""),
		PlantConfigPath:   getEnv("PLANT_CONFIG", "configs/plant.yaml"),
		Timezone:          getEnv("TIMEZONE", "UTC"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		SchedulingSpec:    getEnv("SCHEDULING_SPEC", jobs.DefaultSchedulingSpec),
		HealthMonitorSpec: getEnv("HEALTH_MONITOR_SPEC", jobs.DefaultHealthMonitorSpec),
		SchedulerLockTTL:  getEnv("SCHEDULER_LOCK_TTL", ""),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func startWebServer(ctx context.Context, app cmd.CompositionRoot, port string, appLogger *zap.Logger) error {
	e := httpin.NewEcho(appLogger)
	server := app.CreateServer()
	server.RegisterRoutes(e)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
