package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/ticoencargo/cartera/internal/audit"
	"github.com/ticoencargo/cartera/internal/config"
	"github.com/ticoencargo/cartera/internal/storage"
	"github.com/ticoencargo/cartera/internal/storesrv"
	"github.com/ticoencargo/cartera/pkg/logger"
	"github.com/ticoencargo/cartera/pkg/pg"
	"github.com/ticoencargo/cartera/pkg/redis"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	err := config.Load(argContainsEnvPath())
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return
	}

	pgConf := pg.Config{
		Driver:   config.Get().StoreDBDriver,
		User:     config.Get().PostgresUser,
		Host:     config.Get().PostgresHost,
		Port:     config.Get().PostgresPort,
		Password: config.Get().PostgresPassword,
		Database: config.Get().PostgresDatabase,
		Path:     config.Get().StoreDBPath,
	}

	pgDebug := config.Get().AppEnv == "dev"
	db, err := pg.CreateSingle(pgConf, pgDebug)
	if err != nil {
		logger.Error("failed connecting to the database", "error", err)
		return
	}

	// goose only covers Postgres; a sqlite store creates its own schema
	if pgConf.Driver == pg.DriverSQLite {
		if err := storage.AutoMigrate(context.Background(), db); err != nil {
			logger.Error("failed to migrate sqlite schema", "error", err)
			return
		}
	}

	// the audit stream is optional; without Redis the store just serves
	var auditPub *audit.Publisher
	if config.Get().RedisAddr != "" {
		redisAdap, err := redis.NewRedisAdapter("default", config.Get().RedisUniversalKeyPrefix, &redis.Options{
			Addrs:      []string{config.Get().RedisAddr},
			ClientName: "default",
			DB:         config.Get().RedisDatabase,
			Username:   config.Get().RedisUsername,
			Password:   config.Get().RedisPassword,
		})
		if err != nil {
			logger.Error("failed connecting to redis", "error", err)
			return
		}
		auditPub = audit.NewPublisher(redisAdap,
			config.Get().AuditStreamName, config.Get().AuditStreamMaxLen, 2)
		defer auditPub.Close()
	}

	clientRepo := storage.NewClientRepository(db)
	txRepo := storage.NewTransactionRepository(db)

	server := storesrv.New(clientRepo, txRepo, config.Get().StoreAPIKey, auditPub)

	srv := &http.Server{
		Addr:         config.Get().StoreListenAddr,
		Handler:      server.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("store server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start store server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down store server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("store server forced to shutdown")
	}

	log.Info().Msg("store server exited")
}

func argContainsEnvPath() string {
	for _, v := range os.Args {
		if strings.Contains(v, "--env=") {
			s := strings.Split(v, "=")
			if _, err := os.Open(s[1]); err != nil {
				logger.Error("failed to open the passed env file, got error" + err.Error())
				return ""
			}
			return s[1]
		}
	}
	return ""
}
