// Package main реализует точку входа сервиса filmorate.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	httpadapter "filmorate/internal/filmorate/adapters/http"
	"filmorate/internal/filmorate/adapters/memory"
	"filmorate/internal/filmorate/adapters/postgres"
	"filmorate/internal/filmorate/app"
	"filmorate/internal/filmorate/config"
	"filmorate/internal/filmorate/db"
	"filmorate/internal/filmorate/ports/repositories"
	"filmorate/pkg/logger"
	"filmorate/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "FILMORATE_LOGGER_MODE"
	EnvLoggerLevel = "FILMORATE_LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrInitDB               = "failed to initialize database"
	ErrStartHTTPServer      = "failed to start HTTP server"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "filmorate service started"
	LogServiceShutdownDone = "filmorate service shutdown complete"
	LogClosingDB           = "closing database connections"
	LogStoppingHTTP        = "stopping HTTP server"
	LogInitRepo            = "initializing repositories"
	LogInitUseCases        = "initializing use cases"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
)

func main() {
	envPath := flag.String("env", ".env", "path to env file")
	flag.Parse()

	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx, *envPath)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(cfg.Logging.GetEnvironment())),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("storage", cfg.Storage.Type),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		log.Info(ctx, LogInitRepo)
		var (
			factory repositories.Factory
			hooks   []shutdown.Hook
		)
		if cfg.Storage.IsPostgres() {
			database, err := db.New(ctx, &cfg.Postgres, cfg.Migrations.Path)
			if err != nil {
				log.Error(ctx, ErrInitDB, zap.Error(err))
				exitCode = 1
				return
			}
			factory = postgres.NewRepositoryFactory(database.Pool())
			hooks = append(hooks, func(ctx context.Context) error {
				log.Info(ctx, LogClosingDB)
				database.Close(ctx)
				return nil
			})
		} else {
			factory = memory.NewStore()
		}

		log.Info(ctx, LogInitUseCases)
		userUseCase := app.NewUserUseCase(factory.Users())
		services := httpadapter.Services{
			Films:  app.NewFilmUseCase(factory.Films(), factory.Genres(), factory.Mpa(), userUseCase),
			Users:  userUseCase,
			Genres: app.NewGenreUseCase(factory.Genres()),
			Mpa:    app.NewMpaUseCase(factory.Mpa()),
		}

		log.Info(ctx, LogInitHTTPServer)
		server := httpadapter.NewApp(cfg.HTTP.ReadTimeout, cfg.HTTP.WriteTimeout)
		httpadapter.SetupRouter(server, services)

		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		go func() {
			if err := server.Listen(cfg.HTTP.GetAddress()); err != nil {
				log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
			}
		}()

		hooks = append(hooks, func(ctx context.Context) error {
			log.Info(ctx, LogStoppingHTTP)
			return server.ShutdownWithContext(ctx)
		})

		shutdown.Wait(ctx, cfg.Shutdown.GetTimeout(), hooks...)

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
