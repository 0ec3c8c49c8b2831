package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ventas/internal/auth"
	"ventas/internal/config"
	"ventas/internal/crud"
	"ventas/internal/diagnostic"
	"ventas/internal/infrastructure/logger"
	"ventas/internal/infrastructure/mysql"
	"ventas/internal/order"
	"ventas/internal/server"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	if cfg.Database.AutoMigrate {
		if err := migrateUp(cfg, zapLogger); err != nil {
			zapLogger.Fatal("applying migrations", zap.Error(err))
		}
	}

	db, err := mysql.NewConnection(cfg.Database)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	defer db.Close()
	zapLogger.Info("database connected")

	router := server.NewRouter(server.Modules{
		Auth:             auth.NewModule(db, cfg.Auth, zapLogger),
		CRUD:             crud.NewModule(db, zapLogger),
		Orders:           order.NewModule(db, cfg, zapLogger),
		Diagnostic:       diagnostic.NewController(db, zapLogger),
		DiagnosticAPIKey: cfg.Diagnostic.APIKey,
	}, zapLogger)

	srv := server.New(cfg.Server, router, zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server shutdown failed", zap.Error(err))
	}

	zapLogger.Info("server stopped gracefully")
}

func migrateUp(cfg *config.Config, logger *zap.Logger) error {
	migrator, err := mysql.NewMigrator(cfg.Database, logger)
	if err != nil {
		return err
	}
	defer migrator.Close()
	return migrator.Up()
}
