package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"kingflex/internal/auth"
	"kingflex/internal/commons"
	"kingflex/internal/infrastructure/logger"
	"kingflex/internal/infrastructure/mail"
	"kingflex/internal/infrastructure/mysql"
	"kingflex/internal/infrastructure/pdf"
	"kingflex/internal/order"
	"kingflex/internal/product"
	"kingflex/internal/server"
)

func main() {
	cfg, err := commons.LoadConfig()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := mysql.NewConnection(cfg.Database)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	defer db.Close()
	zapLogger.Info("database connected")

	renderer, err := pdf.NewRenderer(cfg.Order.TempDir)
	if err != nil {
		zapLogger.Fatal("preparing document directory", zap.Error(err))
	}

	mailer := mail.NewMailer(cfg.Mail)

	authCtrl, authMw := auth.NewModule(db, cfg, zapLogger, mailer)
	orderCtrl := order.NewModule(db, cfg, zapLogger, mailer, renderer)
	productCtrl := product.NewModule(db, zapLogger)

	router := server.NewRouter(authCtrl, orderCtrl, productCtrl, authMw, cfg.Server.FrontendURL, zapLogger)

	srv := server.New(cfg.Server.Port, router, zapLogger)

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
