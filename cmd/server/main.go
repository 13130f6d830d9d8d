package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/omindustries/backoffice/internal/config"
	"github.com/omindustries/backoffice/internal/db"
	"github.com/omindustries/backoffice/internal/logger"
	"github.com/omindustries/backoffice/internal/mail"
	"github.com/omindustries/backoffice/internal/pdf"
	"github.com/omindustries/backoffice/internal/repository"
	"github.com/omindustries/backoffice/internal/server"
	"github.com/omindustries/backoffice/internal/service"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load()
	log := logger.New(cfg.Debug)
	defer log.Sync()

	database, err := db.Open(ctx, db.Config{
		DatabaseURL: cfg.DatabaseURL,
		SQLitePath:  cfg.SQLitePath,
	})
	if err != nil {
		log.Fatal("database init failed", zap.Error(err))
	}
	defer database.Close()
	log.Info("database connected", zap.String("backend", string(database.Backend())))

	db.Migrate(ctx, database)

	mailer := mail.NewSMTPMailer(cfg.SMTP)
	dispatcher := mail.NewDispatcher(mailer, 2, 64)
	dispatcher.Start(ctx)

	company := pdf.CompanyInfo{
		Name:    cfg.Company.Name,
		Address: cfg.Company.Address,
		Phone:   cfg.Company.Phone,
		Email:   cfg.Company.Email,
	}

	orderSvc := service.NewOrderService(
		database,
		repository.NewOrderRepo(database),
		repository.NewStatusLogRepo(database),
		company,
	)
	feedbackSvc := service.NewFeedbackService(repository.NewFeedbackRepo(database))
	contactSvc := service.NewContactService(repository.NewContactRepo(database), dispatcher)

	srv := server.New(orderSvc, feedbackSvc, contactSvc, server.AdminCredentials{
		Username:     cfg.AdminUsername,
		Password:     cfg.AdminPassword,
		PasswordHash: cfg.AdminPasswordHash,
	})

	go func() {
		if err := srv.Run(cfg.HTTPPort); err != nil {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", zap.Error(err))
	}
	dispatcher.Shutdown(shutdownCtx)

	log.Info("stopped")
}
