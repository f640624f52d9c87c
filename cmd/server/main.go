// Command server runs the event registration web application.
//
//	server          serve HTTP on $PORT
//	server initdb   create or migrate the database at $DATABASE_PATH and exit
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "eventregistration/docs"

	"eventregistration/config"
	"eventregistration/internal/adapters/dateparser"
	"eventregistration/internal/adapters/email"
	deliveryhttp "eventregistration/internal/delivery/http"
	"eventregistration/internal/delivery/http/controllers"
	"eventregistration/internal/delivery/http/views"
	"eventregistration/internal/repository/sqlite"
	"eventregistration/internal/services"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := config.NewLogger(cfg.Environment, cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if len(os.Args) > 1 && os.Args[1] == "initdb" {
		err = initDB(ctx, cfg, logger)
	} else {
		err = serve(ctx, cfg, logger)
	}
	if err != nil {
		logger.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func initDB(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	store, err := sqlite.Open(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()
	logger.Info("initialized the database", "path", cfg.DBPath)
	return nil
}

func serve(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	store, err := sqlite.Open(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()
	logger.Info("database ready", "path", cfg.DBPath)

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Mail.Provider,
		FromAddress: cfg.Mail.FromAddress,
		FromName:    cfg.Mail.FromName,
		SES: email.SESConfig{
			Region:             cfg.Mail.SESRegion,
			AccessKeyID:        cfg.Mail.SESAccessKeyID,
			SecretAccessKey:    cfg.Mail.SESSecretAccessKey,
			InsecureSkipVerify: cfg.Mail.InsecureSkipVerify,
		},
	}, logger)
	if err != nil {
		return fmt.Errorf("mailer: %w", err)
	}

	// Repositories
	eventRepo := sqlite.NewEventRepository(store.DB())
	attendeeRepo := sqlite.NewAttendeeRepository(store.DB())
	tx := sqlite.NewTransactor(store.DB())

	// Services
	dates := dateparser.New()
	emailSvc := services.NewEmailService(mailer, email.NewTemplateRenderer(), logger)
	eventSvc := services.NewEventService(eventRepo, dates, cfg.RequestTimeout)
	attendeeSvc := services.NewAttendeeService(eventRepo, attendeeRepo, tx, emailSvc, logger, cfg.RequestTimeout)
	importSvc := services.NewImportService(eventRepo, tx, dates, logger, cfg.RequestTimeout)
	reportSvc := services.NewReportService(eventRepo, attendeeRepo, cfg.RequestTimeout)

	// Delivery
	pages, err := views.New()
	if err != nil {
		return fmt.Errorf("views: %w", err)
	}
	router := deliveryhttp.NewRouter(logger, deliveryhttp.Controllers{
		Events:    controllers.NewEventController(logger, eventSvc, pages),
		Attendees: controllers.NewAttendeeController(logger, eventSvc, attendeeSvc, pages),
		Imports:   controllers.NewImportController(logger, importSvc, pages, cfg.MaxUploadBytes),
		Reports:   controllers.NewReportController(logger, reportSvc, pages),
		API:       controllers.NewAPIController(logger, eventSvc, attendeeSvc, reportSvc),
	}, cfg.CORSAllowedOrigins)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
