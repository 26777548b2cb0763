package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/mi-inventory-api/internal/application/service"
	"github.com/sangkips/mi-inventory-api/internal/application/session"
	"github.com/sangkips/mi-inventory-api/internal/config"
	"github.com/sangkips/mi-inventory-api/internal/domain/entity"
	"github.com/sangkips/mi-inventory-api/internal/domain/enum"
	domainRepo "github.com/sangkips/mi-inventory-api/internal/domain/repository"
	"github.com/sangkips/mi-inventory-api/internal/infrastructure/database"
	"github.com/sangkips/mi-inventory-api/internal/infrastructure/repository"
	"github.com/sangkips/mi-inventory-api/internal/presentation/http/handler"
	"github.com/sangkips/mi-inventory-api/internal/presentation/http/routes"
	"github.com/sangkips/mi-inventory-api/pkg/logging"
	"github.com/sangkips/mi-inventory-api/pkg/metrics"
	"github.com/sangkips/mi-inventory-api/pkg/printer"
	"github.com/sangkips/mi-inventory-api/pkg/utils"
)

func main() {
	cfg := config.Load()
	logging.Setup(cfg.Log.Level)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(&cfg.Database, cfg.App.Debug)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err := database.AutoMigrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	policy, err := enum.ParseOverpaymentPolicy(cfg.Ledger.OverpaymentPolicy)
	if err != nil {
		slog.Error("invalid ledger configuration", "error", err)
		os.Exit(1)
	}

	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)
	collector := metrics.NewCollector()

	saleHistoryRepo := repository.NewSaleHistoryRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)

	sessions := session.NewStore(session.StoreConfig{
		TTL:             cfg.Session.TTL,
		CleanupInterval: cfg.Session.CleanupInterval,
		OnCountChange:   func(n int) { collector.ActiveSessions.Set(float64(n)) },
	})
	go sessions.Run(ctx)
	go purgeIdempotencyKeys(ctx, idempotencyRepo, time.Hour)

	receiptPrinter, err := printer.New(printer.Config{
		Kind:    printer.Kind(cfg.Printer.Type),
		USBPath: cfg.Printer.USBPath,
		Address: cfg.Printer.Address,
	})
	if err != nil {
		slog.Warn("failed to initialize printer, receipts will not be printed", "error", err)
		receiptPrinter, _ = printer.New(printer.Config{Kind: printer.KindNone})
	}
	receiptService := service.NewReceiptService(receiptPrinter, entity.ReceiptHeader{
		StoreName: cfg.Printer.StoreName,
		Address:   cfg.Printer.Address1,
		Phone:     cfg.Printer.Phone,
	}, cfg.Printer.Type, cfg.Printer.Width)

	sessionService := service.NewSessionService(sessions, cfg.Session.SeedDemoCreditors)
	industryService := service.NewIndustryService()
	saleService := service.NewSaleService(sessions, saleHistoryRepo, receiptService, collector)
	creditorService := service.NewCreditorService(sessions, policy, collector)
	reportService := service.NewReportService(analyticsRepo)

	handlers := &routes.Handlers{
		Session:  handler.NewSessionHandler(sessionService),
		Industry: handler.NewIndustryHandler(industryService),
		Sale:     handler.NewSaleHandler(saleService),
		Creditor: handler.NewCreditorHandler(creditorService),
		Printer:  handler.NewPrinterHandler(receiptService, saleService),
		Report:   handler.NewReportHandler(reportService),
	}

	router := routes.Setup(ctx, handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		Metrics:         collector,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("starting server", "name", cfg.App.Name, "port", port, "env", cfg.App.Env,
			"db_driver", cfg.Database.Driver, "overpayment_policy", policy.String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func purgeIdempotencyKeys(ctx context.Context, repo domainRepo.IdempotencyRepository, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := repo.DeleteExpired(ctx, time.Now())
			if err != nil {
				slog.Warn("failed to purge idempotency keys", "error", err)
				continue
			}
			if n > 0 {
				slog.Debug("purged idempotency keys", "count", n)
			}
		}
	}
}
