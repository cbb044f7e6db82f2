package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tu-usuario/bodega-api/internal/application/report"
	"github.com/tu-usuario/bodega-api/internal/infrastructure/mail"
	infrapdf "github.com/tu-usuario/bodega-api/internal/infrastructure/pdf"
	"github.com/tu-usuario/bodega-api/internal/infrastructure/postgres"
	"github.com/tu-usuario/bodega-api/pkg/config"
	"github.com/tu-usuario/bodega-api/pkg/logger"
)

// Worker de reportes programados: envía el reporte de estado de stock a los
// administradores cada REPORT_INTERVAL_HOURS (24 por defecto).
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})

	if cfg.SMTP.Host == "" {
		log.Fatal().Msg("SMTP_HOST es requerido para el worker de reportes")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	balanceRepo := postgres.NewStockBalanceRepository(pool)

	mailer := mail.NewSMTPMailer(mail.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	}, userRepo, warehouseRepo)

	reportUC := report.NewStockReportUseCase(
		balanceRepo, userRepo, infrapdf.NewStockReportPDFGenerator(), mailer,
	)

	interval := time.Duration(cfg.Report.IntervalHours) * time.Hour
	log.Info().
		Str("app", cfg.App.Name).
		Dur("interval", interval).
		Msg("worker de reportes iniciado")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Primer envío inmediato; los siguientes por ticker.
	send(ctx, reportUC, log)
	for {
		select {
		case <-ticker.C:
			send(ctx, reportUC, log)
		case <-quit:
			log.Info().Msg("señal de apagado recibida, worker detenido")
			return
		}
	}
}

func send(ctx context.Context, uc *report.StockReportUseCase, log *logger.Logger) {
	sendCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()
	if err := uc.SendDaily(sendCtx); err != nil {
		log.Error().Err(err).Msg("envío del reporte de stock")
		return
	}
	log.Info().Msg("reporte de stock enviado")
}
