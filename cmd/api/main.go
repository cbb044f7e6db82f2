package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/tu-usuario/bodega-api/internal/application/auth"
	"github.com/tu-usuario/bodega-api/internal/application/inventory"
	"github.com/tu-usuario/bodega-api/internal/application/report"
	"github.com/tu-usuario/bodega-api/internal/application/usecase"
	"github.com/tu-usuario/bodega-api/internal/infrastructure/cache"
	"github.com/tu-usuario/bodega-api/internal/infrastructure/mail"
	infrapdf "github.com/tu-usuario/bodega-api/internal/infrastructure/pdf"
	"github.com/tu-usuario/bodega-api/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/bodega-api/internal/interfaces/http"
	"github.com/tu-usuario/bodega-api/pkg/config"
	"github.com/tu-usuario/bodega-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	balanceRepo := postgres.NewStockBalanceRepository(pool)
	txRepo := postgres.NewStockTransactionRepository(pool)
	txRunner := postgres.NewTxRunner(pool)
	accessPolicy := postgres.NewAccessPolicy(pool)

	// Redis es opcional: sin REDIS_ADDR la API funciona sin cache ni rate limit.
	var redisClient *cache.RedisClient
	if cfg.Redis.Addr != "" {
		redisClient, err = cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer redisClient.Close()
	} else {
		log.Warn().Msg("REDIS_ADDR vacío: cache y rate limit desactivados")
	}

	// Notificador de alertas: SMTP real si está configurado, si no solo log.
	var notifier inventory.AlertNotifier
	if cfg.SMTP.Host != "" {
		notifier = mail.NewSMTPMailer(mail.Config{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		}, userRepo, warehouseRepo)
	} else {
		log.Warn().Msg("SMTP_HOST vacío: las alertas de stock crítico solo se registran en el log")
		notifier = mail.NewLogNotifier(log)
	}

	validator := inventory.NewTransactionValidator(warehouseRepo, productRepo, customerRepo, balanceRepo, accessPolicy)
	processor := inventory.NewTransactionProcessor(txRunner, validator, notifier, log)

	var cacheForQueries inventory.Cache
	if redisClient != nil {
		cacheForQueries = redisClient
	}
	stockQueryUC := inventory.NewStockQueryUseCase(balanceRepo, cacheForQueries)
	txQueryUC := inventory.NewTransactionQueryUseCase(txRepo)

	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo, userRepo)
	productUC := usecase.NewProductUseCase(productRepo)
	customerUC := usecase.NewCustomerUseCase(customerRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	pdfGenerator := infrapdf.NewStockReportPDFGenerator()
	var reportMailer report.Mailer
	if m, ok := notifier.(*mail.SMTPMailer); ok {
		reportMailer = m
	}
	reportUC := report.NewStockReportUseCase(balanceRepo, userRepo, pdfGenerator, reportMailer)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Bodega API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		WarehouseUC:   warehouseUC,
		ProductUC:     productUC,
		CustomerUC:    customerUC,
		Processor:     processor,
		StockQuery:    stockQueryUC,
		TxQuery:       txQueryUC,
		ReportUC:      reportUC,
		Redis:         redisClient,
		JWTSecret:     cfg.JWT.Secret,
		LoginRateMax:  10,
		LoginRateSpan: time.Minute,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
