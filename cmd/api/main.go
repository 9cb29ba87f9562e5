package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/stokespro/cake-crm-sub002/internal/application/auth"
	"github.com/stokespro/cake-crm-sub002/internal/application/demand"
	"github.com/stokespro/cake-crm-sub002/internal/application/ledger"
	"github.com/stokespro/cake-crm-sub002/internal/application/packaging"
	infrapdf "github.com/stokespro/cake-crm-sub002/internal/infrastructure/pdf"
	"github.com/stokespro/cake-crm-sub002/internal/infrastructure/postgres"
	httpRouter "github.com/stokespro/cake-crm-sub002/internal/interfaces/http"
	"github.com/stokespro/cake-crm-sub002/pkg/config"
	"github.com/stokespro/cake-crm-sub002/pkg/logger"
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

	materialRepo := postgres.NewMaterialRepository(pool)
	transactionRepo := postgres.NewMaterialTransactionRepository(pool)
	inventoryRepo := postgres.NewInventoryRepository(pool)
	taskRepo := postgres.NewPackagingTaskRepository(pool)
	skuRepo := postgres.NewSKURepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	ledgerUC := ledger.NewLedgerUseCase(txRunner, materialRepo, transactionRepo)
	pipelineUC := packaging.NewPipelineUseCase(txRunner, inventoryRepo, taskRepo, skuRepo, log)
	demandUC := demand.NewDemandUseCase(orderRepo, inventoryRepo, taskRepo, skuRepo)

	// PDF: hoja de producción diaria para el piso de empaque
	sheetGenerator := infrapdf.NewMarotoSheetGenerator()
	sheetUC := packaging.NewProductionSheetUseCase(demandUC, sheetGenerator)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		LedgerUC:   ledgerUC,
		PipelineUC: pipelineUC,
		DemandUC:   demandUC,
		SheetUC:    sheetUC,
		AuthUC:     authUC,
		JWTSecret:  cfg.JWT.Secret,
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
