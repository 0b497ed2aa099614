package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/naturgy/gas-console/internal/application/billing"
	"github.com/naturgy/gas-console/internal/application/resource"
	"github.com/naturgy/gas-console/internal/infrastructure/gasapi"
	httpRouter "github.com/naturgy/gas-console/internal/interfaces/http"
	"github.com/naturgy/gas-console/pkg/config"
	"github.com/naturgy/gas-console/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("gas_api", cfg.GasAPI.BaseURL).
		Msg("iniciando consola")

	api := gasapi.New(cfg.GasAPI.BaseURL, cfg.GasAPI.Timeout(), log)

	// La interfaz web confirma los borrados antes de llamar a la consola;
	// aquí la capacidad de confirmación acepta siempre. En tests se inyectan
	// stubs deterministas.
	confirm := resource.AcceptAll

	supplyPoints := resource.SupplyPoints(api, confirm, log)
	readings := resource.Readings(api, confirm, log)
	tariffs := resource.Tariffs(api, confirm, log)
	factors := resource.ConversionFactors(api, confirm, log)
	taxes := resource.Taxes(api, confirm, log)

	// La descarga real la hace el navegador vía redirección; el exportador
	// inyectado solo deja rastro de la entrega.
	exporter := func(url, filename string) {
		log.Info().Str("url", url).Str("filename", filename).Msg("descarga de PDF delegada al navegador")
	}
	orchestrator := billing.NewOrchestrator(api, exporter, confirm, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		SupplyPoints:      supplyPoints,
		Readings:          readings,
		Tariffs:           tariffs,
		ConversionFactors: factors,
		Taxes:             taxes,
		Billing:           orchestrator,
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

	log.Info().Msg("consola detenida")
}
