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
	"github.com/redis/go-redis/v9"

	appanalytics "github.com/jhoicas/painel-vendas/internal/application/analytics"
	"github.com/jhoicas/painel-vendas/internal/application/usecase"
	"github.com/jhoicas/painel-vendas/internal/domain/repository"
	"github.com/jhoicas/painel-vendas/internal/infrastructure/analyticsapi"
	"github.com/jhoicas/painel-vendas/internal/infrastructure/cache"
	infraexport "github.com/jhoicas/painel-vendas/internal/infrastructure/export"
	"github.com/jhoicas/painel-vendas/internal/infrastructure/jobs"
	"github.com/jhoicas/painel-vendas/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/painel-vendas/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/painel-vendas/internal/interfaces/http"
	"github.com/jhoicas/painel-vendas/pkg/config"
	"github.com/jhoicas/painel-vendas/pkg/logger"
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
		Str("analytics_api", cfg.Analytics.BaseURL).
		Msg("iniciando aplicación")

	m := metrics.New()

	// API de analítica: consultas, top produtos y catálogos de referencia.
	client := analyticsapi.NewClient(cfg.Analytics.BaseURL, cfg.Analytics.Timeout(), analyticsapi.WithObserver(m))

	// Caché Redis de referencias (opcional).
	var (
		refs        repository.ReferenceRepository = client
		redisClient *redis.Client
		warmer      *jobs.ReferenceWarmer
	)
	if cfg.Cache.Enabled() {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			// La caché degrada sola: cada lectura fallida consulta la API.
			log.Warn().Err(err).Str("addr", cfg.Cache.RedisAddr).Msg("redis no responde")
		}
		cancel()

		refCache := cache.NewReferenceCache(client, redisClient, cfg.Cache.TTL(), log.Component("cache"), m)
		refs = refCache

		if cfg.Cache.RefreshCron != "" {
			warmer = jobs.NewReferenceWarmer(refCache, cfg.Cache.RefreshCron, cfg.Analytics.Timeout(), log.Component("jobs"))
			if err := warmer.Start(); err != nil {
				log.Fatal().Err(err).Msg("programar recarga de referencias")
			}
		}
	}

	loc := cfg.App.Location()
	referenceUC := usecase.NewReferenceUseCase(refs)
	reportUC := usecase.NewReportUseCase(client, referenceUC, log.Component("report"), loc,
		infraexport.NewCSVExporter(),
		infraexport.NewXLSXExporter(),
		infrapdf.NewReportPDF(cfg.App.Name),
	)
	dashboardUC := appanalytics.NewDashboardUseCase(client, refs, m, log.Component("dashboard"), loc, cfg.Dashboard.WidgetTimeout())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cfg.Analytics.Timeout() * 2,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(httpRouter.MetricsMiddleware(m))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Painel de Vendas API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "cache": cfg.Cache.Enabled()})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		DashboardUC:    dashboardUC,
		ReportUC:       reportUC,
		ReferenceUC:    referenceUC,
		MetricsHandler: m.Handler(),
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

	if warmer != nil {
		select {
		case <-warmer.Stop().Done():
		case <-shutdownCtx.Done():
		}
	}
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}

	log.Info().Msg("aplicación detenida")
}
