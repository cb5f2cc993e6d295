package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/inventario-consola/internal/application/auth"
	"github.com/jhoicas/inventario-consola/internal/application/editor"
	"github.com/jhoicas/inventario-consola/internal/application/navigation"
	"github.com/jhoicas/inventario-consola/internal/domain/access"
	"github.com/jhoicas/inventario-consola/internal/domain/repository"
	"github.com/jhoicas/inventario-consola/internal/infrastructure/backend"
	"github.com/jhoicas/inventario-consola/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/inventario-consola/internal/infrastructure/pdf"
	"github.com/jhoicas/inventario-consola/internal/infrastructure/policyfile"
	infraredis "github.com/jhoicas/inventario-consola/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/inventario-consola/internal/interfaces/http"
	"github.com/jhoicas/inventario-consola/pkg/config"
	"github.com/jhoicas/inventario-consola/pkg/logger"
)

const sweepInterval = time.Minute

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
		Str("backend", cfg.Backend.BaseURL).
		Msg("iniciando consola")

	ctx := context.Background()

	loaded, err := policyfile.Load(cfg.Access.TablePath, cfg.Access.DefaultRole)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Access.TablePath).Msg("tabla de permisos")
	}
	policy := access.NewPolicy(loaded.Table)

	// Sesiones: Redis si está configurado, si no memoria del proceso
	var sessions repository.SessionRepository
	if cfg.Redis.Addr != "" {
		client, err := infraredis.Connect(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("conexión a Redis")
		}
		defer client.Close()
		sessions = infraredis.NewSessionStore(client, cfg.Redis.KeyPrefix)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("sesiones en Redis")
	} else {
		sessions = memory.NewSessionStore()
		log.Warn().Msg("REDIS_ADDR vacío: sesiones en memoria, se pierden al reiniciar")
	}

	api := backend.NewClient(cfg.Backend)
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()

	editors := editor.NewService(editor.Deps{
		Catalog:  api,
		Parties:  api,
		Gateway:  api,
		Renderer: pdfGenerator,
		Policy:   policy,
		Logger:   log,
	})
	nav := navigation.NewService(policy, loaded.Nav, sessions, api, api, log)
	authUC := auth.NewAuthUseCase(api, sessions, editors, nav, auth.JWTConfig{
		Secret: cfg.JWT.Secret,
		TTL:    cfg.JWT.TTL(),
		Issuer: cfg.JWT.Issuer,
	}, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cfg.Backend.Timeout + time.Second*5,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs
	if err := httpRouter.Docs(app, cfg.HTTP.DocsPath, cfg.App.Name); err != nil {
		log.Warn().Err(err).Msg("documentación Swagger deshabilitada")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "editors": editors.Len()})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		Navigation: nav,
		Editors:    editors,
		Policy:     policy,
		JWTSecret:  cfg.JWT.Secret,
	})

	// Editores abandonados: se descartan tras una sesión completa sin cambios
	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go func() {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-sweepCtx.Done():
				return
			case <-ticker.C:
				editors.Sweep(cfg.JWT.TTL())
			}
		}
	}()

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
