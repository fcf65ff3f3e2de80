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

	"github.com/jhoicas/Costeo-api/internal/application/auth"
	"github.com/jhoicas/Costeo-api/internal/application/reconcile"
	"github.com/jhoicas/Costeo-api/internal/application/runstore"
	infrapdf "github.com/jhoicas/Costeo-api/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/Costeo-api/internal/interfaces/http"
	"github.com/jhoicas/Costeo-api/pkg/config"
	"github.com/jhoicas/Costeo-api/pkg/logger"
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

	// Credenciales del operador y secreto JWT: obligatorios en producción.
	// En desarrollo se aceptan valores por defecto para arrancar sin .env.
	jwtSecret := cfg.JWT.Secret
	operatorPassword := cfg.Auth.OperatorPassword
	if jwtSecret == "" || operatorPassword == "" {
		if cfg.App.Env == "production" {
			log.Fatal().Msg("JWT_SECRET y OPERATOR_PASSWORD son obligatorios en producción")
		}
		log.Warn().Msg("JWT_SECRET u OPERATOR_PASSWORD vacíos, usando valores de desarrollo")
		if jwtSecret == "" {
			jwtSecret = "dev-secret"
		}
		if operatorPassword == "" {
			operatorPassword = "dev-password"
		}
	}

	authUC, err := auth.NewAuthUseCase(cfg.Auth.OperatorUser, operatorPassword, auth.JWTConfig{
		Secret:     jwtSecret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("preparar credenciales del operador")
	}

	reconcileUC := reconcile.NewUseCase(log)

	ttl := time.Duration(cfg.Runs.TTLMinutes) * time.Minute
	store := runstore.NewStore(ttl)

	janitorCtx, stopJanitor := context.WithCancel(context.Background())
	defer stopJanitor()
	go store.Janitor(janitorCtx, time.Minute)

	pdfGenerator := infrapdf.NewMarotoSummaryGenerator()

	reconcileHandler := httpRouter.NewReconcileHandler(
		reconcileUC, store, pdfGenerator, cfg.App.Name, cfg.Runs.PreviewRows,
	)
	authHandler := httpRouter.NewAuthHandler(authUC)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.HTTP.BodyLimit(),
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Costeo Semanal API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		JWTSecret:        jwtSecret,
		AuthHandler:      authHandler,
		ReconcileHandler: reconcileHandler,
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
	stopJanitor()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
