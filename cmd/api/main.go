package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/overdrive-app/overdrive-api/internal/application/session"
	"github.com/overdrive-app/overdrive-api/internal/application/usecase"
	infraai "github.com/overdrive-app/overdrive-api/internal/infrastructure/ai"
	"github.com/overdrive-app/overdrive-api/internal/infrastructure/identity"
	"github.com/overdrive-app/overdrive-api/internal/infrastructure/postgres"
	"github.com/overdrive-app/overdrive-api/internal/infrastructure/rekognition"
	httpRouter "github.com/overdrive-app/overdrive-api/internal/interfaces/http"
	"github.com/overdrive-app/overdrive-api/pkg/config"
	"github.com/overdrive-app/overdrive-api/pkg/logger"
)

const version = "1.0.0"

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
	accountRepo := postgres.NewAccountRepository(pool)

	verifier := identity.NewFirebaseVerifier(cfg.Firebase.ProjectID)
	resolver := session.NewResolver(verifier, userRepo, accountRepo)

	anthropicSvc := infraai.NewAnthropicService(cfg.AI.AnthropicAPIKey, cfg.AI.AnthropicModel)

	rekognitionSvc, err := rekognition.New(ctx, cfg.AWS.Region)
	if err != nil {
		log.Fatal().Err(err).Msg("cliente de Rekognition")
	}

	accountUC := usecase.NewAccountUseCase(accountRepo, userRepo)
	userUC := usecase.NewUserUseCase(userRepo)
	chatUC := usecase.NewChatUseCase(anthropicSvc)
	videoUC := usecase.NewVideoUseCase(rekognitionSvc)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 90, // el proxy de chat puede tardar
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(cors.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Overdrive API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Resolver:     resolver,
		AccountUC:    accountUC,
		UserUC:       userUC,
		ChatUC:       chatUC,
		VideoUC:      videoUC,
		Version:      version,
		Commit:       cfg.App.Commit,
		UserAPIKeys:  cfg.Auth.UserAPIKeys,
		AdminAPIKeys: cfg.Auth.AdminAPIKeys,
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
