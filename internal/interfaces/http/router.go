package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/overdrive-app/overdrive-api/internal/application/session"
	"github.com/overdrive-app/overdrive-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Resolver  *session.Resolver
	AccountUC *usecase.AccountUseCase
	UserUC    *usecase.UserUseCase
	ChatUC    *usecase.ChatUseCase
	VideoUC   *usecase.VideoUseCase

	Version      string
	Commit       string
	UserAPIKeys  []string
	AdminAPIKeys []string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	gates := NewSessionGates(deps.Resolver)
	apiKeys := NewAPIKeyAuth(deps.UserAPIKeys, deps.AdminAPIKeys)

	// Diagnóstico (público)
	statusHandler := NewStatusHandler(deps.Version, deps.Commit)
	app.Get("/status", statusHandler.Get)

	// Proxy de chat: auth por clave de API, no por sesión Firebase
	chatHandler := NewChatHandler(deps.ChatUC)
	agent := app.Group("/agent")
	agent.Post("/ask", apiKeys.RequireUserKey(), chatHandler.Ask)
	agent.Get("/cache/stats", apiKeys.RequireAdminKey(), chatHandler.CacheStats)
	agent.Delete("/cache", apiKeys.RequireAdminKey(), chatHandler.ClearCache)

	api := app.Group("/api")

	// Accounts (lectura propia para cualquier usuario; el resto uber)
	accounts := api.Group("/accounts")
	accountHandler := NewAccountHandler(deps.AccountUC)
	accounts.Get("/", gates.RequireUber(), accountHandler.List)
	accounts.Get("/me", gates.RequireUser(), accountHandler.GetMine)
	accounts.Post("/", gates.RequireUber(), accountHandler.Create)
	accounts.Put("/:accountId", gates.RequireUber(), accountHandler.Update)
	accounts.Delete("/:accountId", gates.RequireUber(), accountHandler.Delete)
	accounts.Put("/:accountId/user/:userId", gates.RequireUber(), accountHandler.LinkUser)
	accounts.Delete("/:accountId/user/:userId", gates.RequireUber(), accountHandler.UnlinkUser)

	// Users
	users := api.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", gates.RequireAdmin(), userHandler.ListAccountUsers)
	users.Post("/search", gates.RequireUber(), userHandler.Search)
	users.Get("/me", gates.RequireUser(), userHandler.GetMe)
	users.Get("/:userId", gates.RequireAdmin(), userHandler.Get)
	users.Put("/:userId", gates.RequireAdmin(), userHandler.Update)
	users.Delete("/:userId", gates.RequireAdmin(), userHandler.Delete)

	// Video (cualquier usuario activo)
	video := api.Group("/video", gates.RequireUser())
	videoHandler := NewVideoHandler(deps.VideoUC)
	video.Post("/emotion", videoHandler.Emotion)
	video.Post("/faces", videoHandler.Faces)
}
