package http

import (
	"github.com/rs/zerolog/log"

	"github.com/gofiber/fiber/v2"

	"github.com/overdrive-app/overdrive-api/internal/domain"
)

// HeaderAPIKey header de la variante de auth por clave estática.
const HeaderAPIKey = "X-Api-Key"

// APIKeyAuth guards por clave de API estática para las rutas que no pasan
// por el resolver de sesión (el proxy de chat). Las claves se cargan una
// vez al arranque en sets inmutables; no hay listas mutables a nivel de
// módulo.
type APIKeyAuth struct {
	userKeys  map[string]struct{}
	adminKeys map[string]struct{}
}

// NewAPIKeyAuth construye los guards a partir de las listas de la
// configuración. Una clave de admin también vale como clave de usuario.
func NewAPIKeyAuth(userKeys, adminKeys []string) *APIKeyAuth {
	toSet := func(keys []string) map[string]struct{} {
		s := make(map[string]struct{}, len(keys))
		for _, k := range keys {
			s[k] = struct{}{}
		}
		return s
	}
	return &APIKeyAuth{userKeys: toSet(userKeys), adminKeys: toSet(adminKeys)}
}

// RequireUserKey pasa si el header trae una clave de usuario o de admin.
func (a *APIKeyAuth) RequireUserKey() fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Get(HeaderAPIKey)
		if _, ok := a.userKeys[key]; ok {
			return c.Next()
		}
		if _, ok := a.adminKeys[key]; ok {
			return c.Next()
		}
		log.Error().Msg("authentication failed (not user)")
		return domain.NewAuthError("authentication failed")
	}
}

// RequireAdminKey pasa solo con una clave de admin.
func (a *APIKeyAuth) RequireAdminKey() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := a.adminKeys[c.Get(HeaderAPIKey)]; ok {
			return c.Next()
		}
		log.Error().Msg("authentication failed (not admin)")
		return domain.NewAuthError("authentication failed")
	}
}
