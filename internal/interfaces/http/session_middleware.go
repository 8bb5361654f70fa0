package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/overdrive-app/overdrive-api/internal/application/session"
	"github.com/overdrive-app/overdrive-api/internal/domain"
	"github.com/overdrive-app/overdrive-api/internal/domain/entity"
)

// Locals key para la sesión resuelta en Fiber.
const LocalSession = "session"

// HeaderAccountID header con el que un uber-admin elige la cuenta sobre
// la que quiere operar.
const HeaderAccountID = "X-Account-Id"

// SessionGates fabrica los tres guards de autorización sobre el resolver
// de sesión. Cada guard resuelve la sesión completa y después aplica su
// predicado de rol; cualquier fallo corta la cadena sin invocar el
// siguiente handler.
type SessionGates struct {
	resolver *session.Resolver
}

// NewSessionGates construye los guards con el resolver inyectado.
func NewSessionGates(resolver *session.Resolver) *SessionGates {
	return &SessionGates{resolver: resolver}
}

// requireRole guard genérico: resuelve la sesión y exige un rol mínimo.
// La jerarquía es un rank numérico (user < admin < uber-admin), no
// igualdades duplicadas por guard.
func (g *SessionGates) requireRole(min entity.Role, failMessage string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c.Get(fiber.HeaderAuthorization))
		sess, err := g.resolver.Resolve(c.Context(), token, c.Get(HeaderAccountID))
		if err != nil {
			return err
		}
		if !sess.User.Role.AtLeast(min) {
			return domain.NewAuthError(failMessage)
		}
		c.Locals(LocalSession, sess)
		return c.Next()
	}
}

// RequireUser pasa para cualquier usuario activo resuelto.
func (g *SessionGates) RequireUser() fiber.Handler {
	return g.requireRole(entity.RoleUser, "authentication failed")
}

// RequireAdmin exige rol admin o uber-admin.
func (g *SessionGates) RequireAdmin() fiber.Handler {
	return g.requireRole(entity.RoleAdmin, "authentication failed (not admin)")
}

// RequireUber exige rol uber-admin.
func (g *SessionGates) RequireUber() fiber.Handler {
	return g.requireRole(entity.RoleUberAdmin, "authentication failed (not uber admin)")
}

// GetSession devuelve la sesión resuelta del contexto (después de un
// guard). Nil si ningún guard corrió antes.
func GetSession(c *fiber.Ctx) *session.Session {
	v := c.Locals(LocalSession)
	if v == nil {
		return nil
	}
	s, _ := v.(*session.Session)
	return s
}

// bearerToken extrae el token del header Authorization ("Bearer <token>").
// Devuelve "" si el header falta o no tiene ese formato.
func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
