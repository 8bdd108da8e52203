package http

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ordering-api/internal/domain"
	"github.com/jhoicas/Ordering-api/internal/domain/entity"
	"github.com/jhoicas/Ordering-api/internal/domain/policy"
	"github.com/jhoicas/Ordering-api/internal/infrastructure/metrics"
)

// HeaderUserID cabecera con la que el cliente afirma su identidad.
const HeaderUserID = "X-User-Id"

// LocalActor key en c.Locals para el usuario resuelto.
const LocalActor = "actor"

// actorResolver es el contrato mínimo del middleware; lo implementa *usecase.UserUseCase.
type actorResolver interface {
	ResolveActor(ctx context.Context, userID string) (*entity.User, error)
}

// IdentityMiddleware resuelve X-User-Id contra el store y deja el usuario en c.Locals.
// Cabecera ausente o usuario desconocido no cortan la petición: la ruta decide si exige actor.
func IdentityMiddleware(users actorResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := strings.TrimSpace(c.Get(HeaderUserID))
		if userID == "" {
			return c.Next()
		}
		actor, err := users.ResolveActor(c.UserContext(), userID)
		if err != nil {
			return respondError(c, err)
		}
		if actor != nil {
			c.Locals(LocalActor, actor)
		}
		return c.Next()
	}
}

// GetActor devuelve el usuario resuelto por IdentityMiddleware (nil si no hay).
func GetActor(c *fiber.Ctx) *entity.User {
	u, _ := c.Locals(LocalActor).(*entity.User)
	return u
}

// RequirePermission corta con 401 si no hay actor y 403 si su rol no permite la acción.
// Debe usarse DESPUÉS de IdentityMiddleware.
func RequirePermission(engine *policy.Engine, action policy.Action, m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := engine.Require(GetActor(c), action); err != nil {
			recordDenial(m, action, err)
			return respondError(c, err)
		}
		return c.Next()
	}
}

// recordDenial cuenta rechazos de autorización (rol o alcance).
func recordDenial(m *metrics.Metrics, action policy.Action, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		m.IncAuthorizationDenial(string(action), "unauthenticated")
	case errors.Is(err, domain.ErrForbidden):
		m.IncAuthorizationDenial(string(action), "forbidden")
	}
}
