package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bazar-api/internal/domain"
	"github.com/jhoicas/bazar-api/internal/domain/entity"
)

// LocalUser key de Fiber locals con el *entity.User autenticado.
const LocalUser = "current_user"

// Authenticator resuelve un token Bearer al usuario dueño (implementado por auth.AuthUseCase).
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*entity.User, error)
}

// AuthMiddleware exige `Authorization: Bearer <token>`, resuelve el usuario y lo guarda en locals.
// Cualquier fallo de autenticación responde 401 con el mismo cuerpo.
func AuthMiddleware(auth Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return respondError(c, domain.ErrUnauthorized)
		}
		user, err := auth.Authenticate(c.UserContext(), token)
		if err != nil {
			return respondError(c, err)
		}
		c.Locals(LocalUser, user)
		return c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// CurrentUser devuelve el usuario autenticado (después de AuthMiddleware); nil si no hay.
func CurrentUser(c *fiber.Ctx) *entity.User {
	user, _ := c.Locals(LocalUser).(*entity.User)
	return user
}
