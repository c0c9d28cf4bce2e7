package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bazar-api/internal/domain"
)

// pathID lee :id como entero positivo. Un id no numérico no puede existir: se trata como 404.
func pathID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrNotFound
	}
	return id, nil
}

// owner devuelve el usuario autenticado o ErrUnauthorized si la ruta no pasó por AuthMiddleware.
func owner(c *fiber.Ctx) (int64, error) {
	user := CurrentUser(c)
	if user == nil {
		return 0, domain.ErrUnauthorized
	}
	return user.ID, nil
}
