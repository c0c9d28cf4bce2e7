package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bazar-api/internal/application/dto"
	"github.com/jhoicas/bazar-api/internal/application/usecase"
	"github.com/jhoicas/bazar-api/internal/domain"
)

// UserHandler cuenta del usuario autenticado.
type UserHandler struct {
	uc *usecase.UserUseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// Me godoc
// @Summary      Usuario autenticado
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /v1/users/me [get]
func (h *UserHandler) Me(c *fiber.Ctx) error {
	user := CurrentUser(c)
	if user == nil {
		return respondError(c, domain.ErrUnauthorized)
	}
	return c.JSON(h.uc.Me(user))
}

// Update godoc
// @Summary      Actualizar cuenta (parcial)
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateUserRequest  true  "username, email y/o password"
// @Success      200   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /v1/users/me [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	userID, err := owner(c)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.UpdateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, errInvalidBody)
	}
	if err := validateStruct(in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), userID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar cuenta y todos sus recursos
// @Tags         users
// @Security     Bearer
// @Success      204
// @Router       /v1/users/me [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	userID, err := owner(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), userID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
