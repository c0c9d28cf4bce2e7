package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bazar-api/internal/application/dto"
	"github.com/jhoicas/bazar-api/internal/application/usecase"
)

// CatalogHandler maneja las peticiones HTTP para Catalog (protegido).
type CatalogHandler struct {
	uc *usecase.CatalogUseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *usecase.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// List godoc
// @Summary      Listar catálogos del usuario
// @Tags         catalogs
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.CatalogResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /v1/catalogs/ [get]
func (h *CatalogHandler) List(c *fiber.Ctx) error {
	ownerID, err := owner(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.List(c.UserContext(), ownerID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener catálogo por ID
// @Tags         catalogs
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del catálogo"
// @Success      200  {object}  dto.CatalogResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /v1/catalogs/{id} [get]
func (h *CatalogHandler) GetByID(c *fiber.Ctx) error {
	ownerID, err := owner(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.GetByID(c.UserContext(), ownerID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear catálogo
// @Tags         catalogs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCatalogRequest  true  "Datos del catálogo"
// @Success      201   {object}  dto.CatalogResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /v1/catalogs/ [post]
func (h *CatalogHandler) Create(c *fiber.Ctx) error {
	ownerID, err := owner(c)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.CreateCatalogRequest
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, errInvalidBody)
	}
	if err := validateStruct(in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), ownerID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar catálogo (parcial)
// @Tags         catalogs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del catálogo"
// @Param        body  body  dto.UpdateCatalogRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.CatalogResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /v1/catalogs/{id} [put]
func (h *CatalogHandler) Update(c *fiber.Ctx) error {
	ownerID, err := owner(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.UpdateCatalogRequest
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, errInvalidBody)
	}
	if err := validateStruct(in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), ownerID, id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar catálogo y sus productos
// @Tags         catalogs
// @Security     Bearer
// @Param        id   path  int  true  "ID del catálogo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /v1/catalogs/{id} [delete]
func (h *CatalogHandler) Delete(c *fiber.Ctx) error {
	ownerID, err := owner(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), ownerID, id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
