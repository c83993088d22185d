package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/painel-vendas/internal/application/usecase"
	"github.com/jhoicas/painel-vendas/internal/domain/entity"
)

// ReferenceHandler expone los catálogos de referencia y la marca del cabeçalho.
type ReferenceHandler struct {
	uc *usecase.ReferenceUseCase
}

// NewReferenceHandler construye el handler.
func NewReferenceHandler(uc *usecase.ReferenceUseCase) *ReferenceHandler {
	return &ReferenceHandler{uc: uc}
}

// Brand godoc
// @Summary      Nombre de la marca
// @Tags         reference
// @Produce      json
// @Success      200  {object}  dto.BrandDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/brand [get]
func (h *ReferenceHandler) Brand(c *fiber.Ctx) error {
	brand, err := h.uc.Brand(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(brand)
}

// List godoc
// @Summary      Catálogo de referencia
// @Tags         reference
// @Produce      json
// @Param        kind  path  string  true  "stores | channels | products | customers | brands"
// @Success      200  {object}  dto.ReferenceListDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/reference/{kind} [get]
func (h *ReferenceHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.UserContext(), entity.ReferenceKind(c.Params("kind")))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}
