package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/painel-vendas/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del Dashboard de vendas.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Load godoc
// @Summary      Carga completa del dashboard
// @Description  Ejecuta los siete widgets escalonados por turno. Un widget que falla
//
//	devuelve status "failed" con su mensaje; la respuesta sigue siendo 200.
//
// @Tags         dashboard
// @Produce      json
// @Param        periodo  query  string  false  "hoje | esta_semana | este_mes | mes_passado (default este_mes). Sólo afecta al faturamento."
// @Success      200  {object}  dto.DashboardDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Load(c *fiber.Ctx) error {
	d, err := h.uc.Load(c.UserContext(), c.Query("periodo"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(d)
}

// Widgets godoc
// @Summary      Definiciones de los widgets
// @Tags         dashboard
// @Produce      json
// @Success      200  {array}  dto.WidgetDefinitionDTO
// @Router       /api/dashboard/widgets [get]
func (h *DashboardHandler) Widgets(c *fiber.Ctx) error {
	return c.JSON(h.uc.Widgets())
}
