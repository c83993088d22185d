package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/painel-vendas/internal/application/dto"
	"github.com/jhoicas/painel-vendas/internal/application/usecase"
)

// ReportHandler maneja el constructor de relatórios (Análise Detalhada).
type ReportHandler struct {
	uc *usecase.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *usecase.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Options godoc
// @Summary      Opciones del formulario de relatórios
// @Description  Métricas, agrupaciones, períodos, franjas horarias y listas de filtros.
//
//	Si las listas no cargan se devuelven vacías con un aviso.
//
// @Tags         reports
// @Produce      json
// @Success      200  {object}  dto.ReportOptionsDTO
// @Router       /api/reports/options [get]
func (h *ReportHandler) Options(c *fiber.Ctx) error {
	return c.JSON(h.uc.Options(c.UserContext()))
}

// Generate godoc
// @Summary      Genera un relatório
// @Tags         reports
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReportRequest  true  "Selección del usuario"
// @Success      200  {object}  dto.ReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/reports [post]
func (h *ReportHandler) Generate(c *fiber.Ctx) error {
	var req dto.ReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: CodeBadBody, Message: "cuerpo de la petición inválido",
		})
	}

	report, err := h.uc.Generate(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}

// Export godoc
// @Summary      Exporta un relatório
// @Description  Mismo cuerpo que POST /api/reports. Devuelve el archivo como adjunto
//
//	relatorio_<metrica>_por_<agrupamento>.<formato>.
//
// @Tags         reports
// @Accept       json
// @Produce      octet-stream
// @Param        formato  query  string             false  "csv | xlsx | pdf (default csv)"
// @Param        body     body   dto.ReportRequest  true   "Selección del usuario"
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/reports/export [post]
func (h *ReportHandler) Export(c *fiber.Ctx) error {
	var req dto.ReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: CodeBadBody, Message: "cuerpo de la petición inválido",
		})
	}

	file, err := h.uc.Export(c.UserContext(), req, c.Query("formato", "csv"))
	if err != nil {
		return respondError(c, err)
	}

	c.Set(fiber.HeaderContentType, file.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", file.Filename))
	return c.Send(file.Content)
}
