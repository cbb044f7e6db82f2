package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/bodega-api/internal/application/dto"
	"github.com/tu-usuario/bodega-api/internal/application/report"
)

// ReportHandler expone el reporte de estado de stock bajo demanda (solo admin).
type ReportHandler struct {
	uc *report.StockReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.StockReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// StockReport godoc
// @Summary      Descargar reporte de estado de stock (PDF)
// @Description  Genera el mismo reporte que el worker envía a diario y lo
//
//	devuelve como descarga. Restringido a admin.
//
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}    file
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/reports/stock [get]
func (h *ReportHandler) StockReport(c *fiber.Ctx) error {
	data, pdf, err := h.uc.Generate(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	filename := fmt.Sprintf("stock_report_%s.pdf", data.GeneratedAt.Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}
