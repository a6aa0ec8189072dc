package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/farmacia-pro/internal/application/dto"
	"github.com/tu-usuario/farmacia-pro/internal/application/sales"
	"github.com/tu-usuario/farmacia-pro/internal/application/usecase"
	"github.com/tu-usuario/farmacia-pro/internal/domain/repository"
	"github.com/tu-usuario/farmacia-pro/internal/infrastructure/export"
)

// DashboardHandler maneja el resumen operativo, el reporte de ventas y su
// exportación a XML.
type DashboardHandler struct {
	uc       *usecase.DashboardUseCase
	saleUC   *sales.SaleUseCase
	exporter *export.SalesXMLExporter
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *usecase.DashboardUseCase, saleUC *sales.SaleUseCase, exporter *export.SalesXMLExporter) *DashboardHandler {
	return &DashboardHandler{uc: uc, saleUC: saleUC, exporter: exporter}
}

// Summary godoc
// @Summary      Resumen operativo del día
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryResponse
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SalesReport godoc
// @Summary      Reporte de ventas por rango de fechas
// @Description  Serie diaria, desglose por método de pago y top 10 de medicamentos por ingreso.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  true  "Fecha inicial YYYY-MM-DD"
// @Param        to    query  string  true  "Fecha final YYYY-MM-DD"
// @Success      200   {object}  dto.SalesReportResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reports/sales [get]
func (h *DashboardHandler) SalesReport(c *fiber.Ctx) error {
	from, to, err := parseReportRange(c.Query("from"), c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: err.Error()})
	}
	out, err := h.uc.SalesReport(c.UserContext(), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ExportSales godoc
// @Summary      Exportar ventas de un rango a XML
// @Tags         dashboard
// @Security     Bearer
// @Produce      application/xml
// @Param        from  query  string  true  "Fecha inicial YYYY-MM-DD"
// @Param        to    query  string  true  "Fecha final YYYY-MM-DD"
// @Success      200   {file}    file
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reports/sales/export [get]
func (h *DashboardHandler) ExportSales(c *fiber.Ctx) error {
	from, to, err := parseReportRange(c.Query("from"), c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: err.Error()})
	}
	list, err := h.saleUC.ListSales(c.UserContext(), repository.SaleFilter{
		From:  from,
		To:    to.Add(24*time.Hour - time.Nanosecond),
		Limit: 10000,
	})
	if err != nil {
		return respondError(c, err)
	}
	xmlBytes, err := h.exporter.Export(from.Format("2006-01-02"), to.Format("2006-01-02"), list)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/xml")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="ventas-%s-%s.xml"`, from.Format("20060102"), to.Format("20060102")))
	return c.Send(xmlBytes)
}

// parseReportRange valida el rango obligatorio de los reportes.
func parseReportRange(fromStr, toStr string) (time.Time, time.Time, error) {
	if fromStr == "" || toStr == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("los parámetros 'from' y 'to' son obligatorios (YYYY-MM-DD)")
	}
	from, err := time.Parse("2006-01-02", fromStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("fecha 'from' inválida: %s", fromStr)
	}
	to, err := time.Parse("2006-01-02", toStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("fecha 'to' inválida: %s", toStr)
	}
	return from, to, nil
}
