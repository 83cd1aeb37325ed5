package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"ticketdesk/internal/dto"
	"ticketdesk/internal/services"
	"ticketdesk/pkg/utils"
)

type DashboardController struct {
	dashboardService services.DashboardServiceInterface
	logger           *zap.Logger
}

func NewDashboardController(dashboardService services.DashboardServiceInterface, logger *zap.Logger) *DashboardController {
	return &DashboardController{
		dashboardService: dashboardService,
		logger:           logger,
	}
}

// GetCEODashboard - GET /api/dashboard/ceo.
func (ctrl *DashboardController) GetCEODashboard(c echo.Context) error {
	query, err := ctrl.parseQuery(c)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	role, err := utils.GetRoleFromCtx(c.Request().Context())
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	payload, err := ctrl.dashboardService.GetCEODashboard(c.Request().Context(), role, query)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, payload, "Дашборд успешно сформирован", http.StatusOK)
}

// ExportDashboard - GET /api/dashboard/export: тот же груз, но в XLSX.
func (ctrl *DashboardController) ExportDashboard(c echo.Context) error {
	query, err := ctrl.parseQuery(c)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	role, err := utils.GetRoleFromCtx(c.Request().Context())
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	payload, err := ctrl.dashboardService.GetCEODashboard(c.Request().Context(), role, query)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return ctrl.respondWithXLSX(c, payload)
}

func (ctrl *DashboardController) parseQuery(c echo.Context) (dto.CEODashboardQueryDTO, error) {
	var query dto.CEODashboardQueryDTO
	if err := c.Bind(&query); err != nil {
		return query, err
	}
	// Поддерживаем оба формата: products=a&products=b и products=a,b.
	query.Products = splitCSV(query.Products)
	query.Teams = splitCSV(query.Teams)
	query.Types = splitCSV(query.Types)
	if err := c.Validate(&query); err != nil {
		return query, err
	}
	return query, nil
}

func splitCSV(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

var dashboardExportHeaders = []string{
	"Показатель", "Значение", "Тренд, %",
}

func (ctrl *DashboardController) respondWithXLSX(c echo.Context, payload *dto.CEODashboardDTO) error {
	f := excelize.NewFile()
	sheet := "Дашборд"
	f.SetSheetName("Sheet1", sheet)
	f.SetSheetRow(sheet, "A1", &dashboardExportHeaders)
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheet, "A1", "C1", style)

	rows := [][]interface{}{
		{"Период", payload.Period, ""},
		{"Начало периода", payload.PeriodStart, ""},
		{"Конец периода", payload.PeriodEnd, ""},
		{"Открыто заявок", payload.Flux.Opened, payload.Flux.OpenedTrend},
		{"Решено заявок", payload.Flux.Resolved, payload.Flux.ResolvedTrend},
		{"Доля решенных, %", payload.Flux.ResolutionRate, ""},
		{"MTTR", utils.FormatDaysHumanReadable(payload.MTTR.Global), payload.MTTR.Trend},
		{"Активных заявок", payload.Workload.TotalActive, ""},
	}
	for _, p := range payload.Health.ByProduct {
		rows = append(rows, []interface{}{
			fmt.Sprintf("Здоровье: %s", p.ProductName),
			fmt.Sprintf("%s (%.1f%% багов)", p.HealthStatus, p.BugRate),
			"",
		})
	}
	for _, a := range payload.Alerts {
		rows = append(rows, []interface{}{
			fmt.Sprintf("Алерт [%s]", a.Priority),
			a.Title,
			"",
		})
	}

	for i := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		f.SetSheetRow(sheet, cell, &rows[i])
	}
	f.SetColWidth(sheet, "A", "A", 30)
	f.SetColWidth(sheet, "B", "B", 35)

	fileName := fmt.Sprintf("dashboard_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().Header().Set("Content-Disposition", "attachment; filename="+fileName)
	c.Response().WriteHeader(http.StatusOK)
	return f.Write(c.Response().Writer)
}
