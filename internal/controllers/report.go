package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/services"
	"gearguard/pkg/utils"
)

type ReportController struct {
	requestService services.RequestServiceInterface
	logger         *zap.Logger
}

func NewReportController(requestService services.RequestServiceInterface, logger *zap.Logger) *ReportController {
	return &ReportController{requestService: requestService, logger: logger}
}

// GetReport выгружает заявки отчётом: по умолчанию JSON, при ?format=xlsx —
// файл Excel. Фильтры те же, что у списка заявок.
func (c *ReportController) GetReport(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	filter := dto.RequestFilter{
		Stage:       ctx.QueryParam("stage"),
		RequestType: ctx.QueryParam("request_type"),
	}
	format := strings.ToLower(ctx.QueryParam("format"))
	c.logger.Debug("Запрос на отчет по заявкам", zap.Any("filter", filter), zap.String("format", format))

	data, err := c.requestService.GetRequests(reqCtx, filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if format == "xlsx" {
		return c.respondWithXLSX(ctx, data)
	}
	return ctx.JSON(http.StatusOK, data)
}

var reportHeaders = []string{
	"№", "Тема", "Тип", "Оборудование", "Категория", "Команда",
	"Техник", "Этап", "Приоритет", "Часы", "Плановая дата", "Создана",
}

func requestRow(n int, item entities.Request) []interface{} {
	return []interface{}{
		n, item.Subject, item.RequestType, item.EquipmentName.String,
		item.EquipmentCategory.String, item.TeamName.String,
		item.AssignedTechnicianName.String, item.Stage, item.Priority,
		fmt.Sprintf("%.2f", item.HoursSpent), item.ScheduledDate.String,
		item.CreatedAt.Format("02.01.2006 15:04"),
	}
}

func (c *ReportController) respondWithXLSX(ctx echo.Context, data []entities.Request) error {
	f := excelize.NewFile()
	sheet := "Отчет по заявкам"
	f.SetSheetName("Sheet1", sheet)
	f.SetSheetRow(sheet, "A1", &reportHeaders)
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheet, "A1", "L1", style)

	for i, item := range data {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := requestRow(i+1, item)
		f.SetSheetRow(sheet, cell, &row)
	}
	f.SetColWidth(sheet, "B", "B", 35)
	f.SetColWidth(sheet, "D", "G", 25)
	f.SetColWidth(sheet, "K", "L", 18)

	fileName := fmt.Sprintf("report_%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().Header().Set("Content-Disposition", "attachment; filename="+fileName)
	ctx.Response().WriteHeader(http.StatusOK)
	return f.Write(ctx.Response().Writer)
}
