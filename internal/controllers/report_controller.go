package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"worktrack-portal/internal/dto"
	"worktrack-portal/internal/entities"
	"worktrack-portal/internal/services"
	"worktrack-portal/pkg/constants"
	apperrors "worktrack-portal/pkg/errors"
	"worktrack-portal/pkg/utils"
)

// Потолок выгрузки в Excel за один запрос.
const exportLimit = 10000

var exportHeaders = []interface{}{
	"Код", "Название", "Статус", "Приоритет", "Тип бизнеса",
	"Бюджет от", "Бюджет до", "Валюта", "Срок", "Создан", "Обновлен",
}

// ReportController - выгрузка заказов в Excel. Клиент выгружает только
// свои заказы: фильтрация та же, что и в обычном списке.
type ReportController struct {
	orderService services.OrderServiceInterface
	logger       *zap.Logger
}

func NewReportController(orderService services.OrderServiceInterface, logger *zap.Logger) *ReportController {
	return &ReportController{orderService: orderService, logger: logger}
}

func (c *ReportController) ExportOrders(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	scope, err := scopeFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	filter := dto.ListOrdersDTO{
		Status: ctx.QueryParam("status"),
		Limit:  exportLimit,
	}
	if filter.Status != "" && !constants.IsValidOrderStatus(filter.Status) {
		return utils.ErrorResponse(ctx, fmt.Errorf("неизвестный статус: %w", apperrors.ErrBadRequest))
	}

	orders, _, err := c.orderService.ListOrders(reqCtx, scope, filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	return c.respondWithXLSX(ctx, orders)
}

func (c *ReportController) respondWithXLSX(ctx echo.Context, orders []entities.Order) error {
	f := excelize.NewFile()
	sheet := "Заказы"
	f.SetSheetName("Sheet1", sheet)
	f.SetSheetRow(sheet, "A1", &exportHeaders)
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheet, "A1", "K1", style)

	for i, order := range orders {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := orderToRow(order)
		f.SetSheetRow(sheet, cell, &row)
	}
	f.SetColWidth(sheet, "B", "B", 40)
	f.SetColWidth(sheet, "C", "E", 18)
	f.SetColWidth(sheet, "I", "K", 20)

	fileName := fmt.Sprintf("orders_%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().Header().Set("Content-Disposition", "attachment; filename="+fileName)
	ctx.Response().WriteHeader(http.StatusOK)
	return f.Write(ctx.Response().Writer)
}

func orderToRow(order entities.Order) []interface{} {
	const dateFmt = "02.01.2006 15:04"

	dueDate := ""
	if order.DueDate.Valid {
		dueDate = order.DueDate.Time.Format("02.01.2006")
	}
	budgetMin, budgetMax := "", ""
	if order.BudgetMin.Valid {
		budgetMin = fmt.Sprintf("%.2f", order.BudgetMin.Float64)
	}
	if order.BudgetMax.Valid {
		budgetMax = fmt.Sprintf("%.2f", order.BudgetMax.Float64)
	}

	return []interface{}{
		order.Code, order.Title, constants.StatusLabel(order.Status),
		order.Priority.String, order.BusinessType.String,
		budgetMin, budgetMax, order.Currency.String, dueDate,
		order.CreatedAt.Format(dateFmt), order.UpdatedAt.Format(dateFmt),
	}
}
