package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"ticketdesk/internal/dto"
	"ticketdesk/internal/services"
	"ticketdesk/pkg/utils"
)

type WidgetController struct {
	widgetService services.WidgetServiceInterface
	logger        *zap.Logger
}

func NewWidgetController(widgetService services.WidgetServiceInterface, logger *zap.Logger) *WidgetController {
	return &WidgetController{widgetService: widgetService, logger: logger}
}

// GetConfig - GET /api/dashboard/widgets/config.
// Конфигурация вычисляется для владельца токена, параметров нет.
func (ctrl *WidgetController) GetConfig(c echo.Context) error {
	reqCtx := c.Request().Context()

	userID, err := utils.GetUserIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	role, err := utils.GetRoleFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	resolved, err := ctrl.widgetService.ResolveConfig(reqCtx, userID, role)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	body := dto.ResolvedWidgetConfigDTO{
		Role:             resolved.Role,
		AvailableWidgets: resolved.AvailableWidgets,
		VisibleWidgets:   resolved.VisibleWidgets,
		HiddenWidgets:    resolved.HiddenWidgets,
	}
	return utils.SuccessResponse(c, body, "Конфигурация виджетов получена", http.StatusOK)
}

// SavePreferences - PUT /api/dashboard/widgets/preferences.
// Полная замена скрытого набора владельца токена.
func (ctrl *WidgetController) SavePreferences(c echo.Context) error {
	reqCtx := c.Request().Context()

	userID, err := utils.GetUserIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	var payload dto.SaveWidgetPreferencesDTO
	if err := c.Bind(&payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	if err := c.Validate(&payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	if err := ctrl.widgetService.SaveUserPreferences(reqCtx, userID, payload.HiddenWidgets); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, nil, "Настройки виджетов сохранены", http.StatusOK)
}

// UpdateRoleWidgets - PUT /api/dashboard/widgets/roles/:role (только админ).
func (ctrl *WidgetController) UpdateRoleWidgets(c echo.Context) error {
	reqCtx := c.Request().Context()

	userID, err := utils.GetUserIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	var payload dto.UpdateRoleWidgetsDTO
	if err := c.Bind(&payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	if err := c.Validate(&payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	if err := ctrl.widgetService.UpdateRoleWidgets(reqCtx, payload.Role, payload.Widgets, userID); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, nil, "Набор виджетов роли обновлен", http.StatusOK)
}

// InitializeDefaults - POST /api/dashboard/widgets/initialize (только админ).
// Идемпотентна: уже настроенные роли не трогаются.
func (ctrl *WidgetController) InitializeDefaults(c echo.Context) error {
	reqCtx := c.Request().Context()

	userID, err := utils.GetUserIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	initialized, err := ctrl.widgetService.InitializeDefaults(reqCtx, userID)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, echo.Map{"initialized_roles": initialized},
		"Наборы виджетов по умолчанию инициализированы", http.StatusOK)
}
