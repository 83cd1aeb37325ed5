package dto

import "ticketdesk/pkg/types"

// SaveWidgetPreferencesDTO - полная замена скрытого набора пользователя.
// Инкрементальных правок нет: что пришло, то и сохраняется.
type SaveWidgetPreferencesDTO struct {
	// Пустой список легален: он очищает все скрытия.
	HiddenWidgets []string `json:"hiddenWidgets" validate:"dive,dashboard_widget"`
}

// UpdateRoleWidgetsDTO - полная замена набора виджетов роли (только админ).
type UpdateRoleWidgetsDTO struct {
	Role    string   `param:"role" validate:"required,dashboard_role"`
	Widgets []string `json:"widgets" validate:"dive,dashboard_widget"`
}

// ResolvedWidgetConfigDTO - ответ GET /api/dashboard/widgets/config.
type ResolvedWidgetConfigDTO struct {
	Role             types.DashboardRole     `json:"role"`
	AvailableWidgets []types.DashboardWidget `json:"available_widgets"`
	VisibleWidgets   []types.DashboardWidget `json:"visible_widgets"`
	HiddenWidgets    []types.DashboardWidget `json:"hidden_widgets"`
}
