package types

import "strings"

// DashboardWidget - идентификатор визуального блока дашборда.
type DashboardWidget string

const (
	WidgetMTTR     DashboardWidget = "mttr"
	WidgetFlux     DashboardWidget = "flux"
	WidgetWorkload DashboardWidget = "workload"
	WidgetHealth   DashboardWidget = "health"
	WidgetAlerts   DashboardWidget = "alerts"
)

// AllWidgets - полный набор известных виджетов (порядок фиксирован для стабильного вывода).
func AllWidgets() []DashboardWidget {
	return []DashboardWidget{WidgetMTTR, WidgetFlux, WidgetWorkload, WidgetHealth, WidgetAlerts}
}

// IsKnownWidget проверяет, что идентификатор входит в реестр виджетов.
func IsKnownWidget(w DashboardWidget) bool {
	switch w {
	case WidgetMTTR, WidgetFlux, WidgetWorkload, WidgetHealth, WidgetAlerts:
		return true
	}
	return false
}

// DashboardRole - одна из четырех ролей дашборда.
type DashboardRole string

const (
	RoleDirection DashboardRole = "direction"
	RoleManager   DashboardRole = "manager"
	RoleAgent     DashboardRole = "agent"
	RoleAdmin     DashboardRole = "admin"
)

// AllRoles перечисляет роли дашборда.
func AllRoles() []DashboardRole {
	return []DashboardRole{RoleDirection, RoleManager, RoleAgent, RoleAdmin}
}

// MapProfileRole сворачивает произвольную строку роли профиля в роль дашборда.
// Неизвестные значения всегда превращаются в agent - это защита от пустого дашборда,
// а не ошибка.
func MapProfileRole(raw string) DashboardRole {
	switch DashboardRole(strings.ToLower(strings.TrimSpace(raw))) {
	case RoleDirection:
		return RoleDirection
	case RoleManager:
		return RoleManager
	case RoleAdmin:
		return RoleAdmin
	case RoleAgent:
		return RoleAgent
	default:
		return RoleAgent
	}
}

// ResolvedWidgetConfig - производная конфигурация: видимое = доступное минус скрытое.
// Никогда не хранится в БД.
type ResolvedWidgetConfig struct {
	Role             DashboardRole     `json:"role"`
	AvailableWidgets []DashboardWidget `json:"available_widgets"`
	VisibleWidgets   []DashboardWidget `json:"visible_widgets"`
	HiddenWidgets    []DashboardWidget `json:"hidden_widgets"`
}

// SubtractWidgets возвращает available без элементов hidden, сохраняя порядок available.
// Скрытые виджеты вне available молча игнорируются (идемпотентное вычитание).
func SubtractWidgets(available, hidden []DashboardWidget) []DashboardWidget {
	hiddenSet := make(map[DashboardWidget]struct{}, len(hidden))
	for _, w := range hidden {
		hiddenSet[w] = struct{}{}
	}

	visible := make([]DashboardWidget, 0, len(available))
	for _, w := range available {
		if _, ok := hiddenSet[w]; !ok {
			visible = append(visible, w)
		}
	}
	return visible
}
