package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapProfileRole(t *testing.T) {
	assert.Equal(t, RoleDirection, MapProfileRole("direction"))
	assert.Equal(t, RoleAdmin, MapProfileRole("  Admin "), "Роль должна нормализоваться по регистру и пробелам")
	assert.Equal(t, RoleAgent, MapProfileRole("ceo"), "Неизвестная роль должна сворачиваться в agent")
	assert.Equal(t, RoleAgent, MapProfileRole(""))
}

func TestSubtractWidgets_PreservesOrder(t *testing.T) {
	available := []DashboardWidget{WidgetMTTR, WidgetFlux, WidgetWorkload, WidgetHealth, WidgetAlerts}
	hidden := []DashboardWidget{WidgetFlux, WidgetAlerts}

	visible := SubtractWidgets(available, hidden)
	assert.Equal(t, []DashboardWidget{WidgetMTTR, WidgetWorkload, WidgetHealth}, visible,
		"Порядок available должен сохраняться")
}

func TestSubtractWidgets_IgnoresForeignHidden(t *testing.T) {
	available := []DashboardWidget{WidgetWorkload, WidgetAlerts}
	hidden := []DashboardWidget{WidgetMTTR, "nonexistent"}

	visible := SubtractWidgets(available, hidden)
	assert.Equal(t, available, visible,
		"Скрытие виджета вне доступного набора не должно влиять на результат")
}

func TestSubtractWidgets_EmptyHidden(t *testing.T) {
	available := AllWidgets()
	assert.Equal(t, available, SubtractWidgets(available, nil))
}
