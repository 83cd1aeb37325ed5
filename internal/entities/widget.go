package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

// RoleWidget - строка dashboard_role_widgets: виджет, назначенный роли админом.
type RoleWidget struct {
	Role      string      `json:"role" db:"role"`
	WidgetID  string      `json:"widget_id" db:"widget_id"`
	Enabled   bool        `json:"enabled" db:"enabled"`
	UpdatedBy null.String `json:"updated_by" db:"updated_by"`
	UpdatedAt time.Time   `json:"updated_at" db:"updated_at"`
}

// UserWidgetPreference - строка dashboard_user_preferences: виджет,
// скрытый пользователем (visible=false).
type UserWidgetPreference struct {
	ProfileID string    `json:"profile_id" db:"profile_id"`
	WidgetID  string    `json:"widget_id" db:"widget_id"`
	Visible   bool      `json:"visible" db:"visible"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
