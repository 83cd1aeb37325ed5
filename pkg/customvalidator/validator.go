// Файл: pkg/customvalidator/validator.go

package customvalidator

import (
	"github.com/go-playground/validator/v10"

	"ticketdesk/pkg/types"
)

// RegisterCustomValidations регистрирует доменные правила валидации
// в переданном экземпляре валидатора.
func RegisterCustomValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("dashboard_widget", isKnownWidget); err != nil {
		return err
	}
	if err := v.RegisterValidation("dashboard_role", isKnownRole); err != nil {
		return err
	}
	return nil
}

func isKnownWidget(fl validator.FieldLevel) bool {
	return types.IsKnownWidget(types.DashboardWidget(fl.Field().String()))
}

func isKnownRole(fl validator.FieldLevel) bool {
	switch types.DashboardRole(fl.Field().String()) {
	case types.RoleDirection, types.RoleManager, types.RoleAgent, types.RoleAdmin:
		return true
	}
	return false
}
