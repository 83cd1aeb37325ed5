package routes

import (
	"github.com/labstack/echo/v4"

	"ticketdesk/internal/controllers"
	"ticketdesk/pkg/middleware"
)

func runDashboardRouter(
	secureGroup *echo.Group,
	dashboardController *controllers.DashboardController,
	widgetController *controllers.WidgetController,
	authMW *middleware.AuthMiddleware,
) {
	dashboard := secureGroup.Group("/dashboard")

	dashboard.GET("/ceo", dashboardController.GetCEODashboard)
	dashboard.GET("/export", dashboardController.ExportDashboard)

	widgets := dashboard.Group("/widgets")
	widgets.GET("/config", widgetController.GetConfig)
	widgets.PUT("/preferences", widgetController.SavePreferences)
	widgets.PUT("/roles/:role", widgetController.UpdateRoleWidgets, authMW.RequireAdmin)
	widgets.POST("/initialize", widgetController.InitializeDefaults, authMW.RequireAdmin)
}
