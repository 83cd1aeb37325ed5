package routes

import (
	"github.com/labstack/echo/v4"

	"ticketdesk/internal/controllers"
)

func runAuthRouter(api *echo.Group, authController *controllers.AuthController) {
	api.POST("/auth/login", authController.Login)
}
