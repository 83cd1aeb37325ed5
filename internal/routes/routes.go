package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"ticketdesk/internal/controllers"
	"ticketdesk/internal/repositories"
	"ticketdesk/internal/services"
	"ticketdesk/pkg/config"
	"ticketdesk/pkg/middleware"
	"ticketdesk/pkg/service"
)

type Loggers struct {
	Main      *zap.Logger
	Auth      *zap.Logger
	Dashboard *zap.Logger
}

func InitRouter(e *echo.Echo, dbConn *pgxpool.Pool, redisClient *redis.Client, jwtSvc service.JWTService, loggers *Loggers, cfg *config.Config) {
	loggers.Main.Info("InitRouter: Начало создания маршрутов")

	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(jwtSvc, loggers.Auth)
	txManager := repositories.NewTxManager(dbConn)

	// --- РЕПОЗИТОРИИ ---
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)
	profileRepo := repositories.NewProfileRepository(dbConn, loggers.Main)
	dashboardRepo := repositories.NewDashboardRepository(dbConn, loggers.Dashboard)
	widgetRepo := repositories.NewWidgetRepository(dbConn, txManager, loggers.Dashboard)

	// --- СЕРВИСЫ ---
	authService := services.NewAuthService(profileRepo, jwtSvc, loggers.Auth)
	dashboardService := services.NewDashboardService(dashboardRepo, cacheRepo, cfg.Dashboard, loggers.Dashboard)
	widgetService := services.NewWidgetService(widgetRepo, cacheRepo, cfg.Dashboard, loggers.Dashboard)

	// --- КОНТРОЛЛЕРЫ ---
	authController := controllers.NewAuthController(authService, loggers.Auth)
	dashboardController := controllers.NewDashboardController(dashboardService, loggers.Dashboard)
	widgetController := controllers.NewWidgetController(widgetService, loggers.Dashboard)

	// --- РОУТЕРЫ ---
	secureGroup := api.Group("", authMW.Auth)

	runAuthRouter(api, authController)
	runDashboardRouter(secureGroup, dashboardController, widgetController, authMW)

	loggers.Main.Info("InitRouter: Создание маршрутов завершено")
}
