package routes

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gearguard/internal/controllers"
	"gearguard/internal/repositories"
	"gearguard/internal/services"
	"gearguard/pkg/middleware"
	"gearguard/pkg/service"
)

// InitRouter собирает весь граф зависимостей: репозитории -> сервисы ->
// контроллеры -> маршруты. Все маршруты живут под /api.
func InitRouter(e *echo.Echo, dbConn *pgxpool.Pool, jwtSvc service.JWTService, logger *zap.Logger) {
	logger.Info("InitRouter: Начало создания маршрутов")

	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(jwtSvc, logger)
	txManager := repositories.NewTxManager(dbConn)

	// --- РЕПОЗИТОРИИ ---
	userRepo := repositories.NewUserRepository(dbConn, logger)
	teamRepo := repositories.NewTeamRepository(dbConn)
	equipmentRepo := repositories.NewEquipmentRepository(dbConn)
	requestRepo := repositories.NewRequestRepository(dbConn, logger)
	analyticsRepo := repositories.NewAnalyticsRepository(dbConn)

	// --- СЕРВИСЫ ---
	authService := services.NewAuthService(userRepo, jwtSvc, logger)
	userService := services.NewUserService(userRepo, logger)
	teamService := services.NewTeamService(teamRepo, userRepo, txManager, logger)
	equipmentService := services.NewEquipmentService(equipmentRepo, teamRepo, userRepo, requestRepo, logger)
	requestService := services.NewRequestService(requestRepo, equipmentRepo, teamRepo, userRepo, txManager, logger)
	analyticsService := services.NewAnalyticsService(analyticsRepo, teamRepo, logger)

	// --- КОНТРОЛЛЕРЫ ---
	authCtrl := controllers.NewAuthController(authService, logger)
	userCtrl := controllers.NewUserController(userService, logger)
	teamCtrl := controllers.NewTeamController(teamService, logger)
	equipmentCtrl := controllers.NewEquipmentController(equipmentService, logger)
	requestCtrl := controllers.NewRequestController(requestService, logger)
	analyticsCtrl := controllers.NewAnalyticsController(analyticsService, logger)
	reportCtrl := controllers.NewReportController(requestService, logger)

	// --- РОУТЕРЫ ---
	runAuthRouter(api, authCtrl, authMW)
	runUserRouter(api, userCtrl)
	runTeamRouter(api, teamCtrl)
	runEquipmentRouter(api, equipmentCtrl)
	runRequestRouter(api, requestCtrl)
	runAnalyticsRouter(api, analyticsCtrl, reportCtrl)

	logger.Info("InitRouter: Создание маршрутов завершено")
}
