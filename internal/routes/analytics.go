package routes

import (
	"github.com/labstack/echo/v4"

	"gearguard/internal/controllers"
)

func runAnalyticsRouter(api *echo.Group, analyticsCtrl *controllers.AnalyticsController, reportCtrl *controllers.ReportController) {
	analyticsGroup := api.Group("/analytics")
	{
		analyticsGroup.GET("/dashboard", analyticsCtrl.GetDashboard)
		analyticsGroup.GET("/requests-by-category", analyticsCtrl.GetRequestsByCategory)
		analyticsGroup.GET("/requests-by-team", analyticsCtrl.GetRequestsByTeam)
		analyticsGroup.GET("/report", reportCtrl.GetReport)
	}
}
