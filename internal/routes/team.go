package routes

import (
	"github.com/labstack/echo/v4"

	"gearguard/internal/controllers"
)

func runTeamRouter(api *echo.Group, teamCtrl *controllers.TeamController) {
	api.GET("/teams", teamCtrl.GetTeams)
	api.POST("/teams", teamCtrl.CreateTeam)
	api.GET("/teams/:id", teamCtrl.FindTeam)
	api.PUT("/teams/:id", teamCtrl.UpdateTeam)
	api.DELETE("/teams/:id", teamCtrl.DeleteTeam)
}
