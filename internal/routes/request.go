package routes

import (
	"github.com/labstack/echo/v4"

	"gearguard/internal/controllers"
)

func runRequestRouter(api *echo.Group, requestCtrl *controllers.RequestController) {
	api.GET("/requests", requestCtrl.GetRequests)
	api.POST("/requests", requestCtrl.CreateRequest)
	api.GET("/requests/calendar", requestCtrl.GetCalendar)
	api.GET("/requests/:id", requestCtrl.FindRequest)
	api.PUT("/requests/:id", requestCtrl.UpdateRequest)
	api.PATCH("/requests/:id/stage", requestCtrl.PatchStage)
	api.DELETE("/requests/:id", requestCtrl.DeleteRequest)
}
