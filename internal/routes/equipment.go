package routes

import (
	"github.com/labstack/echo/v4"

	"gearguard/internal/controllers"
)

func runEquipmentRouter(api *echo.Group, equipmentCtrl *controllers.EquipmentController) {
	api.GET("/equipment", equipmentCtrl.GetEquipments)
	api.POST("/equipment", equipmentCtrl.CreateEquipment)
	api.GET("/equipment/:id", equipmentCtrl.FindEquipment)
	api.PUT("/equipment/:id", equipmentCtrl.UpdateEquipment)
	api.DELETE("/equipment/:id", equipmentCtrl.DeleteEquipment)
	api.GET("/equipment/:id/requests", equipmentCtrl.GetEquipmentRequests)
}
