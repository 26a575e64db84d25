package routes

import (
	"github.com/gin-gonic/gin"

	"keygate/internal/interfaces/http/handlers"
)

// MachineRouteConfig holds dependencies for machine routes.
type MachineRouteConfig struct {
	MachineHandler *handlers.MachineHandler
}

// SetupMachineRoutes configures machine routes.
func SetupMachineRoutes(api *gin.RouterGroup, cfg *MachineRouteConfig) {
	machines := api.Group("/machines")
	{
		machines.POST("", cfg.MachineHandler.CreateMachine)
		machines.GET("", cfg.MachineHandler.ListMachines)

		// Specific named endpoints (must come BEFORE /:id to avoid conflicts)
		machines.GET("/active", cfg.MachineHandler.ListActiveMachines)
		machines.GET("/name/:machine_name", cfg.MachineHandler.GetMachineByName)
		machines.GET("/type/:machine_type", cfg.MachineHandler.ListMachinesByType)

		machines.GET("/:id", cfg.MachineHandler.GetMachine)
		machines.PUT("/:id", cfg.MachineHandler.UpdateMachine)
		machines.DELETE("/:id", cfg.MachineHandler.DeleteMachine)
	}
}
