package routes

import (
	"github.com/gin-gonic/gin"

	"keygate/internal/interfaces/http/handlers"
)

// UserRouteConfig holds dependencies for user management routes.
type UserRouteConfig struct {
	UserHandler *handlers.UserHandler
}

// SetupUserRoutes configures user management routes.
func SetupUserRoutes(api *gin.RouterGroup, cfg *UserRouteConfig) {
	users := api.Group("/users")
	{
		users.POST("", cfg.UserHandler.CreateUser)
		users.GET("", cfg.UserHandler.ListUsers)

		// Specific named endpoints (must come BEFORE /:id to avoid conflicts)
		users.GET("/username/:username", cfg.UserHandler.GetUserByUsername)
		users.GET("/type/:user_type", cfg.UserHandler.ListUsersByType)

		users.GET("/:id", cfg.UserHandler.GetUser)
		users.PUT("/:id", cfg.UserHandler.UpdateUser)
		users.DELETE("/:id", cfg.UserHandler.DeleteUser)
	}
}
