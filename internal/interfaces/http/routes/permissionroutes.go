package routes

import (
	"github.com/gin-gonic/gin"

	"keygate/internal/interfaces/http/handlers"
)

// PermissionRouteConfig holds dependencies for access permission routes.
type PermissionRouteConfig struct {
	PermissionHandler *handlers.PermissionHandler
}

// SetupPermissionRoutes configures grant, revoke and query routes for
// access permissions.
func SetupPermissionRoutes(api *gin.RouterGroup, cfg *PermissionRouteConfig) {
	h := cfg.PermissionHandler

	permissions := api.Group("/permissions")
	{
		permissions.POST("/grant", h.GrantAccess)
		permissions.GET("", h.ListPermissions)

		// Snapshot store
		permissions.GET("/mirror/list", h.ListMirroredPermissions)
		permissions.GET("/mirror/download/:id", h.DownloadMirroredPermission)

		// Per user / per machine views
		permissions.GET("/user/:user_id", h.ListUserPermissions)
		permissions.GET("/user/:user_id/machine/:machine_id", h.GetUserMachinePermission)
		permissions.POST("/user/:user_id/machine/:machine_id/revoke", h.RevokeUserMachineAccess)
		permissions.GET("/machine/:machine_id", h.ListMachinePermissions)
		permissions.GET("/access/user/:user_id", h.GetUserAccess)
		permissions.GET("/access/machine/:machine_id", h.GetMachineAccess)

		// Generic parameterized routes (must come LAST)
		permissions.GET("/:id", h.GetPermission)
		permissions.PUT("/:id", h.UpdatePermission)
		permissions.POST("/:id/revoke", h.RevokePermission)
		permissions.DELETE("/:id", h.DeletePermission)
	}
}
