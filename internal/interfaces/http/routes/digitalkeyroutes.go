package routes

import (
	"github.com/gin-gonic/gin"

	"keygate/internal/interfaces/http/handlers"
)

// DigitalKeyRouteConfig holds dependencies for digital key routes.
type DigitalKeyRouteConfig struct {
	DigitalKeyHandler *handlers.DigitalKeyHandler
}

// SetupDigitalKeyRoutes configures digital key routes, including read
// access to the key snapshots in the mirror store.
func SetupDigitalKeyRoutes(api *gin.RouterGroup, cfg *DigitalKeyRouteConfig) {
	h := cfg.DigitalKeyHandler

	keys := api.Group("/digital-keys")
	{
		keys.POST("", h.CreateDigitalKey)
		keys.GET("", h.ListDigitalKeys)

		keys.GET("/mirror/list", h.ListMirroredKeys)
		keys.GET("/mirror/download/:id/:key_name", h.DownloadMirroredKey)

		keys.GET("/name/:key_name", h.GetDigitalKeyByName)
		keys.GET("/machine/:machine_id", h.ListDigitalKeysByMachine)
		keys.GET("/owner/:owner", h.ListDigitalKeysByOwner)

		keys.GET("/:id", h.GetDigitalKey)
		keys.PUT("/:id", h.UpdateDigitalKey)
		keys.DELETE("/:id", h.DeleteDigitalKey)
	}
}
