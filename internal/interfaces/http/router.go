package http

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"keygate/internal/infrastructure/config"
	"keygate/internal/interfaces/http/middleware"
	"keygate/internal/interfaces/http/routes"
	"keygate/internal/shared/logger"
)

// Router owns the gin engine and the container behind it.
type Router struct {
	*Container
}

// NewRouter creates a new HTTP router with all dependencies
func NewRouter(db *gorm.DB, cfg *config.Config, log logger.Interface) (*Router, error) {
	c, err := NewContainer(db, cfg, log)
	if err != nil {
		return nil, err
	}
	return &Router{Container: c}, nil
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.Logger(r.log.Named("http")))
	r.engine.Use(middleware.Recovery(r.log.Named("http")))

	r.engine.GET("/health", r.hdlrs.healthHandler.Check)

	api := r.engine.Group("/api/v1")

	routes.SetupUserRoutes(api, &routes.UserRouteConfig{
		UserHandler: r.hdlrs.userHandler,
	})
	routes.SetupMachineRoutes(api, &routes.MachineRouteConfig{
		MachineHandler: r.hdlrs.machineHandler,
	})
	routes.SetupDigitalKeyRoutes(api, &routes.DigitalKeyRouteConfig{
		DigitalKeyHandler: r.hdlrs.digitalKeyHandler,
	})
	routes.SetupPermissionRoutes(api, &routes.PermissionRouteConfig{
		PermissionHandler: r.hdlrs.permissionHandler,
	})
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// Run starts the HTTP server
func (r *Router) Run(addr string) error {
	return r.engine.Run(addr)
}
