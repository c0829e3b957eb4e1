package server

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/consite/inventory-service/internal/audit"
	"github.com/consite/inventory-service/internal/auth"
	authH "github.com/consite/inventory-service/internal/auth/handler"
	dashH "github.com/consite/inventory-service/internal/dashboard/handler"
	invH "github.com/consite/inventory-service/internal/inventory/handler"
	locH "github.com/consite/inventory-service/internal/location/handler"
	"github.com/consite/inventory-service/internal/middleware"
	notifH "github.com/consite/inventory-service/internal/notify/handler"
	prodH "github.com/consite/inventory-service/internal/product/handler"
	reqH "github.com/consite/inventory-service/internal/request/handler"
	"github.com/consite/inventory-service/internal/user"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth         *authH.AuthHandler
	Inventory    *invH.InventoryHandler
	Request      *reqH.RequestHandler
	Product      *prodH.ProductHandler
	Location     *locH.LocationHandler
	Notification *notifH.NotificationHandler
	Dashboard    *dashH.DashboardHandler
}

// NewRouter assembles the gin engine: public routes, then the
// authenticated API group with scoping enforcement applied before any
// handler runs.
func NewRouter(tm *auth.TokenManager, users user.Repository, recorder audit.Recorder, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Metrics())

	r.GET("/healthz", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	public := r.Group("/api/v1")
	h.Auth.RegisterPublicRoutes(public)

	api := r.Group("/api/v1")
	api.Use(middleware.Authenticate(tm, users))
	api.Use(middleware.RequireLocationAccess(recorder))

	superAdmin := middleware.RequireSuperAdmin(recorder)

	h.Auth.RegisterRoutes(api)
	h.Inventory.RegisterRoutes(api)
	h.Request.RegisterRoutes(api)
	h.Product.RegisterRoutes(api, superAdmin)
	h.Location.RegisterRoutes(api, superAdmin)
	h.Notification.RegisterRoutes(api)
	h.Dashboard.RegisterRoutes(api, superAdmin)

	return r
}
