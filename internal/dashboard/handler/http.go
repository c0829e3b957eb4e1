package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/consite/inventory-service/internal/dashboard"
	"github.com/consite/inventory-service/internal/errs"
	"github.com/consite/inventory-service/internal/middleware"
	"github.com/consite/inventory-service/internal/pkg/response"
)

type DashboardHandler struct {
	uc *dashboard.UseCase
}

func NewDashboardHandler(uc *dashboard.UseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

func (h *DashboardHandler) RegisterRoutes(r *gin.RouterGroup, superAdmin gin.HandlerFunc) {
	r.GET("/dashboard/stats", superAdmin, h.AdminStats)
	r.GET("/dashboard/overview", h.LocationStats)
}

func (h *DashboardHandler) AdminStats(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		response.Error(c, errs.AuthenticationRequired("authentication required"))
		return
	}

	stats, err := h.uc.AdminStats(c.Request.Context(), actor)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *DashboardHandler) LocationStats(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		response.Error(c, errs.AuthenticationRequired("authentication required"))
		return
	}

	stats, err := h.uc.LocationStats(c.Request.Context(), actor)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
