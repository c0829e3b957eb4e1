package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/consite/inventory-service/internal/errs"
	"github.com/consite/inventory-service/internal/inventory"
	"github.com/consite/inventory-service/internal/inventory/dto"
	"github.com/consite/inventory-service/internal/middleware"
	"github.com/consite/inventory-service/internal/pkg/response"
)

type InventoryHandler struct {
	uc inventory.UseCase
}

func NewInventoryHandler(uc inventory.UseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

func (h *InventoryHandler) RegisterRoutes(r *gin.RouterGroup) {
	inv := r.Group("/inventory")
	{
		inv.GET("", h.List)
		inv.GET("/:id", h.Get)
		inv.POST("/adjust", h.Adjust)
		inv.POST("/transfer", h.Transfer)
	}
}

func (h *InventoryHandler) List(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		response.Error(c, errs.AuthenticationRequired("authentication required"))
		return
	}

	filters := &dto.InventoryFilters{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Page:     intQuery(c, "page", 1),
		PageSize: intQuery(c, "pageSize", 20),
	}
	if v, err := strconv.ParseInt(c.Query("locationId"), 10, 64); err == nil {
		filters.LocationID = &v
	}
	if v, err := strconv.ParseInt(c.Query("productId"), 10, 64); err == nil {
		filters.ProductID = &v
	}

	items, count, err := h.uc.List(c.Request.Context(), actor, filters)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, items, int64(count), filters.Page, filters.PageSize)
}

func (h *InventoryHandler) Get(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		response.Error(c, errs.AuthenticationRequired("authentication required"))
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid inventory id")
		return
	}

	item, err := h.uc.Get(c.Request.Context(), actor, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *InventoryHandler) Adjust(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		response.Error(c, errs.AuthenticationRequired("authentication required"))
		return
	}

	var input dto.AdjustInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	item, err := h.uc.Adjust(c.Request.Context(), actor, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *InventoryHandler) Transfer(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		response.Error(c, errs.AuthenticationRequired("authentication required"))
		return
	}

	var input dto.TransferInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.uc.Transfer(c.Request.Context(), actor, &input); err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "transferred"})
}

func intQuery(c *gin.Context, key string, def int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil || v < 1 {
		return def
	}
	return v
}
