package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/consite/inventory-service/internal/errs"
	"github.com/consite/inventory-service/internal/location"
	"github.com/consite/inventory-service/internal/location/dto"
	"github.com/consite/inventory-service/internal/middleware"
	"github.com/consite/inventory-service/internal/model"
	"github.com/consite/inventory-service/internal/pkg/response"
)

type LocationHandler struct {
	uc location.UseCase
}

func NewLocationHandler(uc location.UseCase) *LocationHandler {
	return &LocationHandler{uc: uc}
}

func (h *LocationHandler) RegisterRoutes(r *gin.RouterGroup, superAdmin gin.HandlerFunc) {
	// The path id IS the target location here, so the param is named
	// locationId and the access gate judges it before the handler runs.
	locations := r.Group("/locations")
	{
		locations.POST("", superAdmin, h.Create)
		locations.GET("", h.List)
		locations.GET("/:locationId", h.Get)
		locations.PUT("/:locationId", superAdmin, h.Update)
		locations.POST("/:locationId/finish", superAdmin, h.Finish)
		locations.DELETE("/:locationId", superAdmin, h.Delete)
	}
}

func (h *LocationHandler) Create(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		response.Error(c, errs.AuthenticationRequired("authentication required"))
		return
	}

	var input dto.CreateLocationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	loc, err := h.uc.Create(c.Request.Context(), actor, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, loc)
}

func (h *LocationHandler) List(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		response.Error(c, errs.AuthenticationRequired("authentication required"))
		return
	}

	filters := &dto.LocationFilters{
		Type:            model.LocationType(c.Query("type")),
		Search:          c.Query("search"),
		IncludeFinished: c.Query("includeFinished") == "true",
		Page:            intQuery(c, "page", 1),
		PageSize:        intQuery(c, "pageSize", 20),
	}
	if s := c.Query("status"); s != "" {
		filters.Statuses = []model.LocationStatus{model.LocationStatus(s)}
	}

	items, count, err := h.uc.List(c.Request.Context(), actor, filters)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, items, count, filters.Page, filters.PageSize)
}

func (h *LocationHandler) Get(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		response.Error(c, errs.AuthenticationRequired("authentication required"))
		return
	}

	id, err := strconv.ParseInt(c.Param("locationId"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid location id")
		return
	}

	loc, err := h.uc.Get(c.Request.Context(), actor, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, loc)
}

func (h *LocationHandler) Update(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		response.Error(c, errs.AuthenticationRequired("authentication required"))
		return
	}

	id, err := strconv.ParseInt(c.Param("locationId"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid location id")
		return
	}

	var input dto.UpdateLocationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	input.ID = id

	loc, err := h.uc.Update(c.Request.Context(), actor, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, loc)
}

func (h *LocationHandler) Finish(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		response.Error(c, errs.AuthenticationRequired("authentication required"))
		return
	}

	id, err := strconv.ParseInt(c.Param("locationId"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid location id")
		return
	}

	loc, err := h.uc.Finish(c.Request.Context(), actor, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, loc)
}

func (h *LocationHandler) Delete(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		response.Error(c, errs.AuthenticationRequired("authentication required"))
		return
	}

	id, err := strconv.ParseInt(c.Param("locationId"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid location id")
		return
	}

	if err := h.uc.Delete(c.Request.Context(), actor, id); err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func intQuery(c *gin.Context, key string, def int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil || v < 1 {
		return def
	}
	return v
}
