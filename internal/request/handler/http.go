package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/consite/inventory-service/internal/errs"
	"github.com/consite/inventory-service/internal/middleware"
	"github.com/consite/inventory-service/internal/model"
	"github.com/consite/inventory-service/internal/pkg/response"
	"github.com/consite/inventory-service/internal/request"
	"github.com/consite/inventory-service/internal/request/dto"
)

type RequestHandler struct {
	uc request.UseCase
}

func NewRequestHandler(uc request.UseCase) *RequestHandler {
	return &RequestHandler{uc: uc}
}

func (h *RequestHandler) RegisterRoutes(r *gin.RouterGroup) {
	reqs := r.Group("/requests")
	{
		reqs.POST("", h.Create)
		reqs.GET("", h.List)
		reqs.GET("/pending", h.Pending)
		reqs.GET("/:id", h.Get)
		reqs.POST("/:id/approve", h.Approve)
		reqs.POST("/:id/reject", h.Reject)
	}
}

func (h *RequestHandler) Create(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		response.Error(c, errs.AuthenticationRequired("authentication required"))
		return
	}

	var input dto.CreateRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	req, err := h.uc.Create(c.Request.Context(), actor, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, req)
}

func (h *RequestHandler) List(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		response.Error(c, errs.AuthenticationRequired("authentication required"))
		return
	}

	filters := &dto.RequestFilters{
		Status:   model.RequestStatus(c.Query("status")),
		Page:     intQuery(c, "page", 1),
		PageSize: intQuery(c, "pageSize", 20),
	}

	items, count, err := h.uc.List(c.Request.Context(), actor, filters)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, items, int64(count), filters.Page, filters.PageSize)
}

func (h *RequestHandler) Pending(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		response.Error(c, errs.AuthenticationRequired("authentication required"))
		return
	}

	items, err := h.uc.PendingForActor(c.Request.Context(), actor)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *RequestHandler) Get(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		response.Error(c, errs.AuthenticationRequired("authentication required"))
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid request id")
		return
	}

	req, err := h.uc.Get(c.Request.Context(), actor, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}

func (h *RequestHandler) Approve(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		response.Error(c, errs.AuthenticationRequired("authentication required"))
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid request id")
		return
	}

	req, err := h.uc.Approve(c.Request.Context(), actor, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}

func (h *RequestHandler) Reject(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		response.Error(c, errs.AuthenticationRequired("authentication required"))
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid request id")
		return
	}

	req, err := h.uc.Reject(c.Request.Context(), actor, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}

func intQuery(c *gin.Context, key string, def int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil || v < 1 {
		return def
	}
	return v
}
