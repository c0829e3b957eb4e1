package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/consite/inventory-service/internal/errs"
	"github.com/consite/inventory-service/internal/middleware"
	"github.com/consite/inventory-service/internal/notify"
	"github.com/consite/inventory-service/internal/pkg/response"
)

type NotificationHandler struct {
	repo notify.Repository
}

func NewNotificationHandler(repo notify.Repository) *NotificationHandler {
	return &NotificationHandler{repo: repo}
}

func (h *NotificationHandler) RegisterRoutes(r *gin.RouterGroup) {
	notifications := r.Group("/notifications")
	{
		notifications.GET("", h.List)
		notifications.POST("/:id/read", h.MarkRead)
	}
}

func (h *NotificationHandler) List(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		response.Error(c, errs.AuthenticationRequired("authentication required"))
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))
	items, err := h.repo.ListForUser(c.Request.Context(), actor.ID, limit)
	if err != nil {
		response.Error(c, errs.Internal("failed to list notifications", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		response.Error(c, errs.AuthenticationRequired("authentication required"))
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid notification id")
		return
	}

	if err := h.repo.MarkRead(c.Request.Context(), id, actor.ID); err != nil {
		response.Error(c, errs.Internal("failed to mark notification read", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "read"})
}
