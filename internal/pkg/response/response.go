package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/consite/inventory-service/internal/errs"
)

// APIError is the uniform error payload.
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Path      string `json:"path"`
}

// Paginated wraps list responses.
type Paginated struct {
	Items    interface{} `json:"items"`
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
}

// Error maps a domain error onto its HTTP status and writes the uniform
// payload.
func Error(c *gin.Context, err error) {
	c.JSON(errs.Status(err), APIError{
		Code:      errs.Code(err),
		Message:   err.Error(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Path:      c.Request.URL.Path,
	})
}

func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, APIError{
		Code:      "VALIDATION_ERROR",
		Message:   message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Path:      c.Request.URL.Path,
	})
}

func List(c *gin.Context, items interface{}, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, Paginated{Items: items, Total: total, Page: page, PageSize: pageSize})
}
