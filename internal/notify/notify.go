package notify

import (
	"context"

	"github.com/consite/inventory-service/internal/model"
)

// Notification is the outbound user-facing message contract.
type Notification struct {
	UserID  int64                      `json:"user_id"`
	Type    model.NotificationSeverity `json:"type"`
	Message string                     `json:"message"`
	Link    string                     `json:"link"`
}

// Notifier delivers notifications fire-and-forget. Delivery failure must
// never roll back or fail the business operation that triggered it, so
// Notify returns nothing; implementations log failures themselves.
type Notifier interface {
	Notify(ctx context.Context, notifications ...Notification)
}

// Repository reads the stored notification feed.
type Repository interface {
	ListForUser(ctx context.Context, userID int64, limit int) ([]model.Notification, error)
	MarkRead(ctx context.Context, id, userID int64) error
}
