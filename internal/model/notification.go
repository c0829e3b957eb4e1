package model

import "time"

type NotificationSeverity string

const (
	NotifyInfo    NotificationSeverity = "INFO"
	NotifySuccess NotificationSeverity = "SUCCESS"
	NotifyWarning NotificationSeverity = "WARNING"
	NotifyError   NotificationSeverity = "ERROR"
)

type Notification struct {
	ID        int64                `db:"id" json:"id"`
	UserID    int64                `db:"user_id" json:"user_id"`
	Type      NotificationSeverity `db:"type" json:"type"`
	Message   string               `db:"message" json:"message"`
	Link      string               `db:"link" json:"link"`
	Read      bool                 `db:"read" json:"read"`
	CreatedAt time.Time            `db:"created_at" json:"created_at"`
}
