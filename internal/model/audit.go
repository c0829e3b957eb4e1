package model

import "time"

type AuditAction string

const (
	AuditAccessDenied        AuditAction = "ACCESS_DENIED"
	AuditLocationViolation   AuditAction = "LOCATION_VIOLATION"
	AuditUnauthorizedAttempt AuditAction = "UNAUTHORIZED_ATTEMPT"
	AuditParameterTampering  AuditAction = "PARAMETER_TAMPERING"
	AuditDataAccess          AuditAction = "DATA_ACCESS"
	AuditPermissionViolation AuditAction = "PERMISSION_VIOLATION"
	AuditInventoryAdjustment AuditAction = "INVENTORY_ADJUSTMENT"
	AuditAssetTransfer       AuditAction = "ASSET_TRANSFER"
)

// AuditLogEntry is append-only; the core never mutates or deletes rows.
type AuditLogEntry struct {
	ID        int64       `db:"id" json:"id"`
	UserID    int64       `db:"user_id" json:"user_id"`
	Action    AuditAction `db:"action" json:"action"`
	Resource  string      `db:"resource" json:"resource"`
	Details   *string     `db:"details" json:"details"`
	IPAddress *string     `db:"ip_address" json:"ip_address"`
	UserAgent *string     `db:"user_agent" json:"user_agent"`
	CreatedAt time.Time   `db:"created_at" json:"created_at"`
}
