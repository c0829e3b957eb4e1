package recorder

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/consite/inventory-service/internal/audit"
	"github.com/consite/inventory-service/internal/pkg/logger"
)

type PGRecorder struct {
	DB     *sqlx.DB
	logger logger.Logger
}

func NewPGRecorder(db *sqlx.DB, log logger.Logger) *PGRecorder {
	return &PGRecorder{DB: db, logger: log}
}

// Record inserts the entry into audit_logs. Failures are logged and
// dropped; audit writes never propagate errors to the caller.
func (r *PGRecorder) Record(ctx context.Context, entry audit.Entry) {
	query := `
        INSERT INTO audit_logs (user_id, action, resource, details, ip_address, user_agent, created_at)
        VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), $7)
    `
	_, err := r.DB.ExecContext(ctx, query,
		entry.UserID, entry.Action, entry.Resource,
		entry.Details, entry.IPAddress, entry.UserAgent,
		time.Now(),
	)
	if err != nil {
		r.logger.Error("failed to write audit log",
			zap.Int64("user_id", entry.UserID),
			zap.String("action", string(entry.Action)),
			zap.String("resource", entry.Resource),
			zap.Error(err),
		)
	}
}
