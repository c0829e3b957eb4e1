package audit

import (
	"context"

	"github.com/consite/inventory-service/internal/auth"
	"github.com/consite/inventory-service/internal/model"
)

// Entry is one append-only audit record: who did (or attempted) what,
// against which resource.
type Entry struct {
	UserID    int64
	Action    model.AuditAction
	Resource  string
	Details   string
	IPAddress string
	UserAgent string
}

// Recorder is the audit sink. Record is fire-and-forget: implementations
// swallow storage failures and report them to the operational log only,
// so a broken sink can never fail the triggering business operation.
type Recorder interface {
	Record(ctx context.Context, entry Entry)
}

// ViolationEntry builds the forensic record for a denied location access:
// the attempted resource plus the caller's own assignment for comparison.
func ViolationEntry(actor auth.Actor, action model.AuditAction, resource, details string) Entry {
	return Entry{
		UserID:   actor.ID,
		Action:   action,
		Resource: resource,
		Details:  details,
	}
}
