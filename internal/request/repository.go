package request

import (
	"context"

	"github.com/consite/inventory-service/internal/model"
	"github.com/consite/inventory-service/internal/request/dto"
)

type Repository interface {
	Create(ctx context.Context, req *model.InventoryRequest) error
	FindByID(ctx context.Context, id int64) (*model.InventoryRequest, error)
	FindAll(ctx context.Context, filters *dto.RequestFilters) ([]model.InventoryRequest, int, error)
	CountByStatus(ctx context.Context, status model.RequestStatus) (int, error)
	CountPendingByLocation(ctx context.Context, locationID int64) (int, error)

	// Approve flips PENDING to APPROVED and applies the inventory upsert
	// in one transaction. The status flip is a conditional update guarded
	// on the PENDING precondition: when two approvals race, exactly one
	// sees applied == true and only that one touches the ledger.
	Approve(ctx context.Context, id, approverID int64) (applied bool, err error)

	// Reject flips PENDING to REJECTED under the same precondition, with
	// no inventory effect.
	Reject(ctx context.Context, id, approverID int64) (applied bool, err error)
}

// ProductReader is the slice of the product repository the workflow
// needs for validation and notification text.
type ProductReader interface {
	FindByID(ctx context.Context, id int64) (*model.Product, error)
}

// UserReader resolves notification recipients.
type UserReader interface {
	FindByID(ctx context.Context, id int64) (*model.User, error)
	SuperAdminIDs(ctx context.Context) ([]int64, error)
}

// LocationReader validates request targets.
type LocationReader interface {
	FindByID(ctx context.Context, id int64) (*model.Location, error)
}
