package inventory

import (
	"context"

	"github.com/consite/inventory-service/internal/inventory/dto"
	"github.com/consite/inventory-service/internal/model"
)

// TransferParams is the atomic dual-location move: decrement the source
// record, increment-or-create the target record, and append the audit
// row, all in one transaction.
type TransferParams struct {
	SourceInventoryID int64
	SourceLocationID  int64
	TargetLocationID  int64
	ProductID         int64
	Quantity          int64
	ActorID           int64
	AuditDetails      string
}

type Repository interface {
	FindByID(ctx context.Context, id int64) (*model.Inventory, error)
	FindAll(ctx context.Context, filters *dto.InventoryFilters) ([]model.Inventory, int, error)
	Create(ctx context.Context, inv *model.Inventory) error

	// AdjustQuantity atomically applies quantity -= delta guarded by
	// quantity >= delta. applied is false when stock was insufficient;
	// nothing changes in that case.
	AdjustQuantity(ctx context.Context, id, delta int64) (updated *model.Inventory, applied bool, err error)

	// Transfer commits both halves of the move or neither. applied is
	// false when the source had less than the requested quantity.
	Transfer(ctx context.Context, p TransferParams) (applied bool, err error)

	SumQuantityByLocation(ctx context.Context, locationID int64) (int64, error)
	CountByLocation(ctx context.Context, locationID int64) (int, error)
	TotalQuantity(ctx context.Context) (int64, error)
	LowStockCount(ctx context.Context, locationID int64) (int, error)
}

// LocationReader is the slice of the location repository the ledger
// needs for validating transfer targets.
type LocationReader interface {
	FindByID(ctx context.Context, id int64) (*model.Location, error)
}
