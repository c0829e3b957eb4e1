package inventory

import (
	"context"

	"github.com/consite/inventory-service/internal/auth"
	"github.com/consite/inventory-service/internal/inventory/dto"
	"github.com/consite/inventory-service/internal/model"
)

type UseCase interface {
	// Adjust deducts stock from a record (consumable usage). The actor
	// must have access to the record's location.
	Adjust(ctx context.Context, actor auth.Actor, input *dto.AdjustInput) (*model.Inventory, error)
	// Transfer moves stock between locations atomically.
	Transfer(ctx context.Context, actor auth.Actor, input *dto.TransferInput) error
	Get(ctx context.Context, actor auth.Actor, id int64) (*model.Inventory, error)
	List(ctx context.Context, actor auth.Actor, filters *dto.InventoryFilters) ([]model.Inventory, int, error)
}
