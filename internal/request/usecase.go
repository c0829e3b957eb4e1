package request

import (
	"context"

	"github.com/consite/inventory-service/internal/auth"
	"github.com/consite/inventory-service/internal/model"
	"github.com/consite/inventory-service/internal/request/dto"
)

type UseCase interface {
	// Create opens a PENDING request. Scoped roles request for their own
	// location; super admins may target any location. No stock is
	// reserved at creation time.
	Create(ctx context.Context, actor auth.Actor, input *dto.CreateRequestInput) (*model.InventoryRequest, error)
	Get(ctx context.Context, actor auth.Actor, id int64) (*model.InventoryRequest, error)
	List(ctx context.Context, actor auth.Actor, filters *dto.RequestFilters) ([]model.InventoryRequest, int, error)
	// PendingForActor lists PENDING requests at the actor's assigned
	// location; empty when no location is assigned.
	PendingForActor(ctx context.Context, actor auth.Actor) ([]model.InventoryRequest, error)
	Approve(ctx context.Context, actor auth.Actor, id int64) (*model.InventoryRequest, error)
	Reject(ctx context.Context, actor auth.Actor, id int64) (*model.InventoryRequest, error)
}
