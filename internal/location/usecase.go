package location

import (
	"context"

	"github.com/consite/inventory-service/internal/auth"
	"github.com/consite/inventory-service/internal/location/dto"
	"github.com/consite/inventory-service/internal/model"
)

type UseCase interface {
	Create(ctx context.Context, actor auth.Actor, input *dto.CreateLocationInput) (*model.Location, error)
	Get(ctx context.Context, actor auth.Actor, id int64) (*model.Location, error)
	List(ctx context.Context, actor auth.Actor, filters *dto.LocationFilters) ([]*model.Location, int64, error)
	Update(ctx context.Context, actor auth.Actor, input *dto.UpdateLocationInput) (*model.Location, error)
	// Finish closes out a site whose inventory has been fully drained.
	Finish(ctx context.Context, actor auth.Actor, id int64) (*model.Location, error)
	Delete(ctx context.Context, actor auth.Actor, id int64) error
}
