package location

import (
	"context"

	"github.com/consite/inventory-service/internal/location/dto"
	"github.com/consite/inventory-service/internal/model"
)

type Repository interface {
	// CreateWithUser inserts the location and, when user is non-nil, its
	// assigned account in one transaction. The user is created with the
	// role matching the location type and pinned to the new location.
	CreateWithUser(ctx context.Context, loc *model.Location, user *model.User) error
	FindByID(ctx context.Context, id int64) (*model.Location, error)
	FindAll(ctx context.Context, filters *dto.LocationFilters) ([]*model.Location, int64, error)
	Update(ctx context.Context, loc *model.Location) error
	NameExists(ctx context.Context, name string, locType model.LocationType, excludeID int64) (bool, error)

	// Finish moves an ACTIVE site to COMPLETED and deactivates the site
	// engineer accounts pinned to it in the same transaction. applied is
	// false when the site was not ACTIVE anymore.
	Finish(ctx context.Context, id int64) (applied bool, err error)
	Delete(ctx context.Context, id int64) error

	CountByTypeAndStatus(ctx context.Context, locType model.LocationType, status model.LocationStatus) (int64, error)
}

// UserReader guards assigned-account creation against duplicate emails.
type UserReader interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

// InventoryReader gates closing and deleting a location on its stock.
type InventoryReader interface {
	SumQuantityByLocation(ctx context.Context, locationID int64) (int64, error)
	CountByLocation(ctx context.Context, locationID int64) (int, error)
}
