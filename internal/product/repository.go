package product

import (
	"context"

	"github.com/consite/inventory-service/internal/model"
	"github.com/consite/inventory-service/internal/product/dto"
)

type Repository interface {
	Create(ctx context.Context, product *model.Product, initialLocationID *int64) error
	FindByID(ctx context.Context, id int64) (*model.Product, error)
	FindAll(ctx context.Context, filters *dto.ProductFilters) ([]*model.Product, int64, error)
	Update(ctx context.Context, product *model.Product) error
	SetStatus(ctx context.Context, id int64, status model.ProductStatus) (bool, error)
	// LastSKU returns the lexicographically greatest SKU with the given
	// prefix, or "" when no product carries it yet.
	LastSKU(ctx context.Context, prefix string) (string, error)
	// HolderRecipients returns the distinct assigned users of every
	// location currently holding inventory of the product.
	HolderRecipients(ctx context.Context, productID int64) ([]int64, error)
	CountByStatus(ctx context.Context, status model.ProductStatus) (int64, error)
}

// UserReader is the slice of the user repository the product workflow
// needs for notification fan-out.
type UserReader interface {
	SuperAdminIDs(ctx context.Context) ([]int64, error)
}

// LocationReader resolves the assigned user of a product's initial
// location for the creation notification.
type LocationReader interface {
	FindByID(ctx context.Context, id int64) (*model.Location, error)
}
