package dashboard

import (
	"context"

	"github.com/consite/inventory-service/internal/auth"
	"github.com/consite/inventory-service/internal/errs"
	"github.com/consite/inventory-service/internal/model"
	"github.com/consite/inventory-service/internal/pkg/logger"
)

// AdminStats is the super-admin overview across all locations.
type AdminStats struct {
	ActiveStores    int64 `json:"active_stores"`
	ActiveSites     int64 `json:"active_sites"`
	CompletedSites  int64 `json:"completed_sites"`
	ActiveProducts  int64 `json:"active_products"`
	PendingProducts int64 `json:"pending_products"`
	TotalInventory  int64 `json:"total_inventory"`
	PendingRequests int   `json:"pending_requests"`
}

// LocationStats is the scoped overview for a manager or engineer.
type LocationStats struct {
	LocationID      int64 `json:"location_id"`
	InventoryLines  int   `json:"inventory_lines"`
	TotalQuantity   int64 `json:"total_quantity"`
	LowStockLines   int   `json:"low_stock_lines"`
	PendingRequests int   `json:"pending_requests"`
}

type LocationCounter interface {
	CountByTypeAndStatus(ctx context.Context, locType model.LocationType, status model.LocationStatus) (int64, error)
}

type ProductCounter interface {
	CountByStatus(ctx context.Context, status model.ProductStatus) (int64, error)
}

type RequestCounter interface {
	CountByStatus(ctx context.Context, status model.RequestStatus) (int, error)
	CountPendingByLocation(ctx context.Context, locationID int64) (int, error)
}

type InventoryCounter interface {
	SumQuantityByLocation(ctx context.Context, locationID int64) (int64, error)
	CountByLocation(ctx context.Context, locationID int64) (int, error)
	TotalQuantity(ctx context.Context) (int64, error)
	LowStockCount(ctx context.Context, locationID int64) (int, error)
}

type UseCase struct {
	locations LocationCounter
	products  ProductCounter
	requests  RequestCounter
	inventory InventoryCounter
	logger    logger.Logger
}

func NewUseCase(locations LocationCounter, products ProductCounter, requests RequestCounter, inventory InventoryCounter, log logger.Logger) *UseCase {
	return &UseCase{
		locations: locations,
		products:  products,
		requests:  requests,
		inventory: inventory,
		logger:    log,
	}
}

func (uc *UseCase) AdminStats(ctx context.Context, actor auth.Actor) (*AdminStats, error) {
	if !actor.IsSuperAdmin() {
		return nil, errs.AuthorizationDenied("only super admins can view global stats")
	}

	stats := &AdminStats{}
	var err error

	if stats.ActiveStores, err = uc.locations.CountByTypeAndStatus(ctx, model.LocationStore, model.LocationActive); err != nil {
		return nil, errs.Internal("failed to aggregate stats", err)
	}
	if stats.ActiveSites, err = uc.locations.CountByTypeAndStatus(ctx, model.LocationSite, model.LocationActive); err != nil {
		return nil, errs.Internal("failed to aggregate stats", err)
	}
	if stats.CompletedSites, err = uc.locations.CountByTypeAndStatus(ctx, model.LocationSite, model.LocationCompleted); err != nil {
		return nil, errs.Internal("failed to aggregate stats", err)
	}
	if stats.ActiveProducts, err = uc.products.CountByStatus(ctx, model.ProductActive); err != nil {
		return nil, errs.Internal("failed to aggregate stats", err)
	}
	if stats.PendingProducts, err = uc.products.CountByStatus(ctx, model.ProductPendingApproval); err != nil {
		return nil, errs.Internal("failed to aggregate stats", err)
	}
	if stats.TotalInventory, err = uc.inventory.TotalQuantity(ctx); err != nil {
		return nil, errs.Internal("failed to aggregate stats", err)
	}
	if stats.PendingRequests, err = uc.requests.CountByStatus(ctx, model.RequestPending); err != nil {
		return nil, errs.Internal("failed to aggregate stats", err)
	}

	return stats, nil
}

func (uc *UseCase) LocationStats(ctx context.Context, actor auth.Actor) (*LocationStats, error) {
	if actor.LocationID == nil {
		return nil, errs.Validation("an assigned location is required")
	}
	locationID := *actor.LocationID

	stats := &LocationStats{LocationID: locationID}
	var err error

	if stats.InventoryLines, err = uc.inventory.CountByLocation(ctx, locationID); err != nil {
		return nil, errs.Internal("failed to aggregate stats", err)
	}
	if stats.TotalQuantity, err = uc.inventory.SumQuantityByLocation(ctx, locationID); err != nil {
		return nil, errs.Internal("failed to aggregate stats", err)
	}
	if stats.LowStockLines, err = uc.inventory.LowStockCount(ctx, locationID); err != nil {
		return nil, errs.Internal("failed to aggregate stats", err)
	}
	if stats.PendingRequests, err = uc.requests.CountPendingByLocation(ctx, locationID); err != nil {
		return nil, errs.Internal("failed to aggregate stats", err)
	}

	return stats, nil
}
