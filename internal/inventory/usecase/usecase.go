package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/consite/inventory-service/internal/audit"
	"github.com/consite/inventory-service/internal/auth"
	"github.com/consite/inventory-service/internal/errs"
	"github.com/consite/inventory-service/internal/inventory"
	"github.com/consite/inventory-service/internal/inventory/dto"
	"github.com/consite/inventory-service/internal/model"
	"github.com/consite/inventory-service/internal/pkg/cache"
	"github.com/consite/inventory-service/internal/pkg/logger"
	"github.com/consite/inventory-service/internal/pkg/metrics"
	"github.com/consite/inventory-service/internal/scope"
)

type inventoryUseCase struct {
	repo      inventory.Repository
	locations inventory.LocationReader
	cache     *cache.RedisClient
	auditor   audit.Recorder
	logger    logger.Logger
}

func NewInventoryUseCase(
	repo inventory.Repository,
	locations inventory.LocationReader,
	cache *cache.RedisClient,
	auditor audit.Recorder,
	log logger.Logger,
) inventory.UseCase {
	return &inventoryUseCase{
		repo:      repo,
		locations: locations,
		cache:     cache,
		auditor:   auditor,
		logger:    log,
	}
}

// lockRecord serializes mutations of one inventory record across
// processes. The row-level conditional update is the actual correctness
// guard; the lock just keeps concurrent writers from burning retries.
func (uc *inventoryUseCase) lockRecord(ctx context.Context, id int64) (release func(), err error) {
	if uc.cache == nil {
		return func() {}, nil
	}

	lockKey := fmt.Sprintf("lock:inventory:%d", id)
	lockValue := uuid.New().String()

	for i := 0; i < 3; i++ {
		ok, err := uc.cache.AcquireLock(ctx, lockKey, lockValue, 5*time.Second)
		if err != nil {
			uc.logger.Error("failed to acquire inventory lock", zap.Error(err))
		}
		if ok {
			return func() { uc.cache.ReleaseLock(ctx, lockKey, lockValue) }, nil
		}
		time.Sleep(100 * time.Millisecond)
	}
	return nil, errs.Conflict("inventory record is busy, please try again")
}

func (uc *inventoryUseCase) Adjust(ctx context.Context, actor auth.Actor, input *dto.AdjustInput) (*model.Inventory, error) {
	if input.InventoryID < 1 || input.Quantity <= 0 {
		return nil, errs.Validation("valid inventory ID and positive quantity are required")
	}

	inv, err := uc.repo.FindByID(ctx, input.InventoryID)
	if err != nil {
		return nil, errs.Internal("failed to load inventory record", err)
	}
	if inv == nil {
		return nil, errs.NotFound("inventory record not found")
	}

	if !scope.CanAccessLocation(actor, inv.LocationID) {
		return nil, errs.AuthorizationDenied("you cannot modify inventory at this location")
	}

	release, err := uc.lockRecord(ctx, input.InventoryID)
	if err != nil {
		return nil, err
	}
	defer release()

	updated, applied, err := uc.repo.AdjustQuantity(ctx, input.InventoryID, input.Quantity)
	if err != nil {
		metrics.ObserveLedgerMutation("adjust", "error")
		return nil, errs.Internal("failed to adjust inventory", err)
	}
	if !applied {
		metrics.ObserveLedgerMutation("adjust", "insufficient_stock")
		return nil, errs.InsufficientStock("insufficient stock")
	}
	metrics.ObserveLedgerMutation("adjust", "ok")

	reason := input.Reason
	if reason == "" {
		reason = "Usage"
	}
	uc.auditor.Record(ctx, audit.Entry{
		UserID:   actor.ID,
		Action:   model.AuditInventoryAdjustment,
		Resource: fmt.Sprintf("Inventory:%d", input.InventoryID),
		Details: fmt.Sprintf("Deducted %d %s of %s. Reason: %s",
			input.Quantity, inv.Product.Unit, inv.Product.Name, reason),
	})

	return updated, nil
}

func (uc *inventoryUseCase) Transfer(ctx context.Context, actor auth.Actor, input *dto.TransferInput) error {
	if input.InventoryID < 1 || input.TargetLocationID < 1 {
		return errs.Validation("inventory ID and target location ID are required")
	}

	qty := input.Quantity
	if qty == 0 {
		qty = 1 // whole-unit fixed-asset move
	}
	if qty < 0 {
		return errs.Validation("quantity must be positive")
	}

	source, err := uc.repo.FindByID(ctx, input.InventoryID)
	if err != nil {
		return errs.Internal("failed to load source inventory", err)
	}
	if source == nil {
		return errs.NotFound("source inventory not found")
	}

	if !scope.CanAccessLocation(actor, source.LocationID) {
		return errs.AuthorizationDenied("you cannot transfer from this location")
	}

	if input.TargetLocationID == source.LocationID {
		return errs.Validation("target location must differ from source location")
	}

	target, err := uc.locations.FindByID(ctx, input.TargetLocationID)
	if err != nil {
		return errs.Internal("failed to load target location", err)
	}
	if target == nil {
		return errs.NotFound("target location not found")
	}

	release, err := uc.lockRecord(ctx, input.InventoryID)
	if err != nil {
		return err
	}
	defer release()

	details := fmt.Sprintf("Transferred %d %s of %s from Loc:%d to Loc:%d. Reason: %s",
		qty, source.Product.Unit, source.Product.Name,
		source.LocationID, input.TargetLocationID, input.Reason)

	applied, err := uc.repo.Transfer(ctx, inventory.TransferParams{
		SourceInventoryID: input.InventoryID,
		SourceLocationID:  source.LocationID,
		TargetLocationID:  input.TargetLocationID,
		ProductID:         source.ProductID,
		Quantity:          qty,
		ActorID:           actor.ID,
		AuditDetails:      details,
	})
	if err != nil {
		metrics.ObserveLedgerMutation("transfer", "error")
		return errs.Internal("failed to transfer inventory", err)
	}
	if !applied {
		metrics.ObserveLedgerMutation("transfer", "insufficient_stock")
		return errs.InsufficientStock("insufficient stock to transfer")
	}
	metrics.ObserveLedgerMutation("transfer", "ok")

	return nil
}

func (uc *inventoryUseCase) Get(ctx context.Context, actor auth.Actor, id int64) (*model.Inventory, error) {
	if id < 1 {
		return nil, errs.Validation("invalid inventory ID")
	}
	inv, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errs.Internal("failed to load inventory record", err)
	}
	if inv == nil {
		return nil, errs.NotFound("inventory record not found")
	}
	if !scope.CanAccessLocation(actor, inv.LocationID) {
		return nil, errs.AuthorizationDenied("you do not have access to this inventory record")
	}
	return inv, nil
}

func (uc *inventoryUseCase) List(ctx context.Context, actor auth.Actor, filters *dto.InventoryFilters) ([]model.Inventory, int, error) {
	filters.Scope = scope.ScopedFilter(actor, filters.Scope)
	items, count, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, 0, errs.Internal("failed to list inventory", err)
	}
	return items, count, nil
}
