package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consite/inventory-service/internal/audit"
	"github.com/consite/inventory-service/internal/auth"
	"github.com/consite/inventory-service/internal/errs"
	"github.com/consite/inventory-service/internal/inventory"
	"github.com/consite/inventory-service/internal/inventory/dto"
	"github.com/consite/inventory-service/internal/model"
	"github.com/consite/inventory-service/internal/pkg/logger"
)

func ptr(v int64) *int64 { return &v }

type stockKey struct {
	locationID int64
	productID  int64
}

type fakeInventoryRepo struct {
	records map[int64]*model.Inventory
	// targets mirrors the increment-or-create half of a transfer, keyed
	// the way the unique (location_id, product_id) constraint is.
	targets map[stockKey]int64

	adjustApplied   bool
	transferApplied bool
	lastTransfer    inventory.TransferParams
	lastFilters     *dto.InventoryFilters
}

func (f *fakeInventoryRepo) FindByID(_ context.Context, id int64) (*model.Inventory, error) {
	if inv, ok := f.records[id]; ok {
		cp := *inv
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeInventoryRepo) FindAll(_ context.Context, filters *dto.InventoryFilters) ([]model.Inventory, int, error) {
	f.lastFilters = filters
	return nil, 0, nil
}

func (f *fakeInventoryRepo) Create(_ context.Context, _ *model.Inventory) error { return nil }

func (f *fakeInventoryRepo) AdjustQuantity(_ context.Context, id, delta int64) (*model.Inventory, bool, error) {
	inv := f.records[id]
	if inv.Quantity < delta {
		return nil, false, nil
	}
	inv.Quantity -= delta
	f.adjustApplied = true
	cp := *inv
	return &cp, true, nil
}

func (f *fakeInventoryRepo) Transfer(_ context.Context, p inventory.TransferParams) (bool, error) {
	f.lastTransfer = p
	src := f.records[p.SourceInventoryID]
	if src.Quantity < p.Quantity {
		return false, nil
	}
	src.Quantity -= p.Quantity
	if f.targets == nil {
		f.targets = map[stockKey]int64{}
	}
	f.targets[stockKey{p.TargetLocationID, p.ProductID}] += p.Quantity
	f.transferApplied = true
	return true, nil
}

// totalOf sums a product's quantity across source records and transfer
// targets.
func (f *fakeInventoryRepo) totalOf(productID int64) int64 {
	var total int64
	for _, inv := range f.records {
		if inv.ProductID == productID {
			total += inv.Quantity
		}
	}
	for key, qty := range f.targets {
		if key.productID == productID {
			total += qty
		}
	}
	return total
}

func (f *fakeInventoryRepo) SumQuantityByLocation(_ context.Context, _ int64) (int64, error) {
	return 0, nil
}
func (f *fakeInventoryRepo) CountByLocation(_ context.Context, _ int64) (int, error) { return 0, nil }
func (f *fakeInventoryRepo) TotalQuantity(_ context.Context) (int64, error)          { return 0, nil }
func (f *fakeInventoryRepo) LowStockCount(_ context.Context, _ int64) (int, error)   { return 0, nil }

type fakeLocationReader struct {
	locations map[int64]*model.Location
}

func (f *fakeLocationReader) FindByID(_ context.Context, id int64) (*model.Location, error) {
	return f.locations[id], nil
}

type fakeRecorder struct {
	entries []audit.Entry
}

func (f *fakeRecorder) Record(_ context.Context, entry audit.Entry) {
	f.entries = append(f.entries, entry)
}

func widget() *model.Product {
	return &model.Product{
		BaseModel: model.BaseModel{ID: 100},
		SKU:       "PRD-BLD-001",
		Name:      "Cement",
		Unit:      "bag",
	}
}

func setup() (*fakeInventoryRepo, *fakeLocationReader, *fakeRecorder, inventory.UseCase) {
	repo := &fakeInventoryRepo{
		records: map[int64]*model.Inventory{
			1: {ID: 1, LocationID: 10, ProductID: 100, Quantity: 5, Product: widget(), Location: &model.Location{BaseModel: model.BaseModel{ID: 10}}},
		},
	}
	locations := &fakeLocationReader{
		locations: map[int64]*model.Location{
			10: {BaseModel: model.BaseModel{ID: 10}, Name: "Main Store", Type: model.LocationStore},
			20: {BaseModel: model.BaseModel{ID: 20}, Name: "Site A", Type: model.LocationSite},
		},
	}
	recorder := &fakeRecorder{}
	uc := NewInventoryUseCase(repo, locations, nil, recorder, logger.NewNop())
	return repo, locations, recorder, uc
}

func TestAdjustDeductsAndAudits(t *testing.T) {
	repo, _, recorder, uc := setup()
	manager := auth.Actor{ID: 2, Role: model.RoleStoreManager, LocationID: ptr(10)}

	updated, err := uc.Adjust(context.Background(), manager, &dto.AdjustInput{
		InventoryID: 1, Quantity: 3, Reason: "Damaged",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated.Quantity)
	assert.True(t, repo.adjustApplied)

	require.Len(t, recorder.entries, 1)
	entry := recorder.entries[0]
	assert.Equal(t, model.AuditInventoryAdjustment, entry.Action)
	assert.Contains(t, entry.Details, "Deducted 3 bag of Cement")
	assert.Contains(t, entry.Details, "Reason: Damaged")
}

func TestAdjustDefaultsReasonToUsage(t *testing.T) {
	_, _, recorder, uc := setup()
	manager := auth.Actor{ID: 2, Role: model.RoleStoreManager, LocationID: ptr(10)}

	_, err := uc.Adjust(context.Background(), manager, &dto.AdjustInput{InventoryID: 1, Quantity: 1})
	require.NoError(t, err)
	require.Len(t, recorder.entries, 1)
	assert.Contains(t, recorder.entries[0].Details, "Reason: Usage")
}

func TestAdjustInsufficientStock(t *testing.T) {
	repo, _, _, uc := setup()
	manager := auth.Actor{ID: 2, Role: model.RoleStoreManager, LocationID: ptr(10)}

	_, err := uc.Adjust(context.Background(), manager, &dto.AdjustInput{InventoryID: 1, Quantity: 6})
	assert.True(t, errs.Is(err, errs.CodeInsufficientStock))
	// nothing changed
	assert.Equal(t, int64(5), repo.records[1].Quantity)
}

func TestAdjustDeniedOutsideAssignedLocation(t *testing.T) {
	repo, _, recorder, uc := setup()
	outsider := auth.Actor{ID: 3, Role: model.RoleSiteEngineer, LocationID: ptr(20)}

	_, err := uc.Adjust(context.Background(), outsider, &dto.AdjustInput{InventoryID: 1, Quantity: 1})
	assert.True(t, errs.Is(err, errs.CodeAuthorizationDenied))
	assert.Equal(t, int64(5), repo.records[1].Quantity)
	assert.Empty(t, recorder.entries)
}

func TestAdjustNotFound(t *testing.T) {
	_, _, _, uc := setup()
	admin := auth.Actor{ID: 1, Role: model.RoleSuperAdmin}

	_, err := uc.Adjust(context.Background(), admin, &dto.AdjustInput{InventoryID: 99, Quantity: 1})
	assert.True(t, errs.Is(err, errs.CodeNotFound))
}

func TestTransferDefaultsQuantityToOne(t *testing.T) {
	repo, _, _, uc := setup()
	admin := auth.Actor{ID: 1, Role: model.RoleSuperAdmin}

	err := uc.Transfer(context.Background(), admin, &dto.TransferInput{
		InventoryID: 1, TargetLocationID: 20,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), repo.lastTransfer.Quantity)
	assert.Equal(t, int64(10), repo.lastTransfer.SourceLocationID)
	assert.Equal(t, int64(20), repo.lastTransfer.TargetLocationID)
}

func TestTransferConservesTotalQuantity(t *testing.T) {
	repo, _, _, uc := setup()
	admin := auth.Actor{ID: 1, Role: model.RoleSuperAdmin}
	before := repo.totalOf(100)

	err := uc.Transfer(context.Background(), admin, &dto.TransferInput{
		InventoryID: 1, TargetLocationID: 20, Quantity: 3,
	})
	require.NoError(t, err)

	// decrement and increment move as one: nothing lost, nothing doubled
	assert.Equal(t, int64(2), repo.records[1].Quantity)
	assert.Equal(t, int64(3), repo.targets[stockKey{20, 100}])
	assert.Equal(t, before, repo.totalOf(100))
}

func TestTransferRejectsSameLocation(t *testing.T) {
	_, _, _, uc := setup()
	admin := auth.Actor{ID: 1, Role: model.RoleSuperAdmin}

	err := uc.Transfer(context.Background(), admin, &dto.TransferInput{
		InventoryID: 1, TargetLocationID: 10, Quantity: 1,
	})
	assert.True(t, errs.Is(err, errs.CodeValidation))
}

func TestTransferUnknownTarget(t *testing.T) {
	_, _, _, uc := setup()
	admin := auth.Actor{ID: 1, Role: model.RoleSuperAdmin}

	err := uc.Transfer(context.Background(), admin, &dto.TransferInput{
		InventoryID: 1, TargetLocationID: 99, Quantity: 1,
	})
	assert.True(t, errs.Is(err, errs.CodeNotFound))
}

func TestTransferInsufficientStock(t *testing.T) {
	repo, _, _, uc := setup()
	admin := auth.Actor{ID: 1, Role: model.RoleSuperAdmin}

	err := uc.Transfer(context.Background(), admin, &dto.TransferInput{
		InventoryID: 1, TargetLocationID: 20, Quantity: 50,
	})
	assert.True(t, errs.Is(err, errs.CodeInsufficientStock))
	assert.False(t, repo.transferApplied)
}

func TestListKeepsExplicitFilterUnderScope(t *testing.T) {
	repo, _, _, uc := setup()

	// scoped caller: the derived restriction pins the location, the
	// explicit filter rides along untouched
	manager := auth.Actor{ID: 2, Role: model.RoleStoreManager, LocationID: ptr(10)}
	_, _, err := uc.List(context.Background(), manager, &dto.InventoryFilters{LocationID: ptr(10)})
	require.NoError(t, err)
	require.NotNil(t, repo.lastFilters.Scope.LocationID)
	assert.Equal(t, int64(10), *repo.lastFilters.Scope.LocationID)
	require.NotNil(t, repo.lastFilters.LocationID)
	assert.Equal(t, int64(10), *repo.lastFilters.LocationID)

	// admin: no derived restriction, only the explicit filter
	admin := auth.Actor{ID: 1, Role: model.RoleSuperAdmin}
	_, _, err = uc.List(context.Background(), admin, &dto.InventoryFilters{LocationID: ptr(20)})
	require.NoError(t, err)
	assert.Nil(t, repo.lastFilters.Scope.LocationID)
	assert.False(t, repo.lastFilters.Scope.MatchNone)
	require.NotNil(t, repo.lastFilters.LocationID)
	assert.Equal(t, int64(20), *repo.lastFilters.LocationID)
}

func TestGetScoped(t *testing.T) {
	_, _, _, uc := setup()

	_, err := uc.Get(context.Background(), auth.Actor{ID: 3, Role: model.RoleSiteEngineer, LocationID: ptr(20)}, 1)
	assert.True(t, errs.Is(err, errs.CodeAuthorizationDenied))

	inv, err := uc.Get(context.Background(), auth.Actor{ID: 1, Role: model.RoleSuperAdmin}, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), inv.ID)
}
