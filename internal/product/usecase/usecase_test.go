package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consite/inventory-service/internal/auth"
	"github.com/consite/inventory-service/internal/errs"
	"github.com/consite/inventory-service/internal/model"
	"github.com/consite/inventory-service/internal/notify"
	"github.com/consite/inventory-service/internal/pkg/logger"
	"github.com/consite/inventory-service/internal/product"
	"github.com/consite/inventory-service/internal/product/dto"
)

func ptr(v int64) *int64 { return &v }

type fakeProductRepo struct {
	products map[int64]*model.Product
	nextID   int64

	lastSKU          string
	lastInitialLoc   *int64
	holderRecipients []int64
	lastStatusSet    model.ProductStatus
	setStatusApplied bool
}

func (f *fakeProductRepo) Create(_ context.Context, p *model.Product, initialLocationID *int64) error {
	f.nextID++
	p.ID = f.nextID
	f.lastInitialLoc = initialLocationID
	cp := *p
	f.products[p.ID] = &cp
	return nil
}

func (f *fakeProductRepo) FindByID(_ context.Context, id int64) (*model.Product, error) {
	if p, ok := f.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeProductRepo) FindAll(_ context.Context, _ *dto.ProductFilters) ([]*model.Product, int64, error) {
	return nil, 0, nil
}

func (f *fakeProductRepo) Update(_ context.Context, p *model.Product) error {
	cp := *p
	f.products[p.ID] = &cp
	return nil
}

func (f *fakeProductRepo) SetStatus(_ context.Context, id int64, status model.ProductStatus) (bool, error) {
	p, ok := f.products[id]
	if !ok {
		return false, nil
	}
	p.Status = status
	f.lastStatusSet = status
	f.setStatusApplied = true
	return true, nil
}

func (f *fakeProductRepo) LastSKU(_ context.Context, _ string) (string, error) {
	return f.lastSKU, nil
}

func (f *fakeProductRepo) HolderRecipients(_ context.Context, _ int64) ([]int64, error) {
	return f.holderRecipients, nil
}

func (f *fakeProductRepo) CountByStatus(_ context.Context, _ model.ProductStatus) (int64, error) {
	return 0, nil
}

type fakeUserReader struct {
	admins []int64
}

func (f *fakeUserReader) SuperAdminIDs(_ context.Context) ([]int64, error) {
	return f.admins, nil
}

type fakeLocationReader struct {
	locations map[int64]*model.Location
}

func (f *fakeLocationReader) FindByID(_ context.Context, id int64) (*model.Location, error) {
	return f.locations[id], nil
}

type fakeNotifier struct {
	sent []notify.Notification
}

func (f *fakeNotifier) Notify(_ context.Context, notifications ...notify.Notification) {
	f.sent = append(f.sent, notifications...)
}

func setup() (*fakeProductRepo, *fakeNotifier, product.UseCase) {
	repo := &fakeProductRepo{products: map[int64]*model.Product{}}
	notifier := &fakeNotifier{}
	locations := &fakeLocationReader{locations: map[int64]*model.Location{
		10: {BaseModel: model.BaseModel{ID: 10}, Name: "Main Store", Type: model.LocationStore, AssignedUserID: ptr(7)},
	}}
	uc := NewProductUseCase(repo, &fakeUserReader{admins: []int64{1}}, locations, notifier, nil, nil, logger.NewNop())
	return repo, notifier, uc
}

func TestCreateGeneratesSequentialSKU(t *testing.T) {
	repo, _, uc := setup()
	repo.lastSKU = "PRD-BLD-002"
	admin := auth.Actor{ID: 1, Role: model.RoleSuperAdmin}

	p, err := uc.Create(context.Background(), admin, &dto.CreateProductInput{
		Name: "Cement", Category: "Building Materials", Unit: "bag",
	})
	require.NoError(t, err)
	assert.Equal(t, "PRD-BLD-003", p.SKU)
	assert.Equal(t, model.ProductActive, p.Status)
	assert.Nil(t, repo.lastInitialLoc)
}

func TestCreateByAdminWithLocationIsApproved(t *testing.T) {
	repo, notifier, uc := setup()
	admin := auth.Actor{ID: 1, Role: model.RoleSuperAdmin}

	p, err := uc.Create(context.Background(), admin, &dto.CreateProductInput{
		Name: "Drill", Category: "Tools", Unit: "pcs", LocationID: ptr(10),
	})
	require.NoError(t, err)
	assert.Equal(t, model.ProductApproved, p.Status)
	require.NotNil(t, repo.lastInitialLoc)
	assert.Equal(t, int64(10), *repo.lastInitialLoc)

	// an immediately approved product greets the location's manager,
	// not the super admins
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, int64(7), notifier.sent[0].UserID)
	assert.Equal(t, model.NotifySuccess, notifier.sent[0].Type)
	assert.Contains(t, notifier.sent[0].Message, "New product Drill assigned to your location")
	assert.Equal(t, "/dashboard/store/products", notifier.sent[0].Link)
}

func TestCreateByAdminHonorsExplicitStatusWithoutLocation(t *testing.T) {
	repo, notifier, uc := setup()
	admin := auth.Actor{ID: 1, Role: model.RoleSuperAdmin}

	p, err := uc.Create(context.Background(), admin, &dto.CreateProductInput{
		Name: "Drill", Category: "Tools", Unit: "pcs", Status: model.ProductApproved,
	})
	require.NoError(t, err)
	assert.Equal(t, model.ProductApproved, p.Status)
	assert.Nil(t, repo.lastInitialLoc)
	assert.Empty(t, notifier.sent)
}

func TestCreateByManagerIsPendingApproval(t *testing.T) {
	repo, notifier, uc := setup()
	manager := auth.Actor{ID: 2, Email: "maya@example.com", Role: model.RoleStoreManager, LocationID: ptr(10)}

	p, err := uc.Create(context.Background(), manager, &dto.CreateProductInput{
		Name: "Drill", Category: "Tools", Unit: "pcs",
	})
	require.NoError(t, err)
	assert.Equal(t, model.ProductPendingApproval, p.Status)
	// pinned to the manager's own location
	require.NotNil(t, repo.lastInitialLoc)
	assert.Equal(t, int64(10), *repo.lastInitialLoc)

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, int64(1), notifier.sent[0].UserID)
	assert.Contains(t, notifier.sent[0].Message, "New product pending approval: Drill")
}

func TestCreateByManagerRejectsForeignLocation(t *testing.T) {
	_, _, uc := setup()
	manager := auth.Actor{ID: 2, Role: model.RoleStoreManager, LocationID: ptr(10)}

	_, err := uc.Create(context.Background(), manager, &dto.CreateProductInput{
		Name: "Drill", Category: "Tools", Unit: "pcs", LocationID: ptr(20),
	})
	assert.True(t, errs.Is(err, errs.CodeAuthorizationDenied))
}

func TestCreateValidation(t *testing.T) {
	_, _, uc := setup()
	admin := auth.Actor{ID: 1, Role: model.RoleSuperAdmin}

	_, err := uc.Create(context.Background(), admin, &dto.CreateProductInput{Name: "X"})
	assert.True(t, errs.Is(err, errs.CodeValidation))

	_, err = uc.Create(context.Background(), admin, &dto.CreateProductInput{
		Name: "X", Category: "Tools", Unit: "pcs", Price: -1,
	})
	assert.True(t, errs.Is(err, errs.CodeValidation))
}

func seedPending(repo *fakeProductRepo) *model.Product {
	repo.nextID++
	p := &model.Product{
		BaseModel: model.BaseModel{ID: repo.nextID},
		SKU:       "PRD-TLS-001",
		Name:      "Drill",
		Status:    model.ProductPendingApproval,
	}
	repo.products[p.ID] = p
	return p
}

func TestApproveNotifiesHolders(t *testing.T) {
	repo, notifier, uc := setup()
	repo.holderRecipients = []int64{7, 8}
	p := seedPending(repo)
	admin := auth.Actor{ID: 1, Role: model.RoleSuperAdmin}

	approved, err := uc.Approve(context.Background(), admin, p.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ProductApproved, approved.Status)

	require.Len(t, notifier.sent, 2)
	assert.Equal(t, model.NotifySuccess, notifier.sent[0].Type)
	assert.Contains(t, notifier.sent[0].Message, "Product Approved: Drill (PRD-TLS-001)")
	assert.Equal(t, "/dashboard/store/products", notifier.sent[0].Link)
}

func TestRejectNotifiesHolders(t *testing.T) {
	repo, notifier, uc := setup()
	repo.holderRecipients = []int64{7}
	p := seedPending(repo)
	admin := auth.Actor{ID: 1, Role: model.RoleSuperAdmin}

	rejected, err := uc.Reject(context.Background(), admin, p.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ProductRejected, rejected.Status)

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, model.NotifyWarning, notifier.sent[0].Type)
	assert.Contains(t, notifier.sent[0].Message, "Product Rejected")
}

func TestDecideRequiresSuperAdmin(t *testing.T) {
	repo, _, uc := setup()
	p := seedPending(repo)
	manager := auth.Actor{ID: 2, Role: model.RoleStoreManager, LocationID: ptr(10)}

	_, err := uc.Approve(context.Background(), manager, p.ID)
	assert.True(t, errs.Is(err, errs.CodeAuthorizationDenied))
}

func TestDecideRequiresPendingStatus(t *testing.T) {
	repo, _, uc := setup()
	p := seedPending(repo)
	repo.products[p.ID].Status = model.ProductActive
	admin := auth.Actor{ID: 1, Role: model.RoleSuperAdmin}

	_, err := uc.Approve(context.Background(), admin, p.ID)
	assert.True(t, errs.Is(err, errs.CodeIllegalState))
}

func TestDeleteIsSoft(t *testing.T) {
	repo, _, uc := setup()
	p := seedPending(repo)
	repo.products[p.ID].Status = model.ProductActive
	admin := auth.Actor{ID: 1, Role: model.RoleSuperAdmin}

	require.NoError(t, uc.Delete(context.Background(), admin, p.ID))
	// row survives with INACTIVE status
	assert.Equal(t, model.ProductInactive, repo.products[p.ID].Status)
}

func TestDeleteUnknownProductIsNoop(t *testing.T) {
	repo, _, uc := setup()
	admin := auth.Actor{ID: 1, Role: model.RoleSuperAdmin}

	require.NoError(t, uc.Delete(context.Background(), admin, 99))
	assert.False(t, repo.setStatusApplied)
}
