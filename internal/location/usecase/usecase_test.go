package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/consite/inventory-service/internal/auth"
	"github.com/consite/inventory-service/internal/errs"
	"github.com/consite/inventory-service/internal/location"
	"github.com/consite/inventory-service/internal/location/dto"
	"github.com/consite/inventory-service/internal/model"
	"github.com/consite/inventory-service/internal/pkg/logger"
)

func ptr(v int64) *int64 { return &v }

type fakeLocationRepo struct {
	locations map[int64]*model.Location
	nextID    int64

	createdUser   *model.User
	finishApplied bool
	deletedID     int64
	takenNames    map[string]bool
}

func (f *fakeLocationRepo) CreateWithUser(_ context.Context, loc *model.Location, user *model.User) error {
	f.nextID++
	loc.ID = f.nextID
	if user != nil {
		user.ID = loc.ID + 100
		user.LocationID = &loc.ID
		loc.AssignedUserID = &user.ID
		f.createdUser = user
	}
	cp := *loc
	f.locations[loc.ID] = &cp
	return nil
}

func (f *fakeLocationRepo) FindByID(_ context.Context, id int64) (*model.Location, error) {
	if loc, ok := f.locations[id]; ok {
		cp := *loc
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeLocationRepo) FindAll(_ context.Context, _ *dto.LocationFilters) ([]*model.Location, int64, error) {
	return nil, 0, nil
}

func (f *fakeLocationRepo) Update(_ context.Context, loc *model.Location) error {
	cp := *loc
	f.locations[loc.ID] = &cp
	return nil
}

func (f *fakeLocationRepo) NameExists(_ context.Context, name string, _ model.LocationType, _ int64) (bool, error) {
	return f.takenNames[name], nil
}

func (f *fakeLocationRepo) Finish(_ context.Context, id int64) (bool, error) {
	loc := f.locations[id]
	if loc.Status != model.LocationActive {
		return false, nil
	}
	loc.Status = model.LocationCompleted
	f.finishApplied = true
	return true, nil
}

func (f *fakeLocationRepo) Delete(_ context.Context, id int64) error {
	delete(f.locations, id)
	f.deletedID = id
	return nil
}

func (f *fakeLocationRepo) CountByTypeAndStatus(_ context.Context, _ model.LocationType, _ model.LocationStatus) (int64, error) {
	return 0, nil
}

type fakeUserReader struct {
	byEmail map[string]*model.User
}

func (f *fakeUserReader) FindByEmail(_ context.Context, email string) (*model.User, error) {
	return f.byEmail[email], nil
}

type fakeInventoryReader struct {
	sums   map[int64]int64
	counts map[int64]int
}

func (f *fakeInventoryReader) SumQuantityByLocation(_ context.Context, locationID int64) (int64, error) {
	return f.sums[locationID], nil
}

func (f *fakeInventoryReader) CountByLocation(_ context.Context, locationID int64) (int, error) {
	return f.counts[locationID], nil
}

func setup() (*fakeLocationRepo, *fakeInventoryReader, location.UseCase) {
	repo := &fakeLocationRepo{
		locations:  map[int64]*model.Location{},
		takenNames: map[string]bool{},
	}
	inv := &fakeInventoryReader{sums: map[int64]int64{}, counts: map[int64]int{}}
	uc := NewLocationUseCase(repo, &fakeUserReader{byEmail: map[string]*model.User{}}, inv, logger.NewNop())
	return repo, inv, uc
}

func seedSite(repo *fakeLocationRepo) *model.Location {
	repo.nextID++
	loc := &model.Location{
		BaseModel: model.BaseModel{ID: repo.nextID},
		Name:      "Site A",
		Type:      model.LocationSite,
		Status:    model.LocationActive,
	}
	repo.locations[loc.ID] = loc
	return loc
}

var admin = auth.Actor{ID: 1, Role: model.RoleSuperAdmin}

func TestCreateSiteWithEngineerAccount(t *testing.T) {
	repo, _, uc := setup()

	loc, err := uc.Create(context.Background(), admin, &dto.CreateLocationInput{
		Name: "Riverside Tower",
		Type: model.LocationSite,
		User: &dto.AssignedUserInput{Name: "Eko", Email: "eko@example.com", Password: "s3cret-pass"},
	})
	require.NoError(t, err)
	assert.Equal(t, model.LocationActive, loc.Status)

	require.NotNil(t, repo.createdUser)
	assert.Equal(t, model.RoleSiteEngineer, repo.createdUser.Role)
	require.NotNil(t, repo.createdUser.LocationID)
	assert.Equal(t, loc.ID, *repo.createdUser.LocationID)
	// stored hash verifies against the plaintext
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.createdUser.PasswordHash), []byte("s3cret-pass")))
}

func TestCreateStoreAssignsManagerRole(t *testing.T) {
	repo, _, uc := setup()

	_, err := uc.Create(context.Background(), admin, &dto.CreateLocationInput{
		Name: "Central Warehouse",
		Type: model.LocationStore,
		User: &dto.AssignedUserInput{Name: "Maya", Email: "maya@example.com", Password: "s3cret-pass"},
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleStoreManager, repo.createdUser.Role)
}

func TestCreateDuplicateNameConflicts(t *testing.T) {
	repo, _, uc := setup()
	repo.takenNames["Site A"] = true

	_, err := uc.Create(context.Background(), admin, &dto.CreateLocationInput{
		Name: "Site A", Type: model.LocationSite,
	})
	assert.True(t, errs.Is(err, errs.CodeConflict))
}

func TestCreateDeniedForNonAdmin(t *testing.T) {
	_, _, uc := setup()
	manager := auth.Actor{ID: 2, Role: model.RoleStoreManager, LocationID: ptr(10)}

	_, err := uc.Create(context.Background(), manager, &dto.CreateLocationInput{
		Name: "Rogue Store", Type: model.LocationStore,
	})
	assert.True(t, errs.Is(err, errs.CodeAuthorizationDenied))
}

func TestFinishRequiresDrainedInventory(t *testing.T) {
	repo, inv, uc := setup()
	site := seedSite(repo)
	inv.sums[site.ID] = 12

	_, err := uc.Finish(context.Background(), admin, site.ID)
	assert.True(t, errs.Is(err, errs.CodeIllegalState))
	assert.False(t, repo.finishApplied)
	assert.Equal(t, model.LocationActive, repo.locations[site.ID].Status)
}

func TestFinishCompletesDrainedSite(t *testing.T) {
	repo, _, uc := setup()
	site := seedSite(repo)

	finished, err := uc.Finish(context.Background(), admin, site.ID)
	require.NoError(t, err)
	assert.Equal(t, model.LocationCompleted, finished.Status)
	assert.True(t, repo.finishApplied)
}

func TestFinishRejectsStores(t *testing.T) {
	repo, _, uc := setup()
	repo.nextID++
	store := &model.Location{BaseModel: model.BaseModel{ID: repo.nextID}, Name: "Store", Type: model.LocationStore, Status: model.LocationActive}
	repo.locations[store.ID] = store

	_, err := uc.Finish(context.Background(), admin, store.ID)
	assert.True(t, errs.Is(err, errs.CodeValidation))
}

func TestDeleteBlockedByInventory(t *testing.T) {
	repo, inv, uc := setup()
	site := seedSite(repo)
	inv.counts[site.ID] = 3

	err := uc.Delete(context.Background(), admin, site.ID)
	assert.True(t, errs.Is(err, errs.CodeConflict))
	assert.Contains(t, repo.locations, site.ID)
}

func TestDeleteEmptyLocation(t *testing.T) {
	repo, _, uc := setup()
	site := seedSite(repo)

	require.NoError(t, uc.Delete(context.Background(), admin, site.ID))
	assert.Equal(t, site.ID, repo.deletedID)
}

func TestCompletedSiteHiddenFromScopedUsers(t *testing.T) {
	repo, _, uc := setup()
	site := seedSite(repo)
	repo.locations[site.ID].Status = model.LocationCompleted

	engineer := auth.Actor{ID: 3, Role: model.RoleSiteEngineer, LocationID: &site.ID}
	_, err := uc.Get(context.Background(), engineer, site.ID)
	assert.True(t, errs.Is(err, errs.CodeNotFound))

	got, err := uc.Get(context.Background(), admin, site.ID)
	require.NoError(t, err)
	assert.Equal(t, model.LocationCompleted, got.Status)
}
