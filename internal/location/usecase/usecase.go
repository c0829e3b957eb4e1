package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/consite/inventory-service/internal/auth"
	"github.com/consite/inventory-service/internal/errs"
	"github.com/consite/inventory-service/internal/location"
	"github.com/consite/inventory-service/internal/location/dto"
	"github.com/consite/inventory-service/internal/model"
	"github.com/consite/inventory-service/internal/pkg/logger"
	"github.com/consite/inventory-service/internal/scope"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type locationUseCase struct {
	repo      location.Repository
	users     location.UserReader
	inventory location.InventoryReader
	logger    logger.Logger
}

func NewLocationUseCase(
	repo location.Repository,
	users location.UserReader,
	inventory location.InventoryReader,
	log logger.Logger,
) location.UseCase {
	return &locationUseCase{
		repo:      repo,
		users:     users,
		inventory: inventory,
		logger:    log,
	}
}

func (uc *locationUseCase) Create(ctx context.Context, actor auth.Actor, input *dto.CreateLocationInput) (*model.Location, error) {
	if !actor.IsSuperAdmin() {
		return nil, errs.AuthorizationDenied("only super admins can create locations")
	}
	if input.Type != model.LocationStore && input.Type != model.LocationSite {
		return nil, errs.Validation("type must be STORE or SITE")
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, errs.Validation("name is required")
	}

	exists, err := uc.repo.NameExists(ctx, input.Name, input.Type, 0)
	if err != nil {
		return nil, errs.Internal("failed to check location name", err)
	}
	if exists {
		return nil, errs.Conflict(fmt.Sprintf("a %s with this name already exists", strings.ToLower(string(input.Type))))
	}

	loc := &model.Location{
		Name:        strings.TrimSpace(input.Name),
		Type:        input.Type,
		Status:      model.LocationActive,
		Region:      optional(input.Region),
		Description: optional(input.Description),
		Address:     optional(input.Address),
	}

	var assigned *model.User
	if input.User != nil {
		existing, err := uc.users.FindByEmail(ctx, input.User.Email)
		if err != nil {
			return nil, errs.Internal("failed to check user email", err)
		}
		if existing != nil {
			return nil, errs.Conflict("a user with this email already exists")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(input.User.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, errs.Internal("failed to hash password", err)
		}

		role := model.RoleStoreManager
		if input.Type == model.LocationSite {
			role = model.RoleSiteEngineer
		}
		assigned = &model.User{
			Email:        input.User.Email,
			Name:         input.User.Name,
			PasswordHash: string(hash),
			Role:         role,
		}
	}

	if err := uc.repo.CreateWithUser(ctx, loc, assigned); err != nil {
		return nil, errs.Internal("failed to create location", err)
	}

	uc.logger.Info("location created",
		zap.Int64("location_id", loc.ID),
		zap.String("type", string(loc.Type)),
		zap.Int64("actor_id", actor.ID))

	if assigned != nil {
		loc.AssignedUser = assigned
	}
	return loc, nil
}

func (uc *locationUseCase) Get(ctx context.Context, actor auth.Actor, id int64) (*model.Location, error) {
	loc, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errs.Internal("failed to load location", err)
	}
	if loc == nil {
		return nil, errs.NotFound("location not found")
	}
	if !scope.CanAccessLocation(actor, loc.ID) {
		return nil, errs.AuthorizationDenied("you do not have access to this location")
	}
	// Finished sites drop out of everyone's view except super admins.
	if loc.Status == model.LocationCompleted && !actor.IsSuperAdmin() {
		return nil, errs.NotFound("location not found")
	}
	return loc, nil
}

func (uc *locationUseCase) List(ctx context.Context, actor auth.Actor, filters *dto.LocationFilters) ([]*model.Location, int64, error) {
	filters.Normalize()
	filters.Scope = scope.ScopedFilter(actor, filters.Scope)
	if !actor.IsSuperAdmin() || !filters.IncludeFinished {
		if len(filters.Statuses) == 0 {
			filters.Statuses = []model.LocationStatus{model.LocationActive}
		}
	}
	locations, count, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, 0, errs.Internal("failed to list locations", err)
	}
	return locations, count, nil
}

func (uc *locationUseCase) Update(ctx context.Context, actor auth.Actor, input *dto.UpdateLocationInput) (*model.Location, error) {
	if !actor.IsSuperAdmin() {
		return nil, errs.AuthorizationDenied("only super admins can update locations")
	}

	loc, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, errs.Internal("failed to load location", err)
	}
	if loc == nil {
		return nil, errs.NotFound("location not found")
	}

	if input.Name != "" && !strings.EqualFold(input.Name, loc.Name) {
		exists, err := uc.repo.NameExists(ctx, input.Name, loc.Type, loc.ID)
		if err != nil {
			return nil, errs.Internal("failed to check location name", err)
		}
		if exists {
			return nil, errs.Conflict(fmt.Sprintf("a %s with this name already exists", strings.ToLower(string(loc.Type))))
		}
		loc.Name = strings.TrimSpace(input.Name)
	}
	if input.Region != "" {
		loc.Region = optional(input.Region)
	}
	if input.Description != "" {
		loc.Description = optional(input.Description)
	}
	if input.Address != "" {
		loc.Address = optional(input.Address)
	}

	if err := uc.repo.Update(ctx, loc); err != nil {
		return nil, errs.Internal("failed to update location", err)
	}
	return loc, nil
}

func (uc *locationUseCase) Finish(ctx context.Context, actor auth.Actor, id int64) (*model.Location, error) {
	if !actor.IsSuperAdmin() {
		return nil, errs.AuthorizationDenied("only super admins can finish a site")
	}

	loc, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errs.Internal("failed to load location", err)
	}
	if loc == nil {
		return nil, errs.NotFound("location not found")
	}
	if loc.Type != model.LocationSite {
		return nil, errs.Validation("only sites can be finished")
	}
	if loc.Status != model.LocationActive {
		return nil, errs.IllegalState("site is not active")
	}

	remaining, err := uc.inventory.SumQuantityByLocation(ctx, id)
	if err != nil {
		return nil, errs.Internal("failed to check site inventory", err)
	}
	if remaining != 0 {
		return nil, errs.IllegalState(fmt.Sprintf("site still holds %d units of inventory; transfer or consume them first", remaining))
	}

	applied, err := uc.repo.Finish(ctx, id)
	if err != nil {
		return nil, errs.Internal("failed to finish site", err)
	}
	if !applied {
		return nil, errs.IllegalState("site has already been finished")
	}
	loc.Status = model.LocationCompleted

	uc.logger.Info("site finished", zap.Int64("location_id", id), zap.Int64("actor_id", actor.ID))
	return loc, nil
}

func (uc *locationUseCase) Delete(ctx context.Context, actor auth.Actor, id int64) error {
	if !actor.IsSuperAdmin() {
		return errs.AuthorizationDenied("only super admins can delete locations")
	}

	loc, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return errs.Internal("failed to load location", err)
	}
	if loc == nil {
		return errs.NotFound("location not found")
	}

	records, err := uc.inventory.CountByLocation(ctx, id)
	if err != nil {
		return errs.Internal("failed to check location inventory", err)
	}
	if records > 0 {
		return errs.Conflict("location still has inventory records and cannot be deleted")
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return errs.Internal("failed to delete location", err)
	}

	uc.logger.Info("location deleted", zap.Int64("location_id", id), zap.Int64("actor_id", actor.ID))
	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
