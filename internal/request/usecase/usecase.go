package usecase

import (
	"context"
	"fmt"

	"github.com/consite/inventory-service/internal/auth"
	"github.com/consite/inventory-service/internal/errs"
	"github.com/consite/inventory-service/internal/model"
	"github.com/consite/inventory-service/internal/notify"
	"github.com/consite/inventory-service/internal/pkg/logger"
	"github.com/consite/inventory-service/internal/pkg/metrics"
	"github.com/consite/inventory-service/internal/request"
	"github.com/consite/inventory-service/internal/request/dto"
	"github.com/consite/inventory-service/internal/scope"
)

type requestUseCase struct {
	repo      request.Repository
	products  request.ProductReader
	locations request.LocationReader
	users     request.UserReader
	notifier  notify.Notifier
	logger    logger.Logger
}

func NewRequestUseCase(
	repo request.Repository,
	products request.ProductReader,
	locations request.LocationReader,
	users request.UserReader,
	notifier notify.Notifier,
	log logger.Logger,
) request.UseCase {
	return &requestUseCase{
		repo:      repo,
		products:  products,
		locations: locations,
		users:     users,
		notifier:  notifier,
		logger:    log,
	}
}

func (uc *requestUseCase) Create(ctx context.Context, actor auth.Actor, input *dto.CreateRequestInput) (*model.InventoryRequest, error) {
	if input.ProductID < 1 || input.Quantity <= 0 {
		return nil, errs.Validation("product and positive quantity are required")
	}

	locationID := input.LocationID
	if actor.Role.LocationScoped() {
		if actor.LocationID == nil {
			return nil, errs.Validation("an assigned location is required to request stock")
		}
		if locationID == 0 {
			locationID = *actor.LocationID
		}
		if locationID != *actor.LocationID {
			return nil, errs.AuthorizationDenied("you can only request stock for your assigned location")
		}
	} else if !actor.IsSuperAdmin() {
		return nil, errs.AuthorizationDenied("access denied")
	}
	if locationID < 1 {
		return nil, errs.Validation("location is required")
	}

	product, err := uc.products.FindByID(ctx, input.ProductID)
	if err != nil {
		return nil, errs.Internal("failed to load product", err)
	}
	if product == nil {
		return nil, errs.NotFound("product not found")
	}

	location, err := uc.locations.FindByID(ctx, locationID)
	if err != nil {
		return nil, errs.Internal("failed to load location", err)
	}
	if location == nil {
		return nil, errs.NotFound("location not found")
	}

	req := &model.InventoryRequest{
		ProductID:     input.ProductID,
		LocationID:    locationID,
		Quantity:      input.Quantity,
		RequestedByID: actor.ID,
		Status:        model.RequestPending,
	}
	if input.Notes != "" {
		notes := input.Notes
		req.Notes = &notes
	}

	if err := uc.repo.Create(ctx, req); err != nil {
		return nil, errs.Internal("failed to create inventory request", err)
	}

	// Requests from the field go to super admins for review.
	if actor.Role.LocationScoped() {
		adminIDs, err := uc.users.SuperAdminIDs(ctx)
		if err == nil {
			requester, _ := uc.users.FindByID(ctx, actor.ID)
			requesterName := actor.Email
			if requester != nil {
				requesterName = requester.Name
			}
			notifications := make([]notify.Notification, len(adminIDs))
			for i, adminID := range adminIDs {
				notifications[i] = notify.Notification{
					UserID: adminID,
					Type:   model.NotifyInfo,
					Message: fmt.Sprintf("New product assignment request: %s for %s by %s",
						product.Name, location.Name, requesterName),
					Link: "/dashboard/superadmin/assignments",
				}
			}
			uc.notifier.Notify(ctx, notifications...)
		}
	}

	req.Product = product
	req.Location = location
	return req, nil
}

func (uc *requestUseCase) Get(ctx context.Context, actor auth.Actor, id int64) (*model.InventoryRequest, error) {
	if id < 1 {
		return nil, errs.Validation("invalid request ID")
	}
	req, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errs.Internal("failed to load request", err)
	}
	if req == nil {
		return nil, errs.NotFound("request not found")
	}
	if !scope.CanAccessLocation(actor, req.LocationID) {
		return nil, errs.AuthorizationDenied("access denied")
	}
	return req, nil
}

func (uc *requestUseCase) List(ctx context.Context, actor auth.Actor, filters *dto.RequestFilters) ([]model.InventoryRequest, int, error) {
	filters.Scope = scope.ScopedFilter(actor, filters.Scope)
	items, count, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, 0, errs.Internal("failed to list requests", err)
	}
	return items, count, nil
}

func (uc *requestUseCase) PendingForActor(ctx context.Context, actor auth.Actor) ([]model.InventoryRequest, error) {
	if actor.LocationID == nil {
		return []model.InventoryRequest{}, nil
	}
	loc := *actor.LocationID
	items, _, err := uc.repo.FindAll(ctx, &dto.RequestFilters{
		Scope:  scope.QueryScope{LocationID: &loc},
		Status: model.RequestPending,
	})
	if err != nil {
		return nil, errs.Internal("failed to list pending requests", err)
	}
	return items, nil
}

func (uc *requestUseCase) Approve(ctx context.Context, actor auth.Actor, id int64) (*model.InventoryRequest, error) {
	req, err := uc.guardDecision(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	applied, err := uc.repo.Approve(ctx, id, actor.ID)
	if err != nil {
		metrics.ObserveLedgerMutation("approval", "error")
		return nil, errs.Internal("failed to approve request", err)
	}
	if !applied {
		// Lost the race: another approver processed it first.
		metrics.ObserveLedgerMutation("approval", "already_processed")
		return nil, errs.IllegalState("request has already been processed")
	}
	metrics.ObserveLedgerMutation("approval", "ok")

	uc.notifier.Notify(ctx, notify.Notification{
		UserID:  req.RequestedByID,
		Type:    model.NotifySuccess,
		Message: fmt.Sprintf("Your request for %s has been approved.", req.Product.Name),
		Link:    dashboardLink(req.Location),
	})

	return uc.repo.FindByID(ctx, id)
}

func (uc *requestUseCase) Reject(ctx context.Context, actor auth.Actor, id int64) (*model.InventoryRequest, error) {
	req, err := uc.guardDecision(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	applied, err := uc.repo.Reject(ctx, id, actor.ID)
	if err != nil {
		return nil, errs.Internal("failed to reject request", err)
	}
	if !applied {
		return nil, errs.IllegalState("request has already been processed")
	}

	uc.notifier.Notify(ctx, notify.Notification{
		UserID:  req.RequestedByID,
		Type:    model.NotifyError,
		Message: fmt.Sprintf("Your request for %s has been rejected.", req.Product.Name),
		Link:    "#",
	})

	return uc.repo.FindByID(ctx, id)
}

// guardDecision runs the shared approve/reject preconditions: the
// request exists, is still PENDING, and the approver has access to its
// location. The PENDING read here is advisory; the conditional update in
// the repository is what settles races.
func (uc *requestUseCase) guardDecision(ctx context.Context, actor auth.Actor, id int64) (*model.InventoryRequest, error) {
	if id < 1 {
		return nil, errs.Validation("invalid request ID")
	}
	req, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errs.Internal("failed to load request", err)
	}
	if req == nil {
		return nil, errs.NotFound("request not found")
	}
	if req.Status != model.RequestPending {
		return nil, errs.IllegalState("request has already been processed")
	}
	if !scope.CanAccessLocation(actor, req.LocationID) {
		return nil, errs.AuthorizationDenied("you can only process requests for your assigned location")
	}
	return req, nil
}

func dashboardLink(location *model.Location) string {
	if location != nil && location.Type == model.LocationSite {
		return "/dashboard/site"
	}
	return "/dashboard/store"
}
