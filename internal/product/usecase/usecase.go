package usecase

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"time"

	"github.com/consite/inventory-service/internal/auth"
	"github.com/consite/inventory-service/internal/errs"
	"github.com/consite/inventory-service/internal/model"
	"github.com/consite/inventory-service/internal/notify"
	"github.com/consite/inventory-service/internal/pkg/cache"
	"github.com/consite/inventory-service/internal/pkg/logger"
	"github.com/consite/inventory-service/internal/pkg/search"
	"github.com/consite/inventory-service/internal/product"
	"github.com/consite/inventory-service/internal/product/dto"
	"go.uber.org/zap"
)

const productIndex = "products"

type productUseCase struct {
	repo      product.Repository
	users     product.UserReader
	locations product.LocationReader
	notifier  notify.Notifier
	cache     *cache.RedisClient
	es        *search.Client
	logger    logger.Logger
}

func NewProductUseCase(
	repo product.Repository,
	users product.UserReader,
	locations product.LocationReader,
	notifier notify.Notifier,
	cache *cache.RedisClient,
	es *search.Client,
	log logger.Logger,
) product.UseCase {
	return &productUseCase{
		repo:      repo,
		users:     users,
		locations: locations,
		notifier:  notifier,
		cache:     cache,
		es:        es,
		logger:    log,
	}
}

func (uc *productUseCase) Create(ctx context.Context, actor auth.Actor, input *dto.CreateProductInput) (*model.Product, error) {
	if input.Name == "" || input.Category == "" || input.Unit == "" {
		return nil, errs.Validation("name, category and unit are required")
	}
	if input.Price < 0 {
		return nil, errs.Validation("price cannot be negative")
	}

	mainCategory := input.MainCategory
	if mainCategory == "" {
		mainCategory = model.MainCategoryConsumable
	}

	locationID := input.LocationID
	if actor.Role.LocationScoped() {
		// Scoped creators always register products against their own
		// location and never pick the approval outcome themselves.
		if actor.LocationID == nil {
			return nil, errs.Validation("an assigned location is required to register a product")
		}
		if locationID != nil && *locationID != *actor.LocationID {
			return nil, errs.AuthorizationDenied("you can only register products for your assigned location")
		}
		locationID = actor.LocationID
	}

	status := model.ProductActive
	if locationID != nil {
		status = model.ProductApproved
	}
	if actor.IsSuperAdmin() {
		if input.Status != "" {
			status = input.Status
		}
	} else if locationID != nil {
		status = model.ProductPendingApproval
	}

	code := categoryCode(input.Category)
	last, err := uc.repo.LastSKU(ctx, fmt.Sprintf("PRD-%s-", code))
	if err != nil {
		return nil, errs.Internal("failed to generate sku", err)
	}

	var description *string
	if input.Description != "" {
		description = &input.Description
	}

	p := &model.Product{
		SKU:             nextSKU(code, last),
		Name:            input.Name,
		Category:        input.Category,
		MainCategory:    mainCategory,
		Unit:            input.Unit,
		Description:     description,
		Price:           input.Price,
		DefaultMinStock: input.DefaultMinStock,
		Status:          status,
	}

	if err := uc.repo.Create(ctx, p, locationID); err != nil {
		return nil, errs.Internal("failed to create product", err)
	}

	if status == model.ProductPendingApproval {
		uc.notifySuperAdmins(ctx, fmt.Sprintf("New product pending approval: %s (%s) by %s", p.Name, p.SKU, actor.Email))
	} else if locationID != nil {
		uc.notifyLocationAssignee(ctx, *locationID, p)
	}

	go uc.invalidateProductCache(context.Background())
	go uc.syncToSearch(context.Background(), p)

	return p, nil
}

func (uc *productUseCase) Get(ctx context.Context, id int64) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errs.Internal("failed to load product", err)
	}
	if p == nil {
		return nil, errs.NotFound("product not found")
	}
	return p, nil
}

func (uc *productUseCase) List(ctx context.Context, filters *dto.ProductFilters) ([]*model.Product, int64, error) {
	filters.Normalize()
	if len(filters.Statuses) == 0 {
		filters.Statuses = []model.ProductStatus{model.ProductActive, model.ProductApproved}
	}

	cacheKey, keyErr := uc.cacheKey(filters)
	if keyErr == nil && uc.cache != nil {
		val, err := uc.cache.Client.Get(ctx, cacheKey).Result()
		if err == nil {
			var cached struct {
				Products []*model.Product
				Count    int64
			}
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				return cached.Products, cached.Count, nil
			}
		}
	}

	if filters.Search != "" && uc.es != nil {
		statuses := make([]string, 0, len(filters.Statuses))
		for _, s := range filters.Statuses {
			statuses = append(statuses, string(s))
		}
		q := map[string]interface{}{
			"query": map[string]interface{}{
				"bool": map[string]interface{}{
					"must": []map[string]interface{}{
						{
							"query_string": map[string]interface{}{
								"query":  fmt.Sprintf("*%s*", filters.Search),
								"fields": []string{"name^3", "sku", "category", "description"},
							},
						},
						{
							"terms": map[string]interface{}{
								"status": statuses,
							},
						},
					},
				},
			},
			"from": filters.Offset(),
			"size": filters.PageSize,
		}

		res, err := uc.es.Search(ctx, productIndex, q)
		if err == nil {
			products := make([]*model.Product, 0, len(res.Hits.Hits))
			for _, hit := range res.Hits.Hits {
				var p model.Product
				if err := json.Unmarshal(hit.Source, &p); err == nil {
					products = append(products, &p)
				}
			}
			return products, int64(res.Hits.Total.Value), nil
		}
		uc.logger.Error("search backend failed, falling back to DB", zap.Error(err))
	}

	products, count, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, 0, errs.Internal("failed to list products", err)
	}

	if keyErr == nil && uc.cache != nil {
		cached := struct {
			Products []*model.Product
			Count    int64
		}{Products: products, Count: count}
		if data, err := json.Marshal(cached); err == nil {
			uc.cache.Client.Set(ctx, cacheKey, data, 5*time.Minute)
		}
	}

	return products, count, nil
}

func (uc *productUseCase) Update(ctx context.Context, actor auth.Actor, input *dto.UpdateProductInput) (*model.Product, error) {
	if !actor.IsSuperAdmin() {
		return nil, errs.AuthorizationDenied("only super admins can update products")
	}

	p, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, errs.Internal("failed to load product", err)
	}
	if p == nil {
		return nil, errs.NotFound("product not found")
	}

	if input.Name != "" {
		p.Name = input.Name
	}
	if input.Category != "" {
		p.Category = input.Category
	}
	if input.MainCategory != "" {
		p.MainCategory = input.MainCategory
	}
	if input.Unit != "" {
		p.Unit = input.Unit
	}
	if input.Description != "" {
		p.Description = &input.Description
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, errs.Validation("price cannot be negative")
		}
		p.Price = *input.Price
	}
	if input.DefaultMinStock != nil {
		p.DefaultMinStock = *input.DefaultMinStock
	}
	if input.Status != "" {
		p.Status = input.Status
	}

	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, errs.Internal("failed to update product", err)
	}

	go uc.invalidateProductCache(context.Background())
	go uc.syncToSearch(context.Background(), p)

	return p, nil
}

func (uc *productUseCase) Approve(ctx context.Context, actor auth.Actor, id int64) (*model.Product, error) {
	p, err := uc.decide(ctx, actor, id, model.ProductApproved)
	if err != nil {
		return nil, err
	}
	uc.notifyHolders(ctx, p, model.NotifySuccess,
		fmt.Sprintf("Product Approved: %s (%s).", p.Name, p.SKU), "/dashboard/store/products")
	return p, nil
}

func (uc *productUseCase) Reject(ctx context.Context, actor auth.Actor, id int64) (*model.Product, error) {
	p, err := uc.decide(ctx, actor, id, model.ProductRejected)
	if err != nil {
		return nil, err
	}
	uc.notifyHolders(ctx, p, model.NotifyWarning,
		fmt.Sprintf("Product Rejected: %s (%s).", p.Name, p.SKU), "#")
	return p, nil
}

// decide moves a pending product to its approval outcome. Only super
// admins rule on pending products, and only PENDING_APPROVAL products
// can be decided.
func (uc *productUseCase) decide(ctx context.Context, actor auth.Actor, id int64, status model.ProductStatus) (*model.Product, error) {
	if !actor.IsSuperAdmin() {
		return nil, errs.AuthorizationDenied("only super admins can review products")
	}

	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errs.Internal("failed to load product", err)
	}
	if p == nil {
		return nil, errs.NotFound("product not found")
	}
	if p.Status != model.ProductPendingApproval {
		return nil, errs.IllegalState("product is not pending approval")
	}

	applied, err := uc.repo.SetStatus(ctx, id, status)
	if err != nil {
		return nil, errs.Internal("failed to update product status", err)
	}
	if !applied {
		return nil, errs.IllegalState("product has already been processed")
	}
	p.Status = status

	go uc.invalidateProductCache(context.Background())
	go uc.syncToSearch(context.Background(), p)

	return p, nil
}

func (uc *productUseCase) Delete(ctx context.Context, actor auth.Actor, id int64) error {
	if !actor.IsSuperAdmin() {
		return errs.AuthorizationDenied("only super admins can delete products")
	}

	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return errs.Internal("failed to load product", err)
	}
	if p == nil {
		return nil
	}

	// Soft delete: the row stays for history, but default listings and
	// new requests no longer see it.
	if _, err := uc.repo.SetStatus(ctx, id, model.ProductInactive); err != nil {
		return errs.Internal("failed to delete product", err)
	}

	go uc.invalidateProductCache(context.Background())
	if uc.es != nil {
		go func() {
			if err := uc.es.Delete(context.Background(), productIndex, fmt.Sprintf("%d", id)); err != nil {
				uc.logger.Error("failed to delete product from search index", zap.Error(err))
			}
		}()
	}

	return nil
}

func (uc *productUseCase) notifySuperAdmins(ctx context.Context, message string) {
	admins, err := uc.users.SuperAdminIDs(ctx)
	if err != nil {
		uc.logger.Error("failed to load super admins for notification", zap.Error(err))
		return
	}
	notifications := make([]notify.Notification, 0, len(admins))
	for _, adminID := range admins {
		notifications = append(notifications, notify.Notification{
			UserID:  adminID,
			Type:    model.NotifyInfo,
			Message: message,
			Link:    "/dashboard/superadmin/products",
		})
	}
	uc.notifier.Notify(ctx, notifications...)
}

// notifyLocationAssignee tells the manager or engineer of the initial
// location that a new, already-approved product now sits in their
// catalog. Pending products notify super admins instead.
func (uc *productUseCase) notifyLocationAssignee(ctx context.Context, locationID int64, p *model.Product) {
	loc, err := uc.locations.FindByID(ctx, locationID)
	if err != nil {
		uc.logger.Error("failed to load location for product notification", zap.Error(err))
		return
	}
	if loc == nil || loc.AssignedUserID == nil {
		return
	}
	link := "/dashboard/store/products"
	if loc.Type == model.LocationSite {
		link = "/dashboard/site"
	}
	uc.notifier.Notify(ctx, notify.Notification{
		UserID:  *loc.AssignedUserID,
		Type:    model.NotifySuccess,
		Message: fmt.Sprintf("New product %s assigned to your location.", p.Name),
		Link:    link,
	})
}

func (uc *productUseCase) notifyHolders(ctx context.Context, p *model.Product, severity model.NotificationSeverity, message, link string) {
	recipients, err := uc.repo.HolderRecipients(ctx, p.ID)
	if err != nil {
		uc.logger.Error("failed to load product holders for notification", zap.Error(err))
		return
	}
	notifications := make([]notify.Notification, 0, len(recipients))
	for _, userID := range recipients {
		notifications = append(notifications, notify.Notification{
			UserID:  userID,
			Type:    severity,
			Message: message,
			Link:    link,
		})
	}
	uc.notifier.Notify(ctx, notifications...)
}

func (uc *productUseCase) syncToSearch(ctx context.Context, p *model.Product) {
	if uc.es == nil {
		return
	}
	mapping := `{
		"mappings": {
			"properties": {
				"sku": { "type": "keyword" },
				"name": { "type": "text" },
				"category": { "type": "keyword" },
				"main_category": { "type": "keyword" },
				"description": { "type": "text" },
				"status": { "type": "keyword" },
				"price": { "type": "double" },
				"created_at": { "type": "date" }
			}
		}
	}`
	_ = uc.es.CreateIndex(ctx, productIndex, mapping)

	if err := uc.es.Index(ctx, productIndex, fmt.Sprintf("%d", p.ID), p); err != nil {
		uc.logger.Error("failed to index product", zap.Error(err))
	}
}

func (uc *productUseCase) cacheKey(filters *dto.ProductFilters) (string, error) {
	data, err := json.Marshal(filters)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("products:list:%x", md5.Sum(data)), nil
}

func (uc *productUseCase) invalidateProductCache(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	keys, err := uc.cache.Client.Keys(ctx, "products:list:*").Result()
	if err == nil && len(keys) > 0 {
		uc.cache.Client.Del(ctx, keys...)
	}
}
