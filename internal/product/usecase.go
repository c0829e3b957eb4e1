package product

import (
	"context"

	"github.com/consite/inventory-service/internal/auth"
	"github.com/consite/inventory-service/internal/model"
	"github.com/consite/inventory-service/internal/product/dto"
)

type UseCase interface {
	Create(ctx context.Context, actor auth.Actor, input *dto.CreateProductInput) (*model.Product, error)
	Get(ctx context.Context, id int64) (*model.Product, error)
	List(ctx context.Context, filters *dto.ProductFilters) ([]*model.Product, int64, error)
	Update(ctx context.Context, actor auth.Actor, input *dto.UpdateProductInput) (*model.Product, error)
	Approve(ctx context.Context, actor auth.Actor, id int64) (*model.Product, error)
	Reject(ctx context.Context, actor auth.Actor, id int64) (*model.Product, error)
	Delete(ctx context.Context, actor auth.Actor, id int64) error
}
