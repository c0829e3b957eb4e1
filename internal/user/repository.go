package user

import (
	"context"

	"github.com/consite/inventory-service/internal/model"
)

type Repository interface {
	FindByID(ctx context.Context, id int64) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// SuperAdminIDs lists active super admins for notification fan-out.
	SuperAdminIDs(ctx context.Context) ([]int64, error)
}
