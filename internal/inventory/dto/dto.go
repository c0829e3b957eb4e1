package dto

import "github.com/consite/inventory-service/internal/scope"

type InventoryFilters struct {
	Scope      scope.QueryScope
	LocationID *int64 // explicit location filter, merged with Scope
	ProductID  *int64
	Category   string
	Search     string
	Page       int
	PageSize   int
}
