package dto

import "github.com/consite/inventory-service/internal/model"

// ProductFilters narrows product listings. When Statuses is empty the
// caller is expected to apply the usable-status default before querying.
type ProductFilters struct {
	Statuses     []model.ProductStatus
	Category     string
	MainCategory model.MainCategory
	Search       string
	Page         int
	PageSize     int
}

func (f *ProductFilters) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 || f.PageSize > 100 {
		f.PageSize = 20
	}
}

func (f *ProductFilters) Offset() int {
	return (f.Page - 1) * f.PageSize
}
