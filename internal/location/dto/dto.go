package dto

import (
	"github.com/consite/inventory-service/internal/model"
	"github.com/consite/inventory-service/internal/scope"
)

type LocationFilters struct {
	Scope           scope.QueryScope
	Type            model.LocationType
	Statuses        []model.LocationStatus
	Search          string
	IncludeFinished bool
	Page            int
	PageSize        int
}

func (f *LocationFilters) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 || f.PageSize > 100 {
		f.PageSize = 20
	}
}

func (f *LocationFilters) Offset() int {
	return (f.Page - 1) * f.PageSize
}
