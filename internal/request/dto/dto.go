package dto

import (
	"github.com/consite/inventory-service/internal/model"
	"github.com/consite/inventory-service/internal/scope"
)

type RequestFilters struct {
	Scope    scope.QueryScope
	Status   model.RequestStatus
	Page     int
	PageSize int
}
