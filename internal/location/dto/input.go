package dto

import "github.com/consite/inventory-service/internal/model"

// AssignedUserInput is the manager or engineer account created together
// with a new location.
type AssignedUserInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type CreateLocationInput struct {
	Name        string             `json:"name" binding:"required"`
	Type        model.LocationType `json:"type" binding:"required"`
	Region      string             `json:"region"`
	Description string             `json:"description"`
	Address     string             `json:"address"`
	User        *AssignedUserInput `json:"user"`
}

type UpdateLocationInput struct {
	ID          int64  `json:"-"`
	Name        string `json:"name"`
	Region      string `json:"region"`
	Description string `json:"description"`
	Address     string `json:"address"`
}
