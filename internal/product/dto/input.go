package dto

import "github.com/consite/inventory-service/internal/model"

type CreateProductInput struct {
	Name            string              `json:"name" binding:"required"`
	Category        string              `json:"category" binding:"required"`
	Unit            string              `json:"unit" binding:"required"`
	MainCategory    model.MainCategory  `json:"mainCategory"`
	Description     string              `json:"description"`
	Price           float64             `json:"price"`
	DefaultMinStock int64               `json:"defaultMinStock"`
	Status          model.ProductStatus `json:"status"`
	LocationID      *int64              `json:"locationId"`
}

type UpdateProductInput struct {
	ID              int64               `json:"-"`
	Name            string              `json:"name"`
	Category        string              `json:"category"`
	Unit            string              `json:"unit"`
	MainCategory    model.MainCategory  `json:"mainCategory"`
	Description     string              `json:"description"`
	Price           *float64            `json:"price"`
	DefaultMinStock *int64              `json:"defaultMinStock"`
	Status          model.ProductStatus `json:"status"`
}
