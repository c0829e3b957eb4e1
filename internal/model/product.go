package model

type MainCategory string

const (
	MainCategoryConsumable MainCategory = "CONSUMABLE_GOODS"
	MainCategoryFixedAsset MainCategory = "FIXED_ASSET"
)

type ProductStatus string

const (
	ProductPendingApproval ProductStatus = "PENDING_APPROVAL"
	ProductApproved        ProductStatus = "APPROVED"
	ProductActive          ProductStatus = "ACTIVE"
	ProductRejected        ProductStatus = "REJECTED"
	ProductInactive        ProductStatus = "INACTIVE"
)

// Usable reports whether the product is visible in default listings and
// may participate in inventory operations.
func (s ProductStatus) Usable() bool {
	return s == ProductActive || s == ProductApproved
}

type Product struct {
	BaseModel
	SKU             string        `db:"sku" json:"sku"`
	Name            string        `db:"name" json:"name"`
	Category        string        `db:"category" json:"category"`
	MainCategory    MainCategory  `db:"main_category" json:"main_category"`
	Unit            string        `db:"unit" json:"unit"`
	Description     *string       `db:"description" json:"description"`
	Price           float64       `db:"price" json:"price"`
	DefaultMinStock int64         `db:"default_min_stock" json:"default_min_stock"`
	Status          ProductStatus `db:"status" json:"status"`
}
