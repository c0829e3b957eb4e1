package model

import "time"

// Inventory is one (location, product) quantity record. It is the sole
// authoritative count; quantity is never derived and never negative.
type Inventory struct {
	ID         int64     `db:"id" json:"id"`
	LocationID int64     `db:"location_id" json:"location_id"`
	ProductID  int64     `db:"product_id" json:"product_id"`
	Quantity   int64     `db:"quantity" json:"quantity"`
	MinStock   int64     `db:"min_stock" json:"min_stock"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
	Product    *Product  `db:"-" json:"product,omitempty"`  // Joined data
	Location   *Location `db:"-" json:"location,omitempty"` // Joined data
}
