package model

type LocationType string

const (
	LocationStore LocationType = "STORE"
	LocationSite  LocationType = "SITE"
)

type LocationStatus string

const (
	LocationActive    LocationStatus = "ACTIVE"
	LocationCompleted LocationStatus = "COMPLETED"
	LocationArchived  LocationStatus = "ARCHIVED"
)

// Location is a store (warehouse) or a site (construction project). It is
// the unit of inventory custody: every inventory record, request and
// access decision is keyed by a location.
type Location struct {
	BaseModel
	Name        string         `db:"name" json:"name"`
	Type        LocationType   `db:"type" json:"type"`
	Status      LocationStatus `db:"status" json:"status"`
	Region      *string        `db:"region" json:"region"`
	Description *string        `db:"description" json:"description"`
	Address     *string        `db:"address" json:"address"`
	// AssignedUserID is the store manager or site engineer in charge.
	AssignedUserID *int64 `db:"assigned_user_id" json:"assigned_user_id"`
	AssignedUser   *User  `db:"-" json:"assigned_user,omitempty"` // Joined data
	InventoryCount int    `db:"-" json:"inventory_count,omitempty"`
}
