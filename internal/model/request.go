package model

type RequestStatus string

const (
	RequestPending  RequestStatus = "PENDING"
	RequestApproved RequestStatus = "APPROVED"
	RequestRejected RequestStatus = "REJECTED"
)

// InventoryRequest asks for a quantity of a product to be allocated to a
// location. PENDING is the only non-terminal state; approval upserts the
// quantity into the inventory ledger in the same transaction.
type InventoryRequest struct {
	BaseModel
	ProductID     int64         `db:"product_id" json:"product_id"`
	LocationID    int64         `db:"location_id" json:"location_id"`
	Quantity      int64         `db:"quantity" json:"quantity"`
	RequestedByID int64         `db:"requested_by_id" json:"requested_by_id"`
	ApprovedByID  *int64        `db:"approved_by_id" json:"approved_by_id"`
	Status        RequestStatus `db:"status" json:"status"`
	Notes         *string       `db:"notes" json:"notes"`
	Product       *Product      `db:"-" json:"product,omitempty"`  // Joined data
	Location      *Location     `db:"-" json:"location,omitempty"` // Joined data
	RequestedBy   *User         `db:"-" json:"requested_by,omitempty"`
	ApprovedBy    *User         `db:"-" json:"approved_by,omitempty"`
}
