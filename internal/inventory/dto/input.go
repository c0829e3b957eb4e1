package dto

type AdjustInput struct {
	InventoryID int64  `json:"inventoryId" binding:"required"`
	Quantity    int64  `json:"quantity" binding:"required"`
	Reason      string `json:"reason"`
}

type TransferInput struct {
	InventoryID      int64 `json:"inventoryId" binding:"required"`
	TargetLocationID int64 `json:"targetLocationId" binding:"required"`
	// Quantity defaults to 1 when omitted: whole-unit fixed-asset moves.
	Quantity int64  `json:"quantity"`
	Reason   string `json:"reason"`
}
