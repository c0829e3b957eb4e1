package dto

type CreateRequestInput struct {
	ProductID  int64  `json:"productId" binding:"required"`
	LocationID int64  `json:"locationId"`
	Quantity   int64  `json:"quantity" binding:"required"`
	Notes      string `json:"notes"`
}
