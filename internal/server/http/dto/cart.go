package dto

// AddCartItemRequest describes the add-to-cart payload.
type AddCartItemRequest struct {
	ProductID int64  `json:"productId"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

// UpdateCartItemRequest describes the quantity change payload.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}
