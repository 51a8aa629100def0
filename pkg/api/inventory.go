package api

// ItemRequest represents the body of inventory add and update calls
type ItemRequest struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
}

// ItemErrorResponse represents a failed inventory-surface call
type ItemErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse carries a confirmation message
type MessageResponse struct {
	Message string `json:"message"`
}
