package domain

import "time"

// CartProduct is the populated product reference inside a cart item
type CartProduct struct {
	ID          string  `json:"_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image,omitempty"`
}

// CartItem is one line of the cart; Price is the unit price captured at
// the time the item was added
type CartItem struct {
	Product  CartProduct `json:"productId"`
	Quantity int         `json:"quantity"`
	Price    float64     `json:"price"`
}

// Cart represents the current user's cart
type Cart struct {
	ID          string     `json:"_id"`
	UserID      string     `json:"userId"`
	Items       []CartItem `json:"items"`
	TotalAmount float64    `json:"totalAmount"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}
