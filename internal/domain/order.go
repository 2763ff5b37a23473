package domain

import (
	"errors"
	"time"
)

var ErrOrderNotFound = errors.New("order not found")

// OrderStatus is the backend's order lifecycle state
type OrderStatus string

const (
	OrderUnpaid     OrderStatus = "unpaid"
	OrderPaid       OrderStatus = "paid"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// OrderItem is a product line frozen into an order
type OrderItem struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Subtotal    float64 `json:"subtotal"`
}

// Order represents a placed order
type Order struct {
	ID          string      `json:"_id"`
	UserID      string      `json:"userId"`
	Products    []OrderItem `json:"products"`
	TotalAmount float64     `json:"totalAmount"`
	Status      OrderStatus `json:"status"`
	PaymentID   string      `json:"paymentId,omitempty"`
	PaidAt      *time.Time  `json:"paidAt,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// PaymentInput identifies the payment to apply to an order. Payment itself
// is handled by the backend; this is a single opaque call from the client.
type PaymentInput struct {
	PaymentID string `json:"paymentId"`
	OrderID   string `json:"orderId"`
}
