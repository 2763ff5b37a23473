package testutil

import (
	"fmt"
	"sync/atomic"

	"shopfront/internal/domain"
)

// Counter for generating unique IDs
var idCounter atomic.Int64

// nextID generates a unique ID for test fixtures
func nextID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, idCounter.Add(1))
}

// UserOptions allows customizing user fixture creation
type UserOptions struct {
	ID    string
	Name  string
	Email string
}

// NewTestUser creates a test user with sensible defaults
// Pass options to override specific fields
func NewTestUser(opts ...func(*UserOptions)) *domain.User {
	o := &UserOptions{
		ID:   nextID("user"),
		Name: fmt.Sprintf("Test User %d", idCounter.Load()),
	}

	for _, opt := range opts {
		opt(o)
	}

	if o.Email == "" {
		o.Email = fmt.Sprintf("user%d@example.com", idCounter.Load())
	}

	return &domain.User{
		ID:    o.ID,
		Name:  o.Name,
		Email: o.Email,
	}
}

// WithUserID sets the user ID
func WithUserID(id string) func(*UserOptions) {
	return func(o *UserOptions) {
		o.ID = id
	}
}

// WithName sets the user's name
func WithName(name string) func(*UserOptions) {
	return func(o *UserOptions) {
		if name != "" {
			o.Name = name
		}
	}
}

// WithEmail sets the email
func WithEmail(email string) func(*UserOptions) {
	return func(o *UserOptions) {
		o.Email = email
	}
}

// ProductOptions allows customizing product fixture creation
type ProductOptions struct {
	ID          string
	Name        string
	Description string
	Price       float64
	Image       string
}

// NewTestProduct creates a test product with sensible defaults
func NewTestProduct(opts ...func(*ProductOptions)) domain.Product {
	o := &ProductOptions{
		ID:          nextID("product"),
		Name:        fmt.Sprintf("Product %d", idCounter.Load()),
		Description: "A test product",
		Price:       9.99,
	}

	for _, opt := range opts {
		opt(o)
	}

	return domain.Product{
		ID:          o.ID,
		Name:        o.Name,
		Description: o.Description,
		Price:       o.Price,
		Image:       o.Image,
	}
}

// WithProductID sets the product ID
func WithProductID(id string) func(*ProductOptions) {
	return func(o *ProductOptions) {
		o.ID = id
	}
}

// WithProductName sets the product name
func WithProductName(name string) func(*ProductOptions) {
	return func(o *ProductOptions) {
		o.Name = name
	}
}

// WithPrice sets the product price
func WithPrice(price float64) func(*ProductOptions) {
	return func(o *ProductOptions) {
		o.Price = price
	}
}
