package domain

import (
	"errors"
	"time"
)

var ErrProductNotFound = errors.New("product not found")

// Product represents a catalog entry
type Product struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Image       string    `json:"image,omitempty"`
	IsDeleted   bool      `json:"isDeleted"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateProductInput is the payload for creating a product
type CreateProductInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image,omitempty"`
}

// UpdateProductInput is a partial update; nil fields are left unchanged
type UpdateProductInput struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Image       *string  `json:"image,omitempty"`
}

// ProductQuery holds the listing filters understood by the backend
type ProductQuery struct {
	Page      int
	Limit     int
	Search    string
	MinPrice  *float64
	MaxPrice  *float64
	SortBy    string // name, price, createdAt
	SortOrder string // asc, desc
}

// PageMeta is the pagination block attached to list responses
type PageMeta struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// ProductPage is one page of catalog results
type ProductPage struct {
	Products []Product `json:"data"`
	Meta     PageMeta  `json:"meta"`
}
