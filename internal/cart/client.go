// Package cart is the cart client for the current user.
package cart

import (
	"context"

	"shopfront/internal/api"
	"shopfront/internal/domain"
)

type Client struct {
	api *api.Client
}

func NewClient(apiClient *api.Client) *Client {
	return &Client{api: apiClient}
}

// AddInput adds a product to the cart
type AddInput struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// UpdateItemInput changes the quantity of an existing line
type UpdateItemInput struct {
	Quantity int `json:"quantity"`
}

// Get fetches the current user's cart
func (c *Client) Get(ctx context.Context) (*domain.Cart, error) {
	var cart domain.Cart
	if err := c.api.Get(ctx, "/cart", &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// Add puts quantity units of a product into the cart
func (c *Client) Add(ctx context.Context, productID string, quantity int) (*domain.Cart, error) {
	var cart domain.Cart
	if err := c.api.Post(ctx, "/cart", AddInput{ProductID: productID, Quantity: quantity}, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// UpdateItem sets the quantity of an existing cart line
func (c *Client) UpdateItem(ctx context.Context, productID string, quantity int) (*domain.Cart, error) {
	var cart domain.Cart
	if err := c.api.Patch(ctx, "/cart/"+productID, UpdateItemInput{Quantity: quantity}, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// Remove deletes one product line from the cart
func (c *Client) Remove(ctx context.Context, productID string) (*domain.Cart, error) {
	var cart domain.Cart
	if err := c.api.Delete(ctx, "/cart/"+productID, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// Clear empties the cart
func (c *Client) Clear(ctx context.Context) (*domain.Cart, error) {
	var cart domain.Cart
	if err := c.api.Delete(ctx, "/cart", &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}
