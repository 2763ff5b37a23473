// Package orders is the order client: placement, listing, cancellation,
// and the single opaque payment call.
package orders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"shopfront/internal/api"
	"shopfront/internal/domain"
)

type Client struct {
	api *api.Client
}

func NewClient(apiClient *api.Client) *Client {
	return &Client{api: apiClient}
}

// Create places an order from the current cart
func (c *Client) Create(ctx context.Context) (*domain.Order, error) {
	var order domain.Order
	if err := c.api.Post(ctx, "/orders", nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// List fetches all orders of the current user. The backend has been seen
// returning either a bare array or an object wrapping it; both are handled.
func (c *Client) List(ctx context.Context) ([]domain.Order, error) {
	raw, err := c.api.Do(ctx, http.MethodGet, "/orders", nil)
	if err != nil {
		return nil, err
	}

	var items []domain.Order
	if err := json.Unmarshal(raw, &items); err == nil {
		return items, nil
	}

	var wrapped struct {
		Orders []domain.Order `json:"orders"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("decode order list: %w", err)
	}
	return wrapped.Orders, nil
}

// Get fetches a single order by ID
func (c *Client) Get(ctx context.Context, orderID string) (*domain.Order, error) {
	var order domain.Order
	if err := c.api.Get(ctx, "/orders/"+orderID, &order); err != nil {
		return nil, notFoundOr(err)
	}
	return &order, nil
}

// Cancel cancels an order
func (c *Client) Cancel(ctx context.Context, orderID string) (*domain.Order, error) {
	var order domain.Order
	if err := c.api.Patch(ctx, "/orders/"+orderID+"/cancel", nil, &order); err != nil {
		return nil, notFoundOr(err)
	}
	return &order, nil
}

// Pay applies a payment to an order. Payment processing happens entirely
// server-side; this is one opaque call.
func (c *Client) Pay(ctx context.Context, input domain.PaymentInput) (*domain.Order, error) {
	var order domain.Order
	if err := c.api.Post(ctx, "/orders/payment", input, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func notFoundOr(err error) error {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
		return fmt.Errorf("%w: %s", domain.ErrOrderNotFound, apiErr.Message)
	}
	return err
}
