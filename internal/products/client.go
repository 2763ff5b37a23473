// Package products is the catalog client: CRUD glue over the authenticated
// transport.
package products

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"shopfront/internal/api"
	"shopfront/internal/domain"
)

type Client struct {
	api *api.Client
}

func NewClient(apiClient *api.Client) *Client {
	return &Client{api: apiClient}
}

// List fetches one page of the catalog with optional filtering and sorting
func (c *Client) List(ctx context.Context, query domain.ProductQuery) (*domain.ProductPage, error) {
	params := url.Values{}
	if query.Page > 0 {
		params.Set("page", strconv.Itoa(query.Page))
	}
	if query.Limit > 0 {
		params.Set("limit", strconv.Itoa(query.Limit))
	}
	if query.Search != "" {
		params.Set("search", query.Search)
	}
	if query.MinPrice != nil {
		params.Set("minPrice", strconv.FormatFloat(*query.MinPrice, 'f', -1, 64))
	}
	if query.MaxPrice != nil {
		params.Set("maxPrice", strconv.FormatFloat(*query.MaxPrice, 'f', -1, 64))
	}
	if query.SortBy != "" {
		params.Set("sortBy", query.SortBy)
	}
	if query.SortOrder != "" {
		params.Set("sortOrder", query.SortOrder)
	}

	path := "/api/products"
	if encoded := params.Encode(); encoded != "" {
		path += "?" + encoded
	}

	// The envelope is kept here because the pagination meta rides beside
	// the product list
	env, err := c.api.DoEnvelope(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var page domain.ProductPage
	if err := json.Unmarshal(env.Data, &page); err == nil && page.Products != nil {
		return &page, nil
	}

	// Some deployments return the bare array without meta
	var items []domain.Product
	if err := json.Unmarshal(env.Data, &items); err != nil {
		return nil, fmt.Errorf("decode product list: %w", err)
	}
	return &domain.ProductPage{Products: items, Meta: domain.PageMeta{Total: len(items)}}, nil
}

// Get fetches a single product by ID
func (c *Client) Get(ctx context.Context, id string) (*domain.Product, error) {
	var product domain.Product
	if err := c.api.Get(ctx, "/api/products/"+id, &product); err != nil {
		return nil, notFoundOr(err)
	}
	return &product, nil
}

// Create adds a product to the catalog
func (c *Client) Create(ctx context.Context, input domain.CreateProductInput) (*domain.Product, error) {
	var product domain.Product
	if err := c.api.Post(ctx, "/api/products", input, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// Update applies a partial update to a product
func (c *Client) Update(ctx context.Context, id string, input domain.UpdateProductInput) (*domain.Product, error) {
	var product domain.Product
	if err := c.api.Patch(ctx, "/api/products/"+id, input, &product); err != nil {
		return nil, notFoundOr(err)
	}
	return &product, nil
}

// Delete removes a product from the catalog
func (c *Client) Delete(ctx context.Context, id string) error {
	if err := c.api.Delete(ctx, "/api/products/"+id, nil); err != nil {
		return notFoundOr(err)
	}
	return nil
}

// notFoundOr maps a backend 404 onto the domain sentinel
func notFoundOr(err error) error {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
		return fmt.Errorf("%w: %s", domain.ErrProductNotFound, apiErr.Message)
	}
	return err
}
