package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"coilworks/internal/domain"
	"coilworks/internal/dto"
)

// ListProducts returns the catalog, optionally narrowed to a category and a
// free-text search.
func (c *Client) ListProducts(ctx context.Context, category, search string) ([]domain.CatalogItem, error) {
	query := url.Values{}
	if category != "" {
		query.Set("category", category)
	}
	if search != "" {
		query.Set("q", search)
	}
	path := "/products"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	products := []domain.CatalogItem{}
	if err := c.do(ctx, "list products", http.MethodGet, path, "", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) GetProduct(ctx context.Context, id string) (*domain.CatalogItem, error) {
	var product domain.CatalogItem
	if err := c.do(ctx, "get product", http.MethodGet, "/products/"+escape(id), "", nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) CreateProduct(ctx context.Context, token string, req dto.ProductRequest) (*domain.CatalogItem, error) {
	var product domain.CatalogItem
	if err := c.do(ctx, "create product", http.MethodPost, "/products", token, req, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) UpdateProduct(ctx context.Context, token, id string, req dto.ProductRequest) (*domain.CatalogItem, error) {
	var product domain.CatalogItem
	if err := c.do(ctx, "update product", http.MethodPut, "/products/"+escape(id), token, req, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) Settings(ctx context.Context) (*dto.SettingsResponse, error) {
	var settings dto.SettingsResponse
	if err := c.do(ctx, "settings", http.MethodGet, "/settings", "", nil, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}
