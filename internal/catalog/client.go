package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"storefront/internal/apiclient"
	myErr "storefront/internal/types/errors"
)

type productsResponse struct {
	Products []Product `json:"products"`
}

type categoriesResponse struct {
	Categories *[]Category `json:"categories"`
}

// APIClient каталог поверх удалённого API
type APIClient struct {
	API    *apiclient.Client
	Logger *zap.SugaredLogger
}

func NewAPIClient(api *apiclient.Client, logger *zap.SugaredLogger) *APIClient {
	return &APIClient{
		API:    api,
		Logger: logger,
	}
}

// ListProducts - GET /api/products[?category_id=]
func (c *APIClient) ListProducts(ctx context.Context, categoryID string) ([]Product, error) {
	var query url.Values
	if categoryID != "" && categoryID != "all" {
		query = url.Values{"category_id": []string{categoryID}}
	}

	var resp productsResponse
	status, err := c.API.Do(ctx, http.MethodGet, "/api/products", query, nil, &resp)
	if err != nil {
		return nil, err
	}
	if !apiclient.IsSuccess(status) {
		c.Logger.Warnf("products request failed with status %d", status)
		return nil, fmt.Errorf("%w: status %d", myErr.ErrRemoteAPI, status)
	}

	if resp.Products == nil {
		return []Product{}, nil
	}
	return resp.Products, nil
}

// ListCategories - GET /api/categories, ответ без поля categories считается ошибкой формата
func (c *APIClient) ListCategories(ctx context.Context) ([]Category, error) {
	var resp categoriesResponse
	status, err := c.API.Do(ctx, http.MethodGet, "/api/categories", nil, nil, &resp)
	if err != nil {
		return nil, err
	}
	if !apiclient.IsSuccess(status) {
		c.Logger.Warnf("categories request failed with status %d", status)
		return nil, fmt.Errorf("%w: status %d", myErr.ErrRemoteAPI, status)
	}
	if resp.Categories == nil {
		return nil, fmt.Errorf("%w: categories field is missing", myErr.ErrBadResponse)
	}

	return *resp.Categories, nil
}

// GetProduct ищет товар в общем списке: у API нет ручки для одного товара
func (c *APIClient) GetProduct(ctx context.Context, id int64) (*Product, error) {
	products, err := c.ListProducts(ctx, "")
	if err != nil {
		return nil, err
	}

	for i := range products {
		if products[i].ID == id {
			return &products[i], nil
		}
	}

	return nil, myErr.ErrNotFound
}
