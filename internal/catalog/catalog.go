package catalog

import (
	"context"
	"strconv"

	"storefront/internal/cart"
)

// ProductIDPrefix префикс id позиции корзины: product_<id товара>
const ProductIDPrefix = "product_"

// Product товар из внешнего API
type Product struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
	CategoryID  string `json:"category_id,omitempty"`
	Category    string `json:"category,omitempty"`
}

// Category категория товаров
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// CartProductID id позиции корзины для товара
func CartProductID(id int64) string {
	return ProductIDPrefix + strconv.FormatInt(id, 10)
}

// CartLine строит позицию корзины со снимком цены, имени и картинки
func (p Product) CartLine(quantity int) cart.CartLine {
	return cart.CartLine{
		Product: cart.ProductSnapshot{
			ID:    strconv.FormatInt(p.ID, 10),
			Name:  p.Name,
			Price: p.Price,
			Image: p.Image,
		},
		ProductID: CartProductID(p.ID),
		Quantity:  quantity,
	}
}

// Catalog клиент каталога
//
//go:generate mockgen -source=catalog.go -destination=../mocks/mock_catalog.go -package=mocks
type Catalog interface {
	// ListProducts список товаров, categoryID == "" - все категории
	ListProducts(ctx context.Context, categoryID string) ([]Product, error)
	// ListCategories список категорий
	ListCategories(ctx context.Context) ([]Category, error)
	// GetProduct товар по id
	GetProduct(ctx context.Context, id int64) (*Product, error)
}
