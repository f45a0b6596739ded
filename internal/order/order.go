package order

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"storefront/internal/cart"
	"storefront/internal/catalog"
	myErr "storefront/internal/types/errors"
)

// DefaultCustomerName подставляется, если имя не указано
const DefaultCustomerName = "Khách hàng"

// CustomerInfo контактные данные покупателя
type CustomerInfo struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Note    string `json:"note"`
}

// Item позиция заказа
type Item struct {
	ProductID   int64  `json:"productId"`
	Quantity    int    `json:"quantity"`
	Price       int64  `json:"price"`
	ProductName string `json:"productName"`
}

// Request тело POST /api/orders
type Request struct {
	CustomerInfo CustomerInfo `json:"customerInfo"`
	OrderItems   []Item       `json:"orderItems"`
	TotalAmount  int64        `json:"totalAmount"`
}

// Info данные последнего заказа для страницы подтверждения
type Info struct {
	CustomerInfo CustomerInfo `json:"customerInfo"`
	OrderItems   []Item       `json:"orderItems"`
	TotalAmount  int64        `json:"totalAmount"`
	OrderID      ID           `json:"orderId"`
}

// ID идентификатор заказа, API может вернуть его строкой или числом
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("order id must be a string or a number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// Submitter отправляет заказ во внешний API
//
//go:generate mockgen -source=order.go -destination=../mocks/mock_order.go -package=mocks
type Submitter interface {
	// Submit возвращает id заказа или ошибку; пустой id допустим
	Submit(ctx context.Context, req Request) (ID, error)
}

// CheckoutService оформление заказа из корзины
type CheckoutService interface {
	Checkout(ctx context.Context, customer CustomerInfo) (*Info, error)
	LastOrder(ctx context.Context) (*Info, error)
}

// NormalizeCustomer проверяет телефон и заполняет имя по умолчанию
func NormalizeCustomer(c CustomerInfo) (CustomerInfo, error) {
	c.Name = strings.TrimSpace(c.Name)
	c.Phone = strings.TrimSpace(c.Phone)
	c.Email = strings.TrimSpace(c.Email)
	c.Address = strings.TrimSpace(c.Address)
	c.Note = strings.TrimSpace(c.Note)

	if c.Phone == "" {
		return c, myErr.ErrPhoneRequired
	}
	if c.Name == "" {
		c.Name = DefaultCustomerName
	}

	return c, nil
}

// ItemProductID числовой id товара из id позиции: product_12 -> 12
func ItemProductID(cartProductID string) (int64, error) {
	raw := strings.TrimPrefix(cartProductID, catalog.ProductIDPrefix)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", myErr.ErrBadID, cartProductID)
	}
	return id, nil
}

// BuildRequest собирает заказ из снимка корзины
func BuildRequest(c cart.Cart, customer CustomerInfo) (Request, error) {
	if c.Len() == 0 {
		return Request{}, myErr.ErrEmptyCart
	}

	customer, err := NormalizeCustomer(customer)
	if err != nil {
		return Request{}, err
	}

	lines := c.Lines()
	items := make([]Item, 0, len(lines))
	for _, l := range lines {
		id, err := ItemProductID(l.ProductID)
		if err != nil {
			return Request{}, err
		}
		items = append(items, Item{
			ProductID:   id,
			Quantity:    l.Quantity,
			Price:       l.Product.Price,
			ProductName: l.Product.Name,
		})
	}

	return Request{
		CustomerInfo: customer,
		OrderItems:   items,
		TotalAmount:  c.Total(),
	}, nil
}
