package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"storefront/internal/cart"
	"storefront/internal/catalog"
	myErr "storefront/internal/types/errors"
)

// ShoppingCartHandler ручки корзины
type ShoppingCartHandler struct {
	Logger  *zap.SugaredLogger
	Cart    cart.CartStore
	Catalog catalog.Catalog
}

// NewShoppingCartHandler конструктор
func NewShoppingCartHandler(
	log *zap.SugaredLogger,
	store cart.CartStore,
	c catalog.Catalog,
) *ShoppingCartHandler {
	return &ShoppingCartHandler{
		Logger:  log,
		Cart:    store,
		Catalog: c,
	}
}

// CartResponse состояние корзины для UI: позиции, счётчик и сумма
type CartResponse struct {
	Items []cart.CartLine `json:"items"`
	Count int             `json:"count"`
	Total int64           `json:"total"`
}

func NewCartResponse(c cart.Cart) CartResponse {
	return CartResponse{
		Items: c.Lines(),
		Count: c.Count(),
		Total: c.Total(),
	}
}

type setQuantityRequest struct {
	Quantity *int `json:"quantity"`
}

type adjustQuantityRequest struct {
	Delta *int `json:"delta"`
}

func (h *ShoppingCartHandler) writeCart(w http.ResponseWriter, status int, c cart.Cart) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(NewCartResponse(c)); err != nil {
		h.Logger.Warnw("error writing response", "err", err)
	}
}

// GetCart - GET /api/cart
func (h *ShoppingCartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	h.writeCart(w, http.StatusOK, h.Cart.Snapshot())
}

// AddItem - POST /api/cart/items
// Тело - позиция корзины:
//
//	{"product": {"id": "1", "name": "...", "price": 10000}, "product_id": "product_1", "quantity": 1}
func (h *ShoppingCartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var line cart.CartLine
	if err := json.NewDecoder(r.Body).Decode(&line); err != nil {
		myErr.SendErrorTo(w, myErr.ErrInvalidJSONPayload, http.StatusBadRequest, h.Logger)
		return
	}
	if err := cart.ValidateLine(line); err != nil {
		myErr.SendErrorTo(w, err, http.StatusBadRequest, h.Logger)
		return
	}

	c, err := h.Cart.TryAdd(r.Context(), line)
	if err != nil {
		myErr.SendErrorTo(w, err, http.StatusBadRequest, h.Logger)
		return
	}
	h.writeCart(w, http.StatusCreated, c)
	h.Logger.Infof("added %d x %s to cart", line.Quantity, line.ProductID)
}

// AddProduct - POST /api/products/{id}/cart
// Добавляет одну единицу товара, снимок цены берётся из каталога
func (h *ShoppingCartHandler) AddProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		myErr.SendErrorTo(w, myErr.ErrBadID, http.StatusBadRequest, h.Logger)
		return
	}

	p, err := h.Catalog.GetProduct(r.Context(), id)
	if err != nil {
		if errors.Is(err, myErr.ErrNotFound) {
			myErr.SendErrorTo(w, err, http.StatusNotFound, h.Logger)
			return
		}
		myErr.SendErrorTo(w, err, http.StatusBadGateway, h.Logger)
		return
	}

	c, err := h.Cart.TryAdd(r.Context(), p.CartLine(1))
	if err != nil {
		myErr.SendErrorTo(w, err, http.StatusBadRequest, h.Logger)
		return
	}
	h.writeCart(w, http.StatusCreated, c)
	h.Logger.Infof("added product %d to cart", id)
}

// RemoveItem - DELETE /api/cart/items/{productID}
func (h *ShoppingCartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID := mux.Vars(r)["productID"]
	if productID == "" {
		myErr.SendErrorTo(w, myErr.ErrBadID, http.StatusBadRequest, h.Logger)
		return
	}

	c := h.Cart.Remove(r.Context(), productID)
	h.writeCart(w, http.StatusOK, c)
}

// SetQuantity - PUT /api/cart/items/{productID}, тело {"quantity": n}; n <= 0 удаляет позицию
func (h *ShoppingCartHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	productID := mux.Vars(r)["productID"]
	if productID == "" {
		myErr.SendErrorTo(w, myErr.ErrBadID, http.StatusBadRequest, h.Logger)
		return
	}

	// дробные и нечисловые значения не декодируются в int
	var req setQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Quantity == nil {
		myErr.SendErrorTo(w, myErr.ErrInvalidQuantity, http.StatusBadRequest, h.Logger)
		return
	}

	c := h.Cart.SetQuantity(r.Context(), productID, *req.Quantity)
	h.writeCart(w, http.StatusOK, c)
}

// AdjustQuantity - PATCH /api/cart/items/{productID}, тело {"delta": n}
func (h *ShoppingCartHandler) AdjustQuantity(w http.ResponseWriter, r *http.Request) {
	productID := mux.Vars(r)["productID"]
	if productID == "" {
		myErr.SendErrorTo(w, myErr.ErrBadID, http.StatusBadRequest, h.Logger)
		return
	}

	var req adjustQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Delta == nil {
		myErr.SendErrorTo(w, myErr.ErrInvalidQuantity, http.StatusBadRequest, h.Logger)
		return
	}

	c := h.Cart.AdjustQuantity(r.Context(), productID, *req.Delta)
	h.writeCart(w, http.StatusOK, c)
}

// Clear - DELETE /api/cart
func (h *ShoppingCartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	c := h.Cart.Clear(r.Context())
	h.writeCart(w, http.StatusOK, c)
	h.Logger.Infof("cart cleared")
}
