package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"storefront/internal/order"
	myErr "storefront/internal/types/errors"
)

type CheckoutHandler struct {
	Logger  *zap.SugaredLogger
	Service order.CheckoutService
}

func NewCheckoutHandler(l *zap.SugaredLogger, s order.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		Logger:  l,
		Service: s,
	}
}

func checkoutStatus(err error) int {
	switch {
	case errors.Is(err, myErr.ErrEmptyCart),
		errors.Is(err, myErr.ErrPhoneRequired),
		errors.Is(err, myErr.ErrBadID):
		return http.StatusBadRequest
	case errors.Is(err, myErr.ErrCheckoutInProgress):
		return http.StatusConflict
	default:
		return http.StatusBadGateway
	}
}

// Checkout - POST /api/checkout
// Тело - данные покупателя {"name", "phone", "email", "address", "note"}, phone обязателен.
// При ошибке корзина не меняется и заказ можно отправить повторно.
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var customer order.CustomerInfo
	if err := json.NewDecoder(r.Body).Decode(&customer); err != nil {
		myErr.SendErrorTo(w, myErr.ErrInvalidJSONPayload, http.StatusBadRequest, h.Logger)
		return
	}

	info, err := h.Service.Checkout(r.Context(), customer)
	if err != nil {
		myErr.SendErrorTo(w, err, checkoutStatus(err), h.Logger)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(info); err != nil {
		h.Logger.Warnw("error writing response", "err", err)
	}
}

// LastOrder - GET /api/orders/last, данные для страницы подтверждения
func (h *CheckoutHandler) LastOrder(w http.ResponseWriter, r *http.Request) {
	info, err := h.Service.LastOrder(r.Context())
	if err != nil {
		if errors.Is(err, myErr.ErrNotFound) {
			myErr.SendErrorTo(w, err, http.StatusNotFound, h.Logger)
			return
		}
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(info); err != nil {
		h.Logger.Warnw("error writing response", "err", err)
	}
}
