package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/assert"
	"github.com/golang/mock/gomock"
	"go.uber.org/zap/zaptest"

	"storefront/internal/mocks"
	"storefront/internal/order"
	myErr "storefront/internal/types/errors"
)

func TestCheckoutHandler_Checkout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := mocks.NewMockCheckoutService(ctrl)
	handler := NewCheckoutHandler(zaptest.NewLogger(t).Sugar(), service)

	customer := order.CustomerInfo{Name: "An", Phone: "0901234567", Address: "12 Lê Lợi"}
	info := &order.Info{
		CustomerInfo: customer,
		OrderItems:   []order.Item{{ProductID: 1, Quantity: 2, Price: 45000, ProductName: "Phở bò"}},
		TotalAmount:  90000,
		OrderID:      "ORD-1",
	}

	tests := []struct {
		name           string
		body           string
		mockBehavior   func()
		expectedStatus int
	}{
		{
			name: "success",
			body: `{"name":"An","phone":"0901234567","address":"12 Lê Lợi"}`,
			mockBehavior: func() {
				service.EXPECT().Checkout(gomock.Any(), customer).Return(info, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "invalid json",
			body:           `{"phone":`,
			mockBehavior:   func() {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "empty cart",
			body: `{"phone":"0901"}`,
			mockBehavior: func() {
				service.EXPECT().Checkout(gomock.Any(), gomock.Any()).Return(nil, myErr.ErrEmptyCart)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "no phone",
			body: `{"name":"An"}`,
			mockBehavior: func() {
				service.EXPECT().Checkout(gomock.Any(), gomock.Any()).Return(nil, myErr.ErrPhoneRequired)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "in progress",
			body: `{"phone":"0901"}`,
			mockBehavior: func() {
				service.EXPECT().Checkout(gomock.Any(), gomock.Any()).Return(nil, myErr.ErrCheckoutInProgress)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "rejected",
			body: `{"phone":"0901"}`,
			mockBehavior: func() {
				service.EXPECT().Checkout(gomock.Any(), gomock.Any()).Return(nil, myErr.ErrOrderRejected)
			},
			expectedStatus: http.StatusBadGateway,
		},
		{
			name: "network",
			body: `{"phone":"0901"}`,
			mockBehavior: func() {
				service.EXPECT().Checkout(gomock.Any(), gomock.Any()).Return(nil, myErr.ErrRemoteAPI)
			},
			expectedStatus: http.StatusBadGateway,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.mockBehavior()
			req := httptest.NewRequest(http.MethodPost, "/api/checkout", strings.NewReader(tc.body))
			rr := httptest.NewRecorder()

			handler.Checkout(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			if tc.expectedStatus == http.StatusCreated {
				var got order.Info
				err := json.NewDecoder(rr.Body).Decode(&got)
				assert.Equal(t, nil, err)
				assert.Equal(t, order.ID("ORD-1"), got.OrderID)
				assert.Equal(t, int64(90000), got.TotalAmount)
			}
		})
	}
}

func TestCheckoutHandler_LastOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := mocks.NewMockCheckoutService(ctrl)
	handler := NewCheckoutHandler(zaptest.NewLogger(t).Sugar(), service)

	service.EXPECT().LastOrder(gomock.Any()).Return(&order.Info{OrderID: "ORD-9", TotalAmount: 100}, nil)
	rr := httptest.NewRecorder()
	handler.LastOrder(rr, httptest.NewRequest(http.MethodGet, "/api/orders/last", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	service.EXPECT().LastOrder(gomock.Any()).Return(nil, myErr.ErrNotFound)
	rr = httptest.NewRecorder()
	handler.LastOrder(rr, httptest.NewRequest(http.MethodGet, "/api/orders/last", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)

	service.EXPECT().LastOrder(gomock.Any()).Return(nil, myErr.ErrDBInternal)
	rr = httptest.NewRecorder()
	handler.LastOrder(rr, httptest.NewRequest(http.MethodGet, "/api/orders/last", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
