package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/assert"
	"github.com/golang/mock/gomock"
	"go.uber.org/zap/zaptest"

	"storefront/internal/catalog"
	"storefront/internal/mocks"
	"storefront/internal/search"
	"storefront/internal/types/elastic"
	myErr "storefront/internal/types/errors"
)

func TestCatalogHandler_ListProducts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	catalogMock := mocks.NewMockCatalog(ctrl)
	handler := NewCatalogHandler(zaptest.NewLogger(t).Sugar(), catalogMock, nil)

	tests := []struct {
		name           string
		url            string
		mockBehavior   func()
		expectedStatus int
		expectedLen    int
	}{
		{
			name: "all",
			url:  "/api/products",
			mockBehavior: func() {
				catalogMock.EXPECT().ListProducts(gomock.Any(), "").
					Return([]catalog.Product{{ID: 1, Name: "Phở"}, {ID: 2, Name: "Trà"}}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedLen:    2,
		},
		{
			name: "category",
			url:  "/api/products?category_id=3",
			mockBehavior: func() {
				catalogMock.EXPECT().ListProducts(gomock.Any(), "3").
					Return([]catalog.Product{{ID: 2, Name: "Trà"}}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedLen:    1,
		},
		{
			name: "remote error",
			url:  "/api/products",
			mockBehavior: func() {
				catalogMock.EXPECT().ListProducts(gomock.Any(), "").Return(nil, myErr.ErrRemoteAPI)
			},
			expectedStatus: http.StatusBadGateway,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.mockBehavior()
			req := httptest.NewRequest(http.MethodGet, tc.url, nil)
			rr := httptest.NewRecorder()

			handler.ListProducts(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			if tc.expectedStatus == http.StatusOK {
				var resp struct {
					Products []catalog.Product `json:"products"`
				}
				err := json.NewDecoder(rr.Body).Decode(&resp)
				assert.Equal(t, nil, err)
				assert.Equal(t, tc.expectedLen, len(resp.Products))
			}
		})
	}
}

func TestCatalogHandler_ListCategories(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	catalogMock := mocks.NewMockCatalog(ctrl)
	handler := NewCatalogHandler(zaptest.NewLogger(t).Sugar(), catalogMock, nil)

	catalogMock.EXPECT().ListCategories(gomock.Any()).
		Return([]catalog.Category{{ID: "1", Name: "Món chính", Slug: "mon-chinh"}}, nil)

	rr := httptest.NewRecorder()
	handler.ListCategories(rr, httptest.NewRequest(http.MethodGet, "/api/categories", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	catalogMock.EXPECT().ListCategories(gomock.Any()).Return(nil, myErr.ErrBadResponse)

	rr = httptest.NewRecorder()
	handler.ListCategories(rr, httptest.NewRequest(http.MethodGet, "/api/categories", nil))
	assert.Equal(t, http.StatusBadGateway, rr.Code)
}

func TestCatalogHandler_Search(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	searcher := mocks.NewMockSearcher(ctrl)
	logger := zaptest.NewLogger(t).Sugar()
	handler := NewCatalogHandler(logger, mocks.NewMockCatalog(ctrl), searcher)

	tests := []struct {
		name           string
		url            string
		mockBehavior   func()
		expectedStatus int
	}{
		{
			name: "success",
			url:  "/api/products/search?q=pho",
			mockBehavior: func() {
				searcher.EXPECT().SearchByName(gomock.Any(), "pho", 0).
					Return([]elastic.ProductDoc{{ID: "1", Name: "Phở bò"}}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "with limit",
			url:  "/api/products/search?q=pho&limit=5",
			mockBehavior: func() {
				searcher.EXPECT().SearchByName(gomock.Any(), "pho", 5).Return([]elastic.ProductDoc{}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "empty query",
			url:            "/api/products/search?q=%20",
			mockBehavior:   func() {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "search error",
			url:  "/api/products/search?q=pho",
			mockBehavior: func() {
				searcher.EXPECT().SearchByName(gomock.Any(), "pho", 0).Return(nil, myErr.ErrSearch)
			},
			expectedStatus: http.StatusBadGateway,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.mockBehavior()
			rr := httptest.NewRecorder()

			handler.Search(rr, httptest.NewRequest(http.MethodGet, tc.url, nil))

			assert.Equal(t, tc.expectedStatus, rr.Code)
		})
	}

	var noSearch search.Searcher
	rr := httptest.NewRecorder()
	NewCatalogHandler(logger, mocks.NewMockCatalog(ctrl), noSearch).
		Search(rr, httptest.NewRequest(http.MethodGet, "/api/products/search?q=pho", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}
