package order

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"storefront/internal/apiclient"
	myErr "storefront/internal/types/errors"
)

type submitResponse struct {
	OrderID ID     `json:"orderId"`
	Error   string `json:"error"`
}

// APISubmitter - POST /api/orders
type APISubmitter struct {
	API    *apiclient.Client
	Logger *zap.SugaredLogger
}

func NewAPISubmitter(api *apiclient.Client, logger *zap.SugaredLogger) *APISubmitter {
	return &APISubmitter{
		API:    api,
		Logger: logger,
	}
}

func (s *APISubmitter) Submit(ctx context.Context, req Request) (ID, error) {
	var resp submitResponse
	status, err := s.API.Do(ctx, http.MethodPost, "/api/orders", nil, req, &resp)
	if err != nil {
		return "", err
	}

	if !apiclient.IsSuccess(status) {
		msg := resp.Error
		if msg == "" {
			msg = "could not create order"
		}
		s.Logger.Warnw("order rejected", "status", status, "message", msg)
		return "", fmt.Errorf("%w: %s", myErr.ErrOrderRejected, msg)
	}

	return resp.OrderID, nil
}
