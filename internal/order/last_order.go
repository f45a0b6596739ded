package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"storefront/internal/storage"
	myErr "storefront/internal/types/errors"
)

const LastOrderKey = "lastOrderInfo"

// LastOrderRepository хранит последний оформленный заказ
type LastOrderRepository struct {
	KV     storage.KV
	Logger *zap.SugaredLogger
}

func NewLastOrderRepository(kv storage.KV, logger *zap.SugaredLogger) *LastOrderRepository {
	return &LastOrderRepository{
		KV:     kv,
		Logger: logger,
	}
}

func (r *LastOrderRepository) Save(ctx context.Context, info Info) error {
	value, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal order info: %w", err)
	}

	return r.KV.Set(ctx, LastOrderKey, value)
}

// Get возвращает ErrNotFound, если заказов ещё не было или запись битая
func (r *LastOrderRepository) Get(ctx context.Context) (*Info, error) {
	raw, err := r.KV.Get(ctx, LastOrderKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, myErr.ErrNotFound
		}
		return nil, err
	}

	var info Info
	if err := json.Unmarshal(raw, &info); err != nil {
		r.Logger.Warnw("stored order info is malformed", "err", err)
		return nil, myErr.ErrNotFound
	}

	return &info, nil
}
