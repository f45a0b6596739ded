package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"storefront/internal/storage"
)

const DefaultStorageKey = "cart"

// StorageAdapter сохраняет корзину в KV одним JSON-массивом позиций
type StorageAdapter struct {
	KV      storage.KV
	Key     string
	Timeout time.Duration
	Logger  *zap.SugaredLogger
}

func NewStorageAdapter(kv storage.KV, key string, timeout time.Duration, logger *zap.SugaredLogger) *StorageAdapter {
	if key == "" {
		key = DefaultStorageKey
	}

	return &StorageAdapter{
		KV:      kv,
		Key:     key,
		Timeout: timeout,
		Logger:  logger,
	}
}

func (a *StorageAdapter) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.Timeout)
}

func (a *StorageAdapter) Load(ctx context.Context) ([]CartLine, error) {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	raw, err := a.KV.Get(ctx, a.Key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var lines []CartLine
	if err := json.Unmarshal(raw, &lines); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	return lines, nil
}

func (a *StorageAdapter) Save(ctx context.Context, lines []CartLine) error {
	if lines == nil {
		lines = []CartLine{}
	}

	value, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.KV.Set(ctx, a.Key, value); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}

	a.Logger.Debugw("cart saved", "key", a.Key, "lines", len(lines))
	return nil
}
