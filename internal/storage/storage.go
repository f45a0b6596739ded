package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("key not found")

// KV локальное key-value хранилище (аналог localStorage)
//
//go:generate mockgen -source=storage.go -destination=../mocks/mock_kv.go -package=mocks
type KV interface {
	// Get возвращает значение по ключу или ErrNotFound
	Get(ctx context.Context, key string) ([]byte, error)
	// Set перезаписывает значение по ключу
	Set(ctx context.Context, key string, value []byte) error
	// Delete удаляет ключ, отсутствие ключа не ошибка
	Delete(ctx context.Context, key string) error
}
