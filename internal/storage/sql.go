package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	myErr "storefront/internal/types/errors"
)

// Dialect SQL-диалект хранилища
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

type queries struct {
	schema string
	get    string
	set    string
	delete string
}

var dialectQueries = map[Dialect]queries{
	DialectSQLite: {
		schema: `
	CREATE TABLE IF NOT EXISTS kv_store (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)
`,
		get: `SELECT value FROM kv_store WHERE key = ?`,
		set: `
	INSERT INTO kv_store(key, value, updated_at)
	VALUES (?, ?, CURRENT_TIMESTAMP) ON CONFLICT (key)
	DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
`,
		delete: `DELETE FROM kv_store WHERE key = ?`,
	},
	DialectPostgres: {
		schema: `
	CREATE TABLE IF NOT EXISTS kv_store (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)
`,
		get: `SELECT value FROM kv_store WHERE key = $1`,
		set: `
	INSERT INTO kv_store(key, value, updated_at)
	VALUES ($1, $2, NOW()) ON CONFLICT (key)
	DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
`,
		delete: `DELETE FROM kv_store WHERE key = $1`,
	},
}

// SQLStorage key-value поверх SQLite (файл на устройстве) или PostgreSQL
type SQLStorage struct {
	DB      *sql.DB
	Logger  *zap.SugaredLogger
	queries queries
}

func NewSQLStorage(db *sql.DB, dialect Dialect, logger *zap.SugaredLogger) (*SQLStorage, error) {
	q, ok := dialectQueries[dialect]
	if !ok {
		return nil, fmt.Errorf("unsupported sql dialect %q", dialect)
	}

	return &SQLStorage{
		DB:      db,
		Logger:  logger,
		queries: q,
	}, nil
}

// OpenSQLite открывает файл базы SQLite, каталог должен существовать
func OpenSQLite(path string) (*sql.DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}

	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// один писатель
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	return db, nil
}

// EnsureSchema создаёт таблицу kv_store, если её нет
func (s *SQLStorage) EnsureSchema(ctx context.Context) error {
	if _, err := s.DB.ExecContext(ctx, s.queries.schema); err != nil {
		s.Logger.Errorf("Ошибка при создании таблицы kv_store: %v", err)
		return myErr.ErrDBInternal
	}

	return nil
}

func (s *SQLStorage) Get(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := s.DB.QueryRowContext(ctx, s.queries.get, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}

		s.Logger.Errorf("Ошибка при чтении ключа %v: %v", key, err)
		return nil, myErr.ErrDBInternal
	}

	return []byte(value), nil
}

func (s *SQLStorage) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.DB.ExecContext(ctx, s.queries.set, key, string(value))
	if err != nil {
		s.Logger.Errorf("Ошибка при записи ключа %v: %v", key, err)
		return myErr.ErrDBInternal
	}

	return nil
}

func (s *SQLStorage) Delete(ctx context.Context, key string) error {
	_, err := s.DB.ExecContext(ctx, s.queries.delete, key)
	if err != nil {
		s.Logger.Errorf("Ошибка при удалении ключа %v: %v", key, err)
		return myErr.ErrDBInternal
	}

	return nil
}
