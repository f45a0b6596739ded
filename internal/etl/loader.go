package etl

import (
	"context"

	"go.uber.org/zap"

	"storefront/internal/types/elastic"
)

// Indexer приёмник документов
type Indexer interface {
	BulkIndex(ctx context.Context, docs []elastic.ProductDoc) error
}

type ElasticLoader struct {
	Indexer Indexer
	Logger  *zap.SugaredLogger
}

func NewElasticLoader(indexer Indexer, logger *zap.SugaredLogger) *ElasticLoader {
	return &ElasticLoader{
		Indexer: indexer,
		Logger:  logger,
	}
}

// Load - загружает подготовленные ProductDoc в индекс ElasticSearch
func (l *ElasticLoader) Load(ctx context.Context, docs []elastic.ProductDoc) error {
	if len(docs) == 0 {
		l.Logger.Infow("No documents to load")
		return nil
	}

	l.Logger.Infow("Loading documents to Elasticsearch", "count", len(docs))
	if err := l.Indexer.BulkIndex(ctx, docs); err != nil {
		l.Logger.Errorw("Failed to bulk index documents", zap.Error(err))
		return err
	}

	l.Logger.Infow("Successfully indexed documents", "count", len(docs))
	return nil
}
