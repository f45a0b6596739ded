package etl

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type Pipeline struct {
	extractor   *CatalogExtractor
	transformer *Transformer
	loader      *ElasticLoader
	logger      *zap.SugaredLogger
	interval    time.Duration
}

func NewPipeline(
	extractor *CatalogExtractor,
	transformer *Transformer,
	loader *ElasticLoader,
	logger *zap.SugaredLogger,
	interval time.Duration,
) *Pipeline {
	return &Pipeline{
		extractor:   extractor,
		transformer: transformer,
		loader:      loader,
		logger:      logger,
		interval:    interval,
	}
}

// RunOnce - одна итерация extract/transform/load, возвращает число загруженных документов
func (p *Pipeline) RunOnce(ctx context.Context) (int, error) {
	// EXTRACT
	products, err := p.extractor.ExtractAll(ctx)
	if err != nil {
		p.logger.Errorw("Extracting failed", zap.Error(err))
		return 0, err
	}
	if len(products) == 0 {
		p.logger.Infow("No products to process")
		return 0, nil
	}

	// TRANSFORM
	docs := p.transformer.Transform(products)

	// LOAD
	if err := p.loader.Load(ctx, docs); err != nil {
		p.logger.Errorw("Error while loading docs to ES", zap.Error(err))
		return 0, err
	}

	return len(docs), nil
}

// Run - первая итерация сразу, дальше по тикеру до отмены контекста
func (p *Pipeline) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.logger.Infow("ETL pipeline started", "interval", p.interval)

	for {
		if n, err := p.RunOnce(ctx); err == nil {
			p.logger.Infof("ETL pipeline completed, successfully loaded %d docs", n)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.logger.Infow("Running ETL pipeline iteration")
		}
	}
}
