package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/elastic/go-elasticsearch/v8"
	"go.uber.org/zap"

	"storefront/internal/apiclient"
	"storefront/internal/app"
	"storefront/internal/catalog"
	"storefront/internal/etl"
	"storefront/internal/search"
)

func main() {
	// Init logger
	zapLogger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	logger := zapLogger.Sugar()
	defer func() { _ = zapLogger.Sync() }()

	// Parse config
	c, err := app.NewConfig(app.ConfigPath())
	if err != nil {
		logger.Fatalf("Error parsing config: %v", err)
	}
	if len(c.CfgES.Addresses) == 0 {
		logger.Fatalf("Elasticsearch addresses are not configured")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Init ES
	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: c.CfgES.Addresses})
	if err != nil {
		logger.Fatalf("Error creating ES client: %v", err)
	}
	service := search.NewService(es, logger, c.CfgES.Index)
	if err := service.EnsureIndex(ctx); err != nil {
		logger.Fatalf("Error creating index %s: %v", c.CfgES.Index, err)
	}

	// Init catalog
	api := apiclient.NewClient(c.APIURL, c.APITimeout, logger)
	catalogClient := catalog.NewAPIClient(api, logger)

	pipeline := etl.NewPipeline(
		etl.NewCatalogExtractor(catalogClient, logger),
		etl.NewTransformer(logger),
		etl.NewElasticLoader(service, logger),
		logger,
		c.IndexerInterval,
	)

	pipeline.Run(ctx)
	logger.Infow("Indexer stopped")
}
