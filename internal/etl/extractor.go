package etl

import (
	"context"

	"go.uber.org/zap"

	"storefront/internal/catalog"
)

type CatalogExtractor struct {
	Catalog catalog.Catalog
	Logger  *zap.SugaredLogger
}

func NewCatalogExtractor(c catalog.Catalog, logger *zap.SugaredLogger) *CatalogExtractor {
	return &CatalogExtractor{
		Catalog: c,
		Logger:  logger,
	}
}

// ExtractAll - достает все товары каталога, категория подставляется из фильтра,
// если API не вернул её в самом товаре
func (e *CatalogExtractor) ExtractAll(ctx context.Context) ([]catalog.Product, error) {
	categories, err := e.Catalog.ListCategories(ctx)
	if err != nil {
		e.Logger.Warnw("Failed to list categories, indexing without category filter", zap.Error(err))
		return e.Catalog.ListProducts(ctx, "")
	}

	seen := make(map[int64]struct{})
	var result []catalog.Product

	for _, c := range categories {
		products, err := e.Catalog.ListProducts(ctx, c.ID)
		if err != nil {
			e.Logger.Error("Failed to list products", zap.Error(err), zap.String("category", c.ID))
			return nil, err
		}
		for _, p := range products {
			if p.CategoryID == "" {
				p.CategoryID = c.ID
			}
			seen[p.ID] = struct{}{}
			result = append(result, p)
		}
	}

	// товары без категории
	all, err := e.Catalog.ListProducts(ctx, "")
	if err != nil {
		e.Logger.Error("Failed to list products", zap.Error(err))
		return nil, err
	}
	for _, p := range all {
		if _, ok := seen[p.ID]; !ok {
			result = append(result, p)
		}
	}

	return result, nil
}
