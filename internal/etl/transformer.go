package etl

import (
	"strconv"

	"go.uber.org/zap"

	"storefront/internal/catalog"
	"storefront/internal/types/elastic"
)

type Transformer struct {
	Logger *zap.SugaredLogger
}

func NewTransformer(logger *zap.SugaredLogger) *Transformer {
	return &Transformer{
		Logger: logger,
	}
}

// Transform - переводит товары каталога в ProductDoc для хранения в ES
func (t *Transformer) Transform(input []catalog.Product) []elastic.ProductDoc {
	docs := make([]elastic.ProductDoc, 0, len(input))
	for _, p := range input {
		docs = append(docs, elastic.ProductDoc{
			ID:          strconv.FormatInt(p.ID, 10),
			Name:        p.Name,
			Description: p.Description,
			CategoryID:  p.CategoryID,
			Price:       p.Price,
			Image:       p.Image,
		})
	}

	t.Logger.Infof("Transformed %d docs successfully", len(input))

	return docs
}
