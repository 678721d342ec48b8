package elastic

import (
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"

	"github.com/ngochuy-hya/catalog-search-api/pkg/config"
)

// NewClient builds an Elasticsearch client from the app configuration.
// Connectivity is not verified here: the engine is allowed to be down, the
// search path degrades to the relational fallback instead.
func NewClient(cfg config.ElasticConfig) (*elasticsearch.Client, error) {
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: cfg.Addresses,
		Username:  cfg.Username,
		Password:  cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("elasticsearch client: %w", err)
	}
	return es, nil
}
