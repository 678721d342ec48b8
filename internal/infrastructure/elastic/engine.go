package elastic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esutil"

	"github.com/ngochuy-hya/catalog-search-api/internal/domain"
	"github.com/ngochuy-hya/catalog-search-api/internal/domain/entity"
	"github.com/ngochuy-hya/catalog-search-api/internal/domain/search"
)

var _ search.Engine = (*Engine)(nil)

// Engine is the Elasticsearch adapter for the search.Engine port.
type Engine struct {
	es    *elasticsearch.Client
	index string
}

// NewEngine builds the adapter for the given product index.
func NewEngine(es *elasticsearch.Client, index string) *Engine {
	return &Engine{es: es, index: index}
}

// EnsureIndex creates the product index with its mapping when it does not
// exist yet. Safe to call on every boot.
func (e *Engine) EnsureIndex(ctx context.Context) error {
	res, err := e.es.Indices.Exists([]string{e.index}, e.es.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrIndexUnavailable, err)
	}
	defer res.Body.Close()
	if res.StatusCode == 200 {
		return nil
	}

	create, err := e.es.Indices.Create(e.index,
		e.es.Indices.Create.WithContext(ctx),
		e.es.Indices.Create.WithBody(bytes.NewReader([]byte(productMapping))),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrIndexUnavailable, err)
	}
	defer create.Body.Close()
	if create.IsError() {
		return fmt.Errorf("create index %s: %s", e.index, create.String())
	}
	return nil
}

// Index adds or replaces one product document.
func (e *Engine) Index(ctx context.Context, doc *entity.SearchDocument) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	res, err := e.es.Index(e.index, bytes.NewReader(body),
		e.es.Index.WithDocumentID(doc.ID),
		e.es.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrIndexUnavailable, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index document %s: %s", doc.ID, res.String())
	}
	return nil
}

// Delete removes a product document. A missing document is not an error.
func (e *Engine) Delete(ctx context.Context, productID string) error {
	res, err := e.es.Delete(e.index, productID, e.es.Delete.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrIndexUnavailable, err)
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("delete document %s: %s", productID, res.String())
	}
	return nil
}

// BulkIndex streams documents through a chunked bulk indexer and reports the
// success count plus per-item errors. Failed items are not retried and
// partial success is not rolled back.
func (e *Engine) BulkIndex(ctx context.Context, docs []entity.SearchDocument) (*search.BulkReport, error) {
	bi, err := esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
		Client:     e.es,
		Index:      e.index,
		NumWorkers: 2,
		FlushBytes: 1 << 20, // 1 MiB chunks
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrIndexUnavailable, err)
	}

	var (
		mu     sync.Mutex
		report search.BulkReport
	)
	for i := range docs {
		doc := &docs[i]
		body, err := json.Marshal(doc)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("%s: marshal: %v", doc.ID, err))
			continue
		}
		err = bi.Add(ctx, esutil.BulkIndexerItem{
			Action:     "index",
			DocumentID: doc.ID,
			Body:       bytes.NewReader(body),
			OnFailure: func(_ context.Context, item esutil.BulkIndexerItem, resp esutil.BulkIndexerResponseItem, err error) {
				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					report.Errors = append(report.Errors, fmt.Sprintf("%s: %v", item.DocumentID, err))
				} else {
					report.Errors = append(report.Errors, fmt.Sprintf("%s: %s", item.DocumentID, resp.Error.Reason))
				}
			},
		})
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("%s: add: %v", doc.ID, err))
		}
	}
	if err := bi.Close(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrIndexUnavailable, err)
	}

	stats := bi.Stats()
	report.Indexed = int(stats.NumFlushed)
	return &report, nil
}

// GetByID fetches one indexed document.
func (e *Engine) GetByID(ctx context.Context, productID string) (*entity.SearchDocument, error) {
	res, err := e.es.Get(e.index, productID, e.es.Get.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrIndexUnavailable, err)
	}
	defer res.Body.Close()
	if res.StatusCode == 404 {
		return nil, domain.ErrNotFound
	}
	if res.IsError() {
		return nil, fmt.Errorf("get document %s: %s", productID, res.String())
	}

	var envelope struct {
		Source entity.SearchDocument `json:"_source"`
	}
	if err := json.NewDecoder(res.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return &envelope.Source, nil
}

// Search runs a normalized, validated filter set against the index.
func (e *Engine) Search(ctx context.Context, f *search.Filters) (*search.Result, error) {
	body, err := json.Marshal(buildSearchBody(f))
	if err != nil {
		return nil, fmt.Errorf("marshal query: %w", err)
	}

	res, err := e.es.Search(
		e.es.Search.WithContext(ctx),
		e.es.Search.WithIndex(e.index),
		e.es.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrIndexUnavailable, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		// 5xx means the engine itself is in trouble; let the caller fall back.
		if res.StatusCode >= 500 {
			return nil, fmt.Errorf("%w: %s", domain.ErrIndexUnavailable, res.Status())
		}
		return nil, fmt.Errorf("search: %s", res.String())
	}

	return parseSearchResponse(res.Body, f.HasQuery())
}

// searchResponse mirrors the slice of the Elasticsearch response we consume.
type searchResponse struct {
	Hits struct {
		Total struct {
			Value int64 `json:"value"`
		} `json:"total"`
		Hits []struct {
			Source entity.SearchDocument `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
	Aggregations struct {
		Categories struct {
			Buckets []struct {
				Key      string `json:"key"`
				DocCount int64  `json:"doc_count"`
				Name     struct {
					Buckets []struct {
						Key string `json:"key"`
					} `json:"buckets"`
				} `json:"name"`
			} `json:"buckets"`
		} `json:"categories"`
		PriceStats struct {
			Min float64 `json:"min"`
			Max float64 `json:"max"`
			Avg float64 `json:"avg"`
		} `json:"price_stats"`
		AvgRating struct {
			Value float64 `json:"value"`
		} `json:"avg_rating"`
	} `json:"aggregations"`
	Suggest map[string][]struct {
		Options []struct {
			Text string `json:"text"`
		} `json:"options"`
	} `json:"suggest"`
}

func parseSearchResponse(r io.Reader, withSuggestions bool) (*search.Result, error) {
	var resp searchResponse
	if err := json.NewDecoder(r).Decode(&resp); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	out := &search.Result{Total: resp.Hits.Total.Value}
	for _, hit := range resp.Hits.Hits {
		out.Documents = append(out.Documents, hit.Source)
	}

	aggs := &search.Aggregations{
		Price: search.PriceFacet{
			Min: resp.Aggregations.PriceStats.Min,
			Max: resp.Aggregations.PriceStats.Max,
			Avg: resp.Aggregations.PriceStats.Avg,
		},
		AvgRating: resp.Aggregations.AvgRating.Value,
	}
	for _, b := range resp.Aggregations.Categories.Buckets {
		facet := search.CategoryFacet{Slug: b.Key, Count: b.DocCount}
		if len(b.Name.Buckets) > 0 {
			facet.Name = b.Name.Buckets[0].Key
		}
		aggs.Categories = append(aggs.Categories, facet)
	}
	out.Aggregations = aggs

	if withSuggestions {
		seen := map[string]bool{}
		for _, entries := range resp.Suggest {
			for _, entry := range entries {
				for _, opt := range entry.Options {
					if !seen[opt.Text] {
						seen[opt.Text] = true
						out.Suggestions = append(out.Suggestions, opt.Text)
					}
				}
			}
		}
	}

	return out, nil
}

// Ping reports whether the cluster answers at all (health endpoint).
func (e *Engine) Ping(ctx context.Context) error {
	res, err := e.es.Ping(e.es.Ping.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrIndexUnavailable, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("%w: %s", domain.ErrIndexUnavailable, res.Status())
	}
	return nil
}
