package elastic

// productMapping is the index schema for product documents. Text fields that
// also back exact sorts or aggregations carry a keyword subfield; identifiers
// and tags are plain keywords.
const productMapping = `{
  "settings": {
    "number_of_shards": 1,
    "number_of_replicas": 0,
    "analysis": {
      "analyzer": {
        "folded": {
          "tokenizer": "standard",
          "filter": ["lowercase", "asciifolding"]
        }
      }
    }
  },
  "mappings": {
    "properties": {
      "id":                {"type": "keyword"},
      "slug":              {"type": "keyword"},
      "sku":               {"type": "keyword"},
      "name":              {"type": "text", "analyzer": "folded", "fields": {"keyword": {"type": "keyword"}}},
      "description":       {"type": "text", "analyzer": "folded"},
      "short_description": {"type": "text", "analyzer": "folded"},
      "price":             {"type": "double"},
      "sale_price":        {"type": "double"},
      "final_price":       {"type": "double"},
      "discount_percent":  {"type": "integer"},
      "stock_quantity":    {"type": "integer"},
      "in_stock":          {"type": "boolean"},
      "category_id":       {"type": "keyword"},
      "category_name":     {"type": "text", "analyzer": "folded", "fields": {"keyword": {"type": "keyword"}}},
      "category_slug":     {"type": "keyword"},
      "is_featured":       {"type": "boolean"},
      "on_sale":           {"type": "boolean"},
      "average_rating":    {"type": "float"},
      "review_count":      {"type": "integer"},
      "view_count":        {"type": "integer"},
      "purchase_count":    {"type": "integer"},
      "tags":              {"type": "keyword"},
      "meta_title":        {"type": "text"},
      "meta_keywords":     {"type": "text"},
      "boost_score":       {"type": "float"},
      "created_at":        {"type": "date"},
      "updated_at":        {"type": "date"}
    }
  }
}`
