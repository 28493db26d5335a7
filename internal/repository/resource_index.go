// internal/repository/resource_index.go
package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"

	"housing-workers/internal/models"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

var ErrSearchFailed = errors.New("SEARCH_QUERY_FAILED")

// ResourceMapping is the index mapping for directory resources.
const ResourceMapping = `{
  "mappings": {
    "properties": {
      "id":             {"type": "keyword"},
      "organizationId": {"type": "keyword"},
      "name":           {"type": "text", "fields": {"raw": {"type": "keyword"}}},
      "description":    {"type": "text"},
      "category":       {"type": "keyword"},
      "phone":          {"type": "keyword", "index": false},
      "address":        {"type": "text"},
      "hours":          {"type": "text", "index": false},
      "eligibility":    {"type": "text"},
      "isActive":       {"type": "boolean"},
      "createdAt":      {"type": "date"},
      "updatedAt":      {"type": "date"}
    }
  }
}`

type ResourceQuery struct {
	OrganizationID    string
	Search            string
	Category          string
	IncludeInactive   bool
	IncludeCategories bool
	From              int
	Size              int
}

type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type ResourceResult struct {
	Resources  []models.Resource
	Total      int
	Categories []CategoryCount
}

// ResourceIndex keeps the searchable copy of directory resources.
type ResourceIndex struct {
	client *elasticsearch.Client
	index  string
}

func NewResourceIndex(client *elasticsearch.Client, index string) *ResourceIndex {
	return &ResourceIndex{client: client, index: index}
}

func (ri *ResourceIndex) Index(ctx context.Context, resource *models.Resource) error {
	body, err := json.Marshal(resource)
	if err != nil {
		return fmt.Errorf("encode resource %s: %w", resource.ID, err)
	}

	res, err := esapi.IndexRequest{
		Index:      ri.index,
		DocumentID: resource.ID,
		Body:       bytes.NewReader(body),
		Refresh:    "wait_for",
	}.Do(ctx, ri.client)
	if err != nil {
		return fmt.Errorf("index resource %s: %w", resource.ID, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		msg, _ := io.ReadAll(res.Body)
		return fmt.Errorf("index resource %s: %s: %s", resource.ID, res.Status(), msg)
	}
	return nil
}

// ClampPage bounds a requested page to the allowed window.
func ClampPage(from, size int) (int, int) {
	if from < 0 {
		from = 0
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return from, size
}

func BuildResourceQuery(q ResourceQuery) map[string]interface{} {
	filters := []interface{}{
		map[string]interface{}{"term": map[string]interface{}{"organizationId": q.OrganizationID}},
	}
	if !q.IncludeInactive {
		filters = append(filters, map[string]interface{}{"term": map[string]interface{}{"isActive": true}})
	}
	if q.Category != "" {
		filters = append(filters, map[string]interface{}{"term": map[string]interface{}{"category": q.Category}})
	}

	boolQuery := map[string]interface{}{"filter": filters}
	if q.Search != "" {
		boolQuery["must"] = []interface{}{
			map[string]interface{}{
				"multi_match": map[string]interface{}{
					"query":  q.Search,
					"fields": []string{"name^3", "description^2", "category"},
					"type":   "best_fields",
				},
			},
		}
	}

	from, size := ClampPage(q.From, q.Size)
	body := map[string]interface{}{
		"query": map[string]interface{}{"bool": boolQuery},
		"from":  from,
		"size":  size,
	}
	if q.Search == "" {
		body["sort"] = []interface{}{
			map[string]interface{}{"name.raw": map[string]interface{}{"order": "asc"}},
		}
	}
	if q.IncludeCategories {
		body["aggs"] = map[string]interface{}{
			"categories": map[string]interface{}{
				"terms": map[string]interface{}{"field": "category", "size": 100},
			},
		}
	}
	return body
}

type searchResponse struct {
	Hits struct {
		Total struct {
			Value int `json:"value"`
		} `json:"total"`
		Hits []struct {
			Source models.Resource `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
	Aggregations struct {
		Categories struct {
			Buckets []struct {
				Key      string `json:"key"`
				DocCount int    `json:"doc_count"`
			} `json:"buckets"`
		} `json:"categories"`
	} `json:"aggregations"`
}

func (ri *ResourceIndex) Search(ctx context.Context, q ResourceQuery) (*ResourceResult, error) {
	body, err := json.Marshal(BuildResourceQuery(q))
	if err != nil {
		return nil, fmt.Errorf("%w: encode query: %v", ErrSearchFailed, err)
	}

	res, err := esapi.SearchRequest{
		Index: []string{ri.index},
		Body:  bytes.NewReader(body),
	}.Do(ctx, ri.client)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearchFailed, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		msg, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("%w: %s: %s", ErrSearchFailed, res.Status(), msg)
	}

	var sr searchResponse
	if err := json.NewDecoder(res.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrSearchFailed, err)
	}

	out := &ResourceResult{
		Total:     sr.Hits.Total.Value,
		Resources: make([]models.Resource, 0, len(sr.Hits.Hits)),
	}
	for _, hit := range sr.Hits.Hits {
		out.Resources = append(out.Resources, hit.Source)
	}
	if q.IncludeCategories {
		out.Categories = make([]CategoryCount, 0, len(sr.Aggregations.Categories.Buckets))
		for _, b := range sr.Aggregations.Categories.Buckets {
			out.Categories = append(out.Categories, CategoryCount{Name: b.Key, Count: b.DocCount})
		}
		sort.Slice(out.Categories, func(i, j int) bool {
			return out.Categories[i].Name < out.Categories[j].Name
		})
	}
	return out, nil
}
