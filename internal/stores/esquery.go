// internal/stores/esquery.go
package stores

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

var ErrIndexNotFound = errors.New("INDEX_NOT_FOUND")

// availableTeamsQuery selects the candidate team pool: verified profiles with
// availability "available". Selective teams are excluded at the data layer.
// Sorted by recency so the pool order is deterministic across searches.
func availableTeamsQuery() map[string]interface{} {
	return map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"filter": []interface{}{
					map[string]interface{}{
						"term": map[string]interface{}{"availability.status": "available"},
					},
					map[string]interface{}{
						"term": map[string]interface{}{"verification.status": "verified"},
					},
				},
			},
		},
		"sort": []map[string]interface{}{{"updatedAt": "desc"}},
	}
}

// featuredTeamsQuery selects verified teams ordered by profile popularity for
// the generic dashboard listing.
func featuredTeamsQuery() map[string]interface{} {
	return map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"filter": []interface{}{
					map[string]interface{}{
						"term": map[string]interface{}{"verification.status": "verified"},
					},
				},
			},
		},
		"sort": []map[string]interface{}{{"profileViews": "desc"}},
	}
}

// activeOpportunitiesQuery selects the candidate opportunity pool: active
// postings, newest first.
func activeOpportunitiesQuery() map[string]interface{} {
	return map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"filter": []interface{}{
					map[string]interface{}{
						"term": map[string]interface{}{"status": "active"},
					},
				},
			},
		},
		"sort": []map[string]interface{}{{"createdAt": "desc"}},
	}
}

// searchIndex runs a search and returns the raw hit sources.
func searchIndex(ctx context.Context, es *elasticsearch.Client, index string, query map[string]interface{}, size int) ([]json.RawMessage, error) {
	body, err := json.Marshal(query)
	if err != nil {
		return nil, fmt.Errorf("marshal query: %w", err)
	}

	req := esapi.SearchRequest{
		Index: []string{index},
		Body:  bytes.NewReader(body),
		Size:  &size,
	}

	res, err := req.Do(ctx, es)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", index, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		if res.StatusCode == 404 {
			return nil, fmt.Errorf("%w: %s", ErrIndexNotFound, index)
		}
		return nil, fmt.Errorf("search %s: %s", index, res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source json.RawMessage `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	sources := make([]json.RawMessage, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		sources = append(sources, hit.Source)
	}
	return sources, nil
}
