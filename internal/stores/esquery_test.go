// internal/stores/esquery_test.go
package stores

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailableTeamsQueryShape(t *testing.T) {
	body, err := json.Marshal(availableTeamsQuery())
	require.NoError(t, err)

	assert.Contains(t, string(body), `"availability.status":"available"`)
	assert.NotContains(t, string(body), "selective")
	assert.Contains(t, string(body), `"verification.status":"verified"`)
	assert.Contains(t, string(body), `"updatedAt":"desc"`)
}

func TestFeaturedTeamsQueryShape(t *testing.T) {
	body, err := json.Marshal(featuredTeamsQuery())
	require.NoError(t, err)

	assert.Contains(t, string(body), `"verification.status":"verified"`)
	assert.Contains(t, string(body), `"profileViews":"desc"`)
}

func TestActiveOpportunitiesQueryShape(t *testing.T) {
	body, err := json.Marshal(activeOpportunitiesQuery())
	require.NoError(t, err)

	assert.Contains(t, string(body), `"status":"active"`)
	assert.Contains(t, string(body), `"createdAt":"desc"`)
}

func TestSearchIndex_ParsesHitSources(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"hits": {
				"hits": [
					{"_source": {"id": "team-001"}},
					{"_source": {"id": "team-002"}}
				]
			}
		}`))
	}))
	defer srv.Close()

	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)

	sources, err := searchIndex(context.Background(), es, "teams", availableTeamsQuery(), 10)

	require.NoError(t, err)
	require.Len(t, sources, 2)
	assert.JSONEq(t, `{"id": "team-001"}`, string(sources[0]))
}

func TestSearchIndex_MissingIndex(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error": {"type": "index_not_found_exception"}}`))
	}))
	defer srv.Close()

	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)

	_, err = searchIndex(context.Background(), es, "ghost", availableTeamsQuery(), 10)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIndexNotFound)
}
