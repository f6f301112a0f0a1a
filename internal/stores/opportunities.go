// internal/stores/opportunities.go
package stores

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"

	"liftout-matching/internal/common/logger"
	"liftout-matching/internal/models"
)

const opportunityCacheKeyPrefix = "opportunity:"

// OpportunityStore reads opportunity postings, mirroring the TeamStore split:
// Postgres plus cache for lookups, Elasticsearch for pool queries.
type OpportunityStore struct {
	db       *sql.DB
	es       *elasticsearch.Client
	cache    *redis.Client
	index    string
	poolSize int
	cacheTTL time.Duration
	logger   logger.Logger
}

type OpportunityStoreOptions struct {
	Index    string
	PoolSize int
	CacheTTL time.Duration
}

func NewOpportunityStore(db *sql.DB, es *elasticsearch.Client, cache *redis.Client, opts OpportunityStoreOptions, log logger.Logger) *OpportunityStore {
	if opts.Index == "" {
		opts.Index = "opportunities"
	}
	if opts.PoolSize == 0 {
		opts.PoolSize = 500
	}
	if opts.CacheTTL == 0 {
		opts.CacheTTL = 5 * time.Minute
	}
	return &OpportunityStore{
		db:       db,
		es:       es,
		cache:    cache,
		index:    opts.Index,
		poolSize: opts.PoolSize,
		cacheTTL: opts.CacheTTL,
		logger:   log.WithFields(map[string]interface{}{"store": "opportunities"}),
	}
}

// GetByID resolves one posting. Returns (nil, nil) when the id does not exist.
func (s *OpportunityStore) GetByID(ctx context.Context, id string) (*models.Opportunity, error) {
	key := opportunityCacheKeyPrefix + id

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, key).Result(); err == nil {
			var opp models.Opportunity
			if err := json.Unmarshal([]byte(cached), &opp); err == nil {
				return &opp, nil
			}
		}
	}

	var doc []byte
	err := s.db.QueryRowContext(ctx, `SELECT doc FROM opportunities WHERE id = $1`, id).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query opportunity %s: %w", id, err)
	}

	var opp models.Opportunity
	if err := json.Unmarshal(doc, &opp); err != nil {
		return nil, fmt.Errorf("decode opportunity %s: %w", id, err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, doc, s.cacheTTL).Err(); err != nil {
			s.logger.Warn("opportunity cache write failed", map[string]interface{}{
				"opportunityId": id,
				"error":         err.Error(),
			})
		}
	}

	return &opp, nil
}

// Invalidate drops the cached posting after an update.
func (s *OpportunityStore) Invalidate(ctx context.Context, id string) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Del(ctx, opportunityCacheKeyPrefix+id).Err()
}

// SearchActive returns active postings, newest first.
func (s *OpportunityStore) SearchActive(ctx context.Context) ([]models.Opportunity, error) {
	sources, err := searchIndex(ctx, s.es, s.index, activeOpportunitiesQuery(), s.poolSize)
	if err != nil {
		return nil, err
	}

	opps := make([]models.Opportunity, 0, len(sources))
	for _, source := range sources {
		var opp models.Opportunity
		if err := json.Unmarshal(source, &opp); err != nil {
			s.logger.Warn("skipping malformed opportunity document", map[string]interface{}{
				"error": err.Error(),
			})
			continue
		}
		opps = append(opps, opp)
	}
	return opps, nil
}

// ByCompany returns the company's most recent postings, newest first.
func (s *OpportunityStore) ByCompany(ctx context.Context, companyID string, limit int) ([]models.Opportunity, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT doc FROM opportunities
		WHERE company_id = $1
		ORDER BY created_at DESC
		LIMIT $2`, companyID, limit)
	if err != nil {
		return nil, fmt.Errorf("query company opportunities %s: %w", companyID, err)
	}
	defer rows.Close()

	var opps []models.Opportunity
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan company opportunity: %w", err)
		}
		var opp models.Opportunity
		if err := json.Unmarshal(doc, &opp); err != nil {
			return nil, fmt.Errorf("decode company opportunity: %w", err)
		}
		opps = append(opps, opp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate company opportunities: %w", err)
	}

	return opps, nil
}
