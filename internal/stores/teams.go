// internal/stores/teams.go
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

const teamCacheKeyPrefix = "team:"

// TeamStore reads team profiles. Single lookups go through Postgres with a
// Redis cache in front; pool and listing queries go through Elasticsearch.
type TeamStore struct {
	db       *sql.DB
	es       *elasticsearch.Client
	cache    *redis.Client
	index    string
	poolSize int
	cacheTTL time.Duration
	logger   logger.Logger
}

type TeamStoreOptions struct {
	Index    string
	PoolSize int
	CacheTTL time.Duration
}

func NewTeamStore(db *sql.DB, es *elasticsearch.Client, cache *redis.Client, opts TeamStoreOptions, log logger.Logger) *TeamStore {
	if opts.Index == "" {
		opts.Index = "teams"
	}
	if opts.PoolSize == 0 {
		opts.PoolSize = 500
	}
	if opts.CacheTTL == 0 {
		opts.CacheTTL = 5 * time.Minute
	}
	return &TeamStore{
		db:       db,
		es:       es,
		cache:    cache,
		index:    opts.Index,
		poolSize: opts.PoolSize,
		cacheTTL: opts.CacheTTL,
		logger:   log.WithFields(map[string]interface{}{"store": "teams"}),
	}
}

// GetByID resolves one team profile. Returns (nil, nil) when the id does not
// exist. Cache failures degrade to the database.
func (s *TeamStore) GetByID(ctx context.Context, id string) (*models.Team, error) {
	key := teamCacheKeyPrefix + id

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, key).Result(); err == nil {
			var team models.Team
			if err := json.Unmarshal([]byte(cached), &team); err == nil {
				return &team, nil
			}
		}
	}

	var doc []byte
	err := s.db.QueryRowContext(ctx, `SELECT doc FROM teams WHERE id = $1`, id).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query team %s: %w", id, err)
	}

	var team models.Team
	if err := json.Unmarshal(doc, &team); err != nil {
		return nil, fmt.Errorf("decode team %s: %w", id, err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, doc, s.cacheTTL).Err(); err != nil {
			s.logger.Warn("team cache write failed", map[string]interface{}{
				"teamId": id,
				"error":  err.Error(),
			})
		}
	}

	return &team, nil
}

// Invalidate drops the cached profile after an update.
func (s *TeamStore) Invalidate(ctx context.Context, id string) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Del(ctx, teamCacheKeyPrefix+id).Err()
}

// SearchAvailable returns the matchable candidate pool: verified teams with
// availability "available", in recency order.
func (s *TeamStore) SearchAvailable(ctx context.Context) ([]models.Team, error) {
	return s.search(ctx, availableTeamsQuery(), s.poolSize)
}

// Featured returns verified teams ordered by profile popularity.
func (s *TeamStore) Featured(ctx context.Context, limit int) ([]models.Team, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.search(ctx, featuredTeamsQuery(), limit)
}

func (s *TeamStore) search(ctx context.Context, query map[string]interface{}, size int) ([]models.Team, error) {
	sources, err := searchIndex(ctx, s.es, s.index, query, size)
	if err != nil {
		return nil, err
	}

	teams := make([]models.Team, 0, len(sources))
	for _, source := range sources {
		var team models.Team
		if err := json.Unmarshal(source, &team); err != nil {
			s.logger.Warn("skipping malformed team document", map[string]interface{}{
				"error": err.Error(),
			})
			continue
		}
		teams = append(teams, team)
	}
	return teams, nil
}
