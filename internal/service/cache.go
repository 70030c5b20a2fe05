package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hireloop/interview-api/internal/constants"
	ctxutil "github.com/hireloop/interview-api/pkg/context"
	"github.com/hireloop/interview-api/pkg/logger"
	"github.com/hireloop/interview-api/pkg/redis"
)

const (
	questionCacheTTL = 5 * time.Minute
	categoryCacheTTL = 10 * time.Minute
	statsCacheTTL    = time.Minute
)

// CacheService caches read-heavy question bank and statistics payloads.
// Cache failures degrade to database reads, they never fail a request.
type CacheService struct {
	client *redis.Client
}

func NewCacheService(client *redis.Client) *CacheService {
	return &CacheService{client: client}
}

// GetQuestionList loads a cached question listing into out, reporting a hit.
func (s *CacheService) GetQuestionList(ctx context.Context, key string, out interface{}) bool {
	return s.get(ctx, constants.CacheKeyQuestions+key, out)
}

func (s *CacheService) SetQuestionList(ctx context.Context, key string, value interface{}) {
	s.set(ctx, constants.CacheKeyQuestions+key, value, questionCacheTTL)
}

// InvalidateQuestions drops every cached question listing, along with the
// statistics that aggregate them.
func (s *CacheService) InvalidateQuestions(ctx context.Context) {
	ctx = ctxutil.WithOperation(ctx, "service", "InvalidateQuestions")

	if err := s.client.DeleteByPattern(ctx, constants.CacheKeyQuestions+"*"); err != nil {
		logger.WarnWithContext(ctx, "Failed to invalidate question cache").Err(err).Log()
	}
	s.InvalidateStats(ctx)
}

func (s *CacheService) GetCategories(ctx context.Context, key string, out interface{}) bool {
	return s.get(ctx, constants.CacheKeyCategory+key, out)
}

func (s *CacheService) SetCategories(ctx context.Context, key string, value interface{}) {
	s.set(ctx, constants.CacheKeyCategory+key, value, categoryCacheTTL)
}

func (s *CacheService) InvalidateCategories(ctx context.Context) {
	ctx = ctxutil.WithOperation(ctx, "service", "InvalidateCategories")

	if err := s.client.DeleteByPattern(ctx, constants.CacheKeyCategory+"*"); err != nil {
		logger.WarnWithContext(ctx, "Failed to invalidate category cache").Err(err).Log()
	}
	// category edits change question listings too
	if err := s.client.DeleteByPattern(ctx, constants.CacheKeyQuestions+"*"); err != nil {
		logger.WarnWithContext(ctx, "Failed to invalidate question cache").Err(err).Log()
	}
}

func (s *CacheService) GetStats(ctx context.Context, key string, out interface{}) bool {
	return s.get(ctx, constants.CacheKeyStats+key, out)
}

func (s *CacheService) SetStats(ctx context.Context, key string, value interface{}) {
	s.set(ctx, constants.CacheKeyStats+key, value, statsCacheTTL)
}

func (s *CacheService) InvalidateStats(ctx context.Context) {
	if err := s.client.DeleteByPattern(ctx, constants.CacheKeyStats+"*"); err != nil {
		logger.WarnWithContext(ctx, "Failed to invalidate stats cache").Err(err).Log()
	}
}

func (s *CacheService) get(ctx context.Context, key string, out interface{}) bool {
	data, found, err := s.client.Get(ctx, key)
	if err != nil || !found {
		return false
	}
	if err := json.Unmarshal([]byte(data), out); err != nil {
		logger.WarnWithContext(ctx, "Discarding undecodable cache entry").
			String("key", key).
			Err(err).
			Log()
		_ = s.client.Delete(ctx, key)
		return false
	}
	return true
}

func (s *CacheService) set(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		logger.WarnWithContext(ctx, "Failed to marshal cache value").
			String("key", key).
			Err(err).
			Log()
		return
	}
	if err := s.client.Set(ctx, key, data, ttl); err != nil {
		logger.WarnWithContext(ctx, "Failed to write cache").
			String("key", key).
			Err(err).
			Log()
	}
}
