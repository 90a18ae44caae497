package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/nitesh/seo_engine/internal/logger"
	"github.com/nitesh/seo_engine/pkg/models"
)

const pageCachePrefix = "seo:page:"

func pageCacheKey(slug string) string {
	return pageCachePrefix + slug
}

// GetPageBySlug returns a published page. Unknown and unpublished slugs both
// yield store.ErrNotFound. Redis is a read-through cache; its failures are
// logged and the store is queried instead.
func (s *Service) GetPageBySlug(ctx context.Context, slug string) (*models.Page, error) {
	if s.rdb != nil {
		raw, err := s.rdb.Get(ctx, pageCacheKey(slug)).Bytes()
		switch {
		case err == nil:
			var page models.Page
			if jsonErr := json.Unmarshal(raw, &page); jsonErr == nil {
				s.metrics.ObserveCache("hit")
				return &page, nil
			}
			s.metrics.ObserveCache("error")
		case errors.Is(err, redis.Nil):
			s.metrics.ObserveCache("miss")
		default:
			s.metrics.ObserveCache("error")
			s.log.Warn("page cache read failed", logger.String("slug", slug), logger.Error(err))
		}
	}

	page, err := s.repo.GetBySlug(ctx, slug, true)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if b, err := json.Marshal(page); err == nil {
			if err := s.rdb.Set(ctx, pageCacheKey(slug), b, s.cacheTTL).Err(); err != nil {
				s.log.Warn("page cache write failed", logger.String("slug", slug), logger.Error(err))
			}
		}
	}
	return page, nil
}

func (s *Service) invalidate(ctx context.Context, slug string) {
	if s.rdb == nil || slug == "" {
		return
	}
	if err := s.rdb.Del(ctx, pageCacheKey(slug)).Err(); err != nil {
		s.log.Warn("page cache invalidation failed", logger.String("slug", slug), logger.Error(err))
	}
}
