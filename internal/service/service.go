package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nitesh/seo_engine/internal/classifier"
	"github.com/nitesh/seo_engine/internal/logger"
	"github.com/nitesh/seo_engine/internal/metrics"
	"github.com/nitesh/seo_engine/internal/store"
	"github.com/nitesh/seo_engine/pkg/models"
)

// PageStore is the persistence contract of generated pages.
type PageStore interface {
	Upsert(ctx context.Context, page *models.Page) (store.UpsertResult, error)
	GetBySlug(ctx context.Context, slug string, requirePublished bool) (*models.Page, error)
	Delete(ctx context.Context, id string) (string, error)
	SetPublished(ctx context.Context, slug string, published, indexed bool) error
	ListPublished(ctx context.Context, types ...models.PageType) ([]*models.Page, error)
	CountByType(ctx context.Context) (map[models.PageType]int, error)
}

// Directory is the read-only provider directory.
type Directory interface {
	VerifiedProvidersInCity(ctx context.Context, city string) ([]*models.Provider, error)
}

const (
	defaultCacheTTL = 10 * time.Minute
	pageAttempts    = 2
)

type Service struct {
	repo       PageStore
	dir        Directory
	rdb        *redis.Client
	classifier *classifier.Classifier
	log        logger.Logger
	metrics    *metrics.Metrics
	cacheTTL   time.Duration
}

// NewService wires the generation and resolver paths. rdb and m may be nil.
func NewService(repo PageStore, dir Directory, rdb *redis.Client, log logger.Logger, m *metrics.Metrics) *Service {
	if log == nil {
		log = logger.NewNop()
	}
	return &Service{
		repo:       repo,
		dir:        dir,
		rdb:        rdb,
		classifier: classifier.New(classifier.DefaultVocabulary()),
		log:        log,
		metrics:    m,
		cacheTTL:   defaultCacheTTL,
	}
}

// WithVocabulary replaces the classifier vocabulary.
func (s *Service) WithVocabulary(v classifier.Vocabulary) *Service {
	s.classifier = classifier.New(v)
	return s
}

// WithCacheTTL sets the lifetime of resolver cache entries.
func (s *Service) WithCacheTTL(ttl time.Duration) *Service {
	if ttl > 0 {
		s.cacheTTL = ttl
	}
	return s
}

// SetPublished toggles the visibility flags of a page and drops its cached copy.
func (s *Service) SetPublished(ctx context.Context, slug string, published, indexed bool) error {
	if err := s.repo.SetPublished(ctx, slug, published, indexed); err != nil {
		return err
	}
	s.invalidate(ctx, slug)
	return nil
}

// DeletePage removes a page by id.
func (s *Service) DeletePage(ctx context.Context, id string) error {
	slug, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	s.invalidate(ctx, slug)
	return nil
}

// Stats returns the number of stored pages per archetype.
func (s *Service) Stats(ctx context.Context) (map[models.PageType]int, error) {
	return s.repo.CountByType(ctx)
}

// IsNotFound reports whether err means the requested record does not exist or is hidden.
func IsNotFound(err error) bool {
	return errors.Is(err, store.ErrNotFound)
}

func newSummary(city string) *models.GenerationSummary {
	return &models.GenerationSummary{City: city, Results: []models.PageResult{}}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprint(err)
}
