package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	dbtypes "github.com/nitesh/seo_engine/internal/db"
	"github.com/nitesh/seo_engine/pkg/models"
)

// MemStore is an in-process page store and provider directory. Upserts are
// serialized by a single lock, which gives the same identity guarantee as the
// unique slug index of PgStore.
type MemStore struct {
	mu        sync.RWMutex
	pages     map[string]*models.Page
	providers []*models.Provider
	posts     []*models.BlogPost
	now       func() time.Time
}

func NewMemStore() *MemStore {
	return &MemStore{
		pages: map[string]*models.Page{},
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// SetClock replaces the time source used for generated_at/updated_at.
func (m *MemStore) SetClock(now func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

// SeedProviders replaces the provider directory.
func (m *MemStore) SeedProviders(providers ...*models.Provider) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.providers = append([]*models.Provider(nil), providers...)
}

// SeedBlogPosts replaces the published blog posts.
func (m *MemStore) SeedBlogPosts(posts ...*models.BlogPost) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.posts = append([]*models.BlogPost(nil), posts...)
}

// LoadSeedFile reads {"providers": [...], "blog_posts": [...]} from path.
func (m *MemStore) LoadSeedFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}
	var seed struct {
		Providers []*models.Provider `json:"providers"`
		BlogPosts []*models.BlogPost `json:"blog_posts"`
	}
	if err := json.Unmarshal(b, &seed); err != nil {
		return fmt.Errorf("decode seed file: %w", err)
	}
	m.SeedProviders(seed.Providers...)
	m.SeedBlogPosts(seed.BlogPosts...)
	return nil
}

func (m *MemStore) Upsert(_ context.Context, page *models.Page) (UpsertResult, error) {
	if page.Slug == "" {
		return UpsertResult{}, fmt.Errorf("upsert page: empty slug")
	}
	if !page.PageType.Valid() {
		return UpsertResult{}, fmt.Errorf("upsert page %s: unknown page type %q", page.Slug, page.PageType)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()

	if existing, ok := m.pages[page.Slug]; ok {
		if existing.PageType != page.PageType {
			return UpsertResult{}, fmt.Errorf("upsert page %s as %s: %w", page.Slug, page.PageType, ErrPageTypeConflict)
		}
		existing.Title = page.Title
		existing.H1Title = page.H1Title
		existing.MetaDescription = page.MetaDescription
		existing.Content = append(dbtypes.JSON(nil), page.Content...)
		existing.SchemaOrg = append(dbtypes.JSON(nil), page.SchemaOrg...)
		existing.InternalLinks = append(dbtypes.StringSlice{}, page.InternalLinks...)
		existing.RepairersCount = page.RepairersCount
		existing.AverageRating = copyFloat(page.AverageRating)
		existing.UpdatedAt = now
		page.ID = existing.ID
		return UpsertResult{ID: existing.ID, Slug: existing.Slug}, nil
	}

	stored := clonePage(page)
	stored.ID = uuid.New().String()
	stored.IsPublished = false
	stored.IsIndexed = false
	stored.GeneratedAt = now
	stored.UpdatedAt = now
	m.pages[stored.Slug] = stored
	page.ID = stored.ID
	return UpsertResult{ID: stored.ID, Slug: stored.Slug, Created: true}, nil
}

func (m *MemStore) GetBySlug(_ context.Context, slug string, requirePublished bool) (*models.Page, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.pages[slug]
	if !ok || (requirePublished && !p.IsPublished) {
		return nil, ErrNotFound
	}
	return clonePage(p), nil
}

func (m *MemStore) Delete(_ context.Context, id string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for slug, p := range m.pages {
		if p.ID == id {
			delete(m.pages, slug)
			return slug, nil
		}
	}
	return "", ErrNotFound
}

func (m *MemStore) SetPublished(_ context.Context, slug string, published, indexed bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.pages[slug]
	if !ok {
		return ErrNotFound
	}
	p.IsPublished = published
	p.IsIndexed = indexed
	p.UpdatedAt = m.now()
	return nil
}

func (m *MemStore) ListPublished(_ context.Context, types ...models.PageType) ([]*models.Page, error) {
	want := make(map[models.PageType]bool, len(types))
	for _, t := range types {
		want[t] = true
	}
	m.mu.RLock()
	out := []*models.Page{}
	for _, p := range m.pages {
		if p.IsPublished && want[p.PageType] {
			out = append(out, clonePage(p))
		}
	}
	m.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].RepairersCount != out[j].RepairersCount {
			return out[i].RepairersCount > out[j].RepairersCount
		}
		return out[i].Slug < out[j].Slug
	})
	return out, nil
}

func (m *MemStore) CountByType(_ context.Context) (map[models.PageType]int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := map[models.PageType]int{}
	for _, p := range m.pages {
		out[p.PageType]++
	}
	return out, nil
}

// Slugs returns every stored slug in sorted order.
func (m *MemStore) Slugs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.pages))
	for s := range m.pages {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

func (m *MemStore) VerifiedProvidersInCity(_ context.Context, city string) ([]*models.Provider, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []*models.Provider{}
	for _, p := range m.providers {
		if strings.EqualFold(p.City, city) {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return ratingValue(out[i]) > ratingValue(out[j])
	})
	return out, nil
}

func (m *MemStore) VerifiedProviders(_ context.Context) ([]*models.Provider, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*models.Provider{}, m.providers...), nil
}

func (m *MemStore) PublishedBlogPosts(_ context.Context) ([]*models.BlogPost, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*models.BlogPost{}, m.posts...), nil
}

func ratingValue(p *models.Provider) float64 {
	if p.Rating == nil {
		return -1
	}
	return *p.Rating
}

func copyFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}

func clonePage(p *models.Page) *models.Page {
	c := *p
	c.Content = append(dbtypes.JSON(nil), p.Content...)
	c.SchemaOrg = append(dbtypes.JSON(nil), p.SchemaOrg...)
	c.InternalLinks = append(dbtypes.StringSlice{}, p.InternalLinks...)
	c.AverageRating = copyFloat(p.AverageRating)
	return &c
}
