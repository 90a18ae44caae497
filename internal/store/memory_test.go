package store_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/nitesh/seo_engine/internal/store"
	"github.com/nitesh/seo_engine/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemStore_UpsertIsIdempotentOnSlug(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemStore()
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s.SetClock(func() time.Time { return t0 })

	first, err := s.Upsert(ctx, hubPage())
	require.NoError(t, err)
	assert.True(t, first.Created)

	t1 := t0.Add(time.Hour)
	s.SetClock(func() time.Time { return t1 })
	updated := hubPage()
	updated.Title = "Nouveau titre"
	updated.Content = []byte(`{"city":"Lyon","repairersCount":3}`)
	second, err := s.Upsert(ctx, updated)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.False(t, second.Created)
	assert.Equal(t, []string{"reparateurs-lyon"}, s.Slugs())

	got, err := s.GetBySlug(ctx, "reparateurs-lyon", false)
	require.NoError(t, err)
	assert.Equal(t, "Nouveau titre", got.Title)
	assert.JSONEq(t, `{"city":"Lyon","repairersCount":3}`, string(got.Content))
	assert.Equal(t, t0, got.GeneratedAt)
	assert.Equal(t, t1, got.UpdatedAt)
	assert.False(t, got.IsPublished)
	assert.False(t, got.IsIndexed)
}

func TestMemStore_UpsertKeepsPublicationFlags(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemStore()
	_, err := s.Upsert(ctx, hubPage())
	require.NoError(t, err)
	require.NoError(t, s.SetPublished(ctx, "reparateurs-lyon", true, true))

	_, err = s.Upsert(ctx, hubPage())
	require.NoError(t, err)

	got, err := s.GetBySlug(ctx, "reparateurs-lyon", true)
	require.NoError(t, err)
	assert.True(t, got.IsPublished)
	assert.True(t, got.IsIndexed)
}

func TestMemStore_PageTypeConflict(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemStore()
	_, err := s.Upsert(ctx, hubPage())
	require.NoError(t, err)

	other := hubPage()
	other.PageType = models.PageTypeBrandCity
	other.Title = "overwrite"
	_, err = s.Upsert(ctx, other)
	assert.ErrorIs(t, err, store.ErrPageTypeConflict)

	got, err := s.GetBySlug(ctx, "reparateurs-lyon", false)
	require.NoError(t, err)
	assert.Equal(t, models.PageTypeHubCity, got.PageType)
	assert.Equal(t, "Réparateurs à Lyon", got.Title)
}

func TestMemStore_GetBySlugHidesUnpublished(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemStore()
	_, err := s.Upsert(ctx, hubPage())
	require.NoError(t, err)

	_, err = s.GetBySlug(ctx, "reparateurs-lyon", true)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.GetBySlug(ctx, "unknown", false)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestMemStore_ConcurrentUpsertsNeverFork(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemStore()

	var wg sync.WaitGroup
	ids := make([]string, 32)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p := hubPage()
			p.Title = fmt.Sprintf("title %d", i)
			res, err := s.Upsert(ctx, p)
			assert.NoError(t, err)
			ids[i] = res.ID
		}(i)
	}
	wg.Wait()

	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}
	assert.Len(t, s.Slugs(), 1)
}

func TestMemStore_DeleteAndList(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemStore()

	res, err := s.Upsert(ctx, hubPage())
	require.NoError(t, err)
	brand := &models.Page{PageType: models.PageTypeBrandCity, Slug: "reparation-apple-lyon", RepairersCount: 8}
	_, err = s.Upsert(ctx, brand)
	require.NoError(t, err)
	require.NoError(t, s.SetPublished(ctx, "reparation-apple-lyon", true, true))

	published, err := s.ListPublished(ctx, models.PageTypeBrandCity, models.PageTypeHubCity)
	require.NoError(t, err)
	require.Len(t, published, 1)
	assert.Equal(t, "reparation-apple-lyon", published[0].Slug)

	counts, err := s.CountByType(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[models.PageType]int{models.PageTypeHubCity: 1, models.PageTypeBrandCity: 1}, counts)

	slug, err := s.Delete(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, "reparateurs-lyon", slug)
	_, err = s.Delete(ctx, res.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.ErrorIs(t, s.SetPublished(ctx, "reparateurs-lyon", true, true), store.ErrNotFound)
}

func TestMemStore_LoadSeedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"providers": [
			{"id": "p1", "name": "A", "city": "Lyon", "rating": 4.1, "specialties": ["apple"]},
			{"id": "p2", "name": "B", "city": "lyon", "rating": 4.9},
			{"id": "p3", "name": "C", "city": "Paris"}
		],
		"blog_posts": [{"slug": "bien-choisir-son-reparateur", "updated_at": "2026-09-01T00:00:00Z"}]
	}`), 0o600))

	s := store.NewMemStore()
	require.NoError(t, s.LoadSeedFile(path))

	lyon, err := s.VerifiedProvidersInCity(context.Background(), "LYON")
	require.NoError(t, err)
	require.Len(t, lyon, 2)
	assert.Equal(t, "p2", lyon[0].ID)

	posts, err := s.PublishedBlogPosts(context.Background())
	require.NoError(t, err)
	assert.Len(t, posts, 1)

	assert.Error(t, s.LoadSeedFile(filepath.Join(t.TempDir(), "missing.json")))
}
