package store

import (
	"context"
	"fmt"

	"github.com/lib/pq"

	"github.com/nitesh/seo_engine/pkg/models"
)

// The repairers and blog_posts tables belong to the directory application;
// this package only reads them.

const providerColumns = `id,name,city,postal_code,rating,specialties,services,updated_at`

// VerifiedProvidersInCity lists the verified repairers of a city, best rated first.
func (p *PgStore) VerifiedProvidersInCity(ctx context.Context, city string) ([]*models.Provider, error) {
	rows := []*models.Provider{}
	query := `
SELECT ` + providerColumns + `
FROM repairers
WHERE is_verified = TRUE AND lower(city) = lower($1)
ORDER BY rating DESC NULLS LAST, name ASC
`
	if err := p.db.SelectContext(ctx, &rows, query, city); err != nil {
		return nil, fmt.Errorf("list providers in %s: %w", city, err)
	}
	return rows, nil
}

// VerifiedProviders lists every verified repairer, the set exposed as public profiles.
func (p *PgStore) VerifiedProviders(ctx context.Context) ([]*models.Provider, error) {
	rows := []*models.Provider{}
	query := `
SELECT ` + providerColumns + `
FROM repairers
WHERE is_verified = TRUE
ORDER BY updated_at DESC, id ASC
`
	if err := p.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list providers: %w", err)
	}
	return rows, nil
}

func (p *PgStore) PublishedBlogPosts(ctx context.Context) ([]*models.BlogPost, error) {
	rows := []*models.BlogPost{}
	query := `SELECT slug, updated_at FROM blog_posts WHERE is_published = TRUE ORDER BY updated_at DESC`
	if err := p.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list blog posts: %w", err)
	}
	return rows, nil
}

func pqArray(a []string) interface{} {
	return pq.Array(a)
}
