package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	dbtypes "github.com/nitesh/seo_engine/internal/db"
	"github.com/nitesh/seo_engine/pkg/models"
)

var (
	// ErrNotFound is returned when no (visible) record matches.
	ErrNotFound = errors.New("not found")
	// ErrPageTypeConflict is returned when a slug is regenerated under another archetype.
	ErrPageTypeConflict = errors.New("slug already used by another page type")
)

// UpsertResult identifies the record written by Upsert.
type UpsertResult struct {
	ID      string `json:"id"`
	Slug    string `json:"slug"`
	Created bool   `json:"created"`
}

type PgStore struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewPgStore(db *sql.DB) *PgStore {
	return &PgStore{db: sqlx.NewDb(db, "postgres"), now: func() time.Time { return time.Now().UTC() }}
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	initSQL := `
CREATE TABLE IF NOT EXISTS seo_pages(
  id UUID PRIMARY KEY,
  page_type TEXT NOT NULL,
  slug TEXT NOT NULL,
  title TEXT NOT NULL DEFAULT '',
  h1_title TEXT NOT NULL DEFAULT '',
  meta_description TEXT NOT NULL DEFAULT '',
  content JSONB NOT NULL DEFAULT '{}'::jsonb,
  schema_org JSONB NOT NULL DEFAULT '{}'::jsonb,
  internal_links JSONB NOT NULL DEFAULT '[]'::jsonb,
  repairers_count INTEGER NOT NULL DEFAULT 0 CHECK (repairers_count >= 0),
  average_rating DOUBLE PRECISION CHECK (average_rating BETWEEN 0 AND 5),
  is_published BOOLEAN NOT NULL DEFAULT FALSE,
  is_indexed BOOLEAN NOT NULL DEFAULT FALSE,
  generated_at TIMESTAMPTZ NOT NULL,
  updated_at TIMESTAMPTZ NOT NULL
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_seo_pages_slug ON seo_pages(slug);
CREATE INDEX IF NOT EXISTS idx_seo_pages_type_published ON seo_pages(page_type, is_published);
`
	_, err := db.ExecContext(ctx, initSQL)
	return err
}

const pageColumns = `id,page_type,slug,title,h1_title,meta_description,content,schema_org,internal_links,repairers_count,average_rating,is_published,is_indexed,generated_at,updated_at`

// Upsert writes p keyed by slug in one statement. An existing row is updated
// only when its page_type matches, so identity never forks and the archetype
// of a slug never changes.
func (p *PgStore) Upsert(ctx context.Context, page *models.Page) (UpsertResult, error) {
	if page.Slug == "" {
		return UpsertResult{}, fmt.Errorf("upsert page: empty slug")
	}
	if !page.PageType.Valid() {
		return UpsertResult{}, fmt.Errorf("upsert page %s: unknown page type %q", page.Slug, page.PageType)
	}
	if page.InternalLinks == nil {
		page.InternalLinks = dbtypes.StringSlice{}
	}

	stmt := `
INSERT INTO seo_pages (` + pageColumns + `)
VALUES ($1,$2,$3,$4,$5,$6,$7::jsonb,$8::jsonb,$9::jsonb,$10,$11,FALSE,FALSE,$12,$12)
ON CONFLICT (slug) DO UPDATE SET
 title=EXCLUDED.title,
 h1_title=EXCLUDED.h1_title,
 meta_description=EXCLUDED.meta_description,
 content=EXCLUDED.content,
 schema_org=EXCLUDED.schema_org,
 internal_links=EXCLUDED.internal_links,
 repairers_count=EXCLUDED.repairers_count,
 average_rating=EXCLUDED.average_rating,
 updated_at=EXCLUDED.updated_at
WHERE seo_pages.page_type = EXCLUDED.page_type
RETURNING id, (xmax = 0) AS created
`
	res := UpsertResult{Slug: page.Slug}
	err := p.db.QueryRowxContext(ctx, stmt,
		uuid.New().String(),
		page.PageType,
		page.Slug,
		page.Title,
		page.H1Title,
		page.MetaDescription,
		page.Content,
		page.SchemaOrg,
		page.InternalLinks,
		page.RepairersCount,
		page.AverageRating,
		p.now(),
	).Scan(&res.ID, &res.Created)
	if errors.Is(err, sql.ErrNoRows) {
		return UpsertResult{}, fmt.Errorf("upsert page %s as %s: %w", page.Slug, page.PageType, ErrPageTypeConflict)
	}
	if err != nil {
		return UpsertResult{}, fmt.Errorf("upsert page %s: %w", page.Slug, err)
	}
	page.ID = res.ID
	return res, nil
}

func (p *PgStore) GetBySlug(ctx context.Context, slug string, requirePublished bool) (*models.Page, error) {
	query := `SELECT ` + pageColumns + ` FROM seo_pages WHERE slug = $1`
	if requirePublished {
		query += ` AND is_published = TRUE`
	}
	page := &models.Page{}
	err := p.db.GetContext(ctx, page, query, slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get page %s: %w", slug, err)
	}
	return page, nil
}

// Delete removes a page unconditionally and returns its slug.
func (p *PgStore) Delete(ctx context.Context, id string) (string, error) {
	var slug string
	err := p.db.QueryRowxContext(ctx, `DELETE FROM seo_pages WHERE id = $1 RETURNING slug`, id).Scan(&slug)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("delete page %s: %w", id, err)
	}
	return slug, nil
}

func (p *PgStore) SetPublished(ctx context.Context, slug string, published, indexed bool) error {
	res, err := p.db.ExecContext(ctx,
		`UPDATE seo_pages SET is_published = $1, is_indexed = $2, updated_at = $3 WHERE slug = $4`,
		published, indexed, p.now(), slug)
	if err != nil {
		return fmt.Errorf("publish page %s: %w", slug, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListPublished returns the published pages of the given archetypes, most popular first.
func (p *PgStore) ListPublished(ctx context.Context, types ...models.PageType) ([]*models.Page, error) {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	rows := []*models.Page{}
	query := `
SELECT ` + pageColumns + `
FROM seo_pages
WHERE is_published = TRUE AND page_type = ANY($1)
ORDER BY repairers_count DESC, slug ASC
`
	if err := p.db.SelectContext(ctx, &rows, query, pqArray(names)); err != nil {
		return nil, fmt.Errorf("list published pages: %w", err)
	}
	return rows, nil
}

func (p *PgStore) CountByType(ctx context.Context) (map[models.PageType]int, error) {
	var rows []struct {
		PageType models.PageType `db:"page_type"`
		Count    int             `db:"count"`
	}
	if err := p.db.SelectContext(ctx, &rows, `SELECT page_type, COUNT(*) AS count FROM seo_pages GROUP BY page_type`); err != nil {
		return nil, fmt.Errorf("count pages: %w", err)
	}
	out := make(map[models.PageType]int, len(rows))
	for _, r := range rows {
		out[r.PageType] = r.Count
	}
	return out, nil
}
