// Package sitemap renders the sitemap protocol documents of the published site.
package sitemap

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/nitesh/seo_engine/pkg/models"
)

const (
	xmlns      = "http://www.sitemaps.org/schemas/sitemap/0.9"
	dateLayout = "2006-01-02"
	IndexFile  = "sitemap.xml"
)

// CategoryDir is the path under which category documents are served.
const CategoryDir = "/sitemaps/"

// Category is one of the per-section sitemap documents.
type Category string

const (
	CategoryStatic    Category = "static"
	CategoryRepairers Category = "repairers"
	CategoryCities    Category = "cities"
	CategoryModels    Category = "models"
	CategorySymptoms  Category = "symptoms"
	CategoryBlog      Category = "blog"
)

// Categories lists every category in index order.
var Categories = []Category{
	CategoryStatic, CategoryRepairers, CategoryCities, CategoryModels, CategorySymptoms, CategoryBlog,
}

// FileName is the document name of a category, e.g. sitemap-cities.xml.
func (c Category) FileName() string {
	return "sitemap-" + string(c) + ".xml"
}

// Path is the site path of the category document, e.g. /sitemaps/sitemap-cities.xml.
func (c Category) Path() string {
	return CategoryDir + c.FileName()
}

// CategoryFromFile resolves a document name back to its category.
func CategoryFromFile(name string) (Category, bool) {
	for _, c := range Categories {
		if c.FileName() == name {
			return c, true
		}
	}
	return "", false
}

// Change frequencies.
const (
	Daily   = "daily"
	Weekly  = "weekly"
	Monthly = "monthly"
	Yearly  = "yearly"
)

type staticPage struct {
	path       string
	changeFreq string
	priority   float64
}

var staticPages = []staticPage{
	{path: "/", changeFreq: Daily, priority: 1.0},
	{path: "/recherche", changeFreq: Daily, priority: 0.9},
	{path: "/devenir-reparateur", changeFreq: Monthly, priority: 0.7},
	{path: "/blog", changeFreq: Weekly, priority: 0.7},
	{path: "/mentions-legales", changeFreq: Monthly, priority: 0.3},
	{path: "/cgu", changeFreq: Yearly, priority: 0.2},
	{path: "/politique-de-confidentialite", changeFreq: Yearly, priority: 0.2},
}

// Scaled priorities: min(ceiling, base + repairers_count*factor).
const (
	hubBase, hubCeiling     = 0.5, 0.9
	modelBase, modelCeiling = 0.4, 0.8
	popularityFactor        = 0.01
	providerPriority        = 0.8
	symptomPriority         = 0.6
	blogPriority            = 0.6
)

// HubPriority is the priority of a hub_city page.
func HubPriority(repairers int) float64 {
	return scaled(hubBase, hubCeiling, repairers)
}

// ModelPriority is the priority of a brand_city or model_city page.
func ModelPriority(repairers int) float64 {
	return scaled(modelBase, modelCeiling, repairers)
}

func scaled(base, ceiling float64, repairers int) float64 {
	if repairers < 0 {
		repairers = 0
	}
	p := math.Min(ceiling, base+float64(repairers)*popularityFactor)
	return math.Round(p*100) / 100
}

// Source is the read-only data the assembler needs.
type Source interface {
	ListPublished(ctx context.Context, types ...models.PageType) ([]*models.Page, error)
	VerifiedProviders(ctx context.Context) ([]*models.Provider, error)
	PublishedBlogPosts(ctx context.Context) ([]*models.BlogPost, error)
}

// Entry is one URL of a category sitemap.
type Entry struct {
	Loc        string
	LastMod    time.Time
	ChangeFreq string
	Priority   float64
}

// Assembler builds sitemap documents for one site origin.
type Assembler struct {
	src     Source
	baseURL string
	now     func() time.Time
}

// New returns an assembler emitting absolute URLs under baseURL.
func New(src Source, baseURL string) *Assembler {
	return &Assembler{
		src:     src,
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// WithClock overrides the time used for the index lastmod.
func (a *Assembler) WithClock(now func() time.Time) *Assembler {
	a.now = now
	return a
}

func (a *Assembler) url(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return a.baseURL + path
}

// Entries returns the URLs of a category. Generated pages are listed only
// when both published and indexed.
func (a *Assembler) Entries(ctx context.Context, c Category) ([]Entry, error) {
	switch c {
	case CategoryStatic:
		out := make([]Entry, 0, len(staticPages))
		for _, p := range staticPages {
			out = append(out, Entry{Loc: a.url(p.path), ChangeFreq: p.changeFreq, Priority: p.priority})
		}
		return out, nil

	case CategoryRepairers:
		providers, err := a.src.VerifiedProviders(ctx)
		if err != nil {
			return nil, fmt.Errorf("sitemap %s: %w", c, err)
		}
		out := make([]Entry, 0, len(providers))
		for _, p := range providers {
			out = append(out, Entry{Loc: a.url("/reparateur/" + p.ID), LastMod: p.UpdatedAt, ChangeFreq: Daily, Priority: providerPriority})
		}
		return out, nil

	case CategoryCities:
		return a.pageEntries(ctx, c, Weekly, HubPriority, models.PageTypeHubCity)

	case CategoryModels:
		return a.pageEntries(ctx, c, Weekly, ModelPriority, models.PageTypeBrandCity, models.PageTypeModelCity)

	case CategorySymptoms:
		return a.pageEntries(ctx, c, Monthly, func(int) float64 { return symptomPriority }, models.PageTypeSymptom)

	case CategoryBlog:
		posts, err := a.src.PublishedBlogPosts(ctx)
		if err != nil {
			return nil, fmt.Errorf("sitemap %s: %w", c, err)
		}
		out := make([]Entry, 0, len(posts))
		for _, p := range posts {
			out = append(out, Entry{Loc: a.url("/blog/" + p.Slug), LastMod: p.UpdatedAt, ChangeFreq: Monthly, Priority: blogPriority})
		}
		return out, nil
	}
	return nil, fmt.Errorf("unknown sitemap category %q", c)
}

func (a *Assembler) pageEntries(ctx context.Context, c Category, freq string, priority func(int) float64, types ...models.PageType) ([]Entry, error) {
	pages, err := a.src.ListPublished(ctx, types...)
	if err != nil {
		return nil, fmt.Errorf("sitemap %s: %w", c, err)
	}
	out := make([]Entry, 0, len(pages))
	for _, p := range pages {
		if !p.IsPublished || !p.IsIndexed {
			continue
		}
		out = append(out, Entry{Loc: a.url(p.Slug), LastMod: p.UpdatedAt, ChangeFreq: freq, Priority: priority(p.RepairersCount)})
	}
	return out, nil
}

type urlSet struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	URLs    []xmlURL `xml:"url"`
}

type xmlURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

type sitemapIndex struct {
	XMLName  xml.Name     `xml:"sitemapindex"`
	Xmlns    string       `xml:"xmlns,attr"`
	Sitemaps []xmlSitemap `xml:"sitemap"`
}

type xmlSitemap struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod"`
}

// Category renders the urlset document of c.
func (a *Assembler) Category(ctx context.Context, c Category) ([]byte, error) {
	entries, err := a.Entries(ctx, c)
	if err != nil {
		return nil, err
	}
	set := urlSet{Xmlns: xmlns, URLs: make([]xmlURL, 0, len(entries))}
	for _, e := range entries {
		u := xmlURL{
			Loc:        e.Loc,
			ChangeFreq: e.ChangeFreq,
			Priority:   strconv.FormatFloat(math.Round(e.Priority*100)/100, 'f', -1, 64),
		}
		if !e.LastMod.IsZero() {
			u.LastMod = e.LastMod.UTC().Format(dateLayout)
		}
		set.URLs = append(set.URLs, u)
	}
	return encode(set)
}

// Index renders the sitemapindex referencing every category document.
func (a *Assembler) Index() ([]byte, error) {
	today := a.now().UTC().Format(dateLayout)
	idx := sitemapIndex{Xmlns: xmlns}
	for _, c := range Categories {
		idx.Sitemaps = append(idx.Sitemaps, xmlSitemap{Loc: a.url(c.Path()), LastMod: today})
	}
	return encode(idx)
}

// Build renders the index and every category document, keyed by file name.
func (a *Assembler) Build(ctx context.Context) (map[string][]byte, error) {
	out := make(map[string][]byte, len(Categories)+1)
	index, err := a.Index()
	if err != nil {
		return nil, err
	}
	out[IndexFile] = index
	for _, c := range Categories {
		doc, err := a.Category(ctx, c)
		if err != nil {
			return nil, err
		}
		out[c.FileName()] = doc
	}
	return out, nil
}

func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encode sitemap: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
