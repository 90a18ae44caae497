package models

import (
	"time"

	dbtypes "github.com/nitesh/seo_engine/internal/db"
)

// PageType names one of the four landing-page archetypes.
type PageType string

const (
	PageTypeModelCity PageType = "model_city"
	PageTypeSymptom   PageType = "symptom"
	PageTypeHubCity   PageType = "hub_city"
	PageTypeBrandCity PageType = "brand_city"
)

// Valid reports whether t is one of the known archetypes.
func (t PageType) Valid() bool {
	switch t {
	case PageTypeModelCity, PageTypeSymptom, PageTypeHubCity, PageTypeBrandCity:
		return true
	}
	return false
}

// Page is a generated landing page as persisted in the page store.
type Page struct {
	ID              string              `db:"id" json:"id"`
	PageType        PageType            `db:"page_type" json:"page_type"`
	Slug            string              `db:"slug" json:"slug"`
	Title           string              `db:"title" json:"title"`
	H1Title         string              `db:"h1_title" json:"h1_title"`
	MetaDescription string              `db:"meta_description" json:"meta_description"`
	Content         dbtypes.JSON        `db:"content" json:"content"`
	SchemaOrg       dbtypes.JSON        `db:"schema_org" json:"schema_org"`
	InternalLinks   dbtypes.StringSlice `db:"internal_links" json:"internal_links"`
	RepairersCount  int                 `db:"repairers_count" json:"repairers_count"`
	AverageRating   *float64            `db:"average_rating" json:"average_rating,omitempty"`
	IsPublished     bool                `db:"is_published" json:"is_published"`
	IsIndexed       bool                `db:"is_indexed" json:"is_indexed"`
	GeneratedAt     time.Time           `db:"generated_at" json:"generated_at"`
	UpdatedAt       time.Time           `db:"updated_at" json:"updated_at"`
}

// Provider is a verified repairer as read from the provider directory.
type Provider struct {
	ID          string              `db:"id" json:"id"`
	Name        string              `db:"name" json:"name"`
	City        string              `db:"city" json:"city"`
	PostalCode  string              `db:"postal_code" json:"postal_code"`
	Rating      *float64            `db:"rating" json:"rating,omitempty"`
	Specialties dbtypes.StringSlice `db:"specialties" json:"specialties"`
	Services    dbtypes.StringSlice `db:"services" json:"services"`
	UpdatedAt   time.Time           `db:"updated_at" json:"updated_at"`
}

// Tags returns specialties followed by services.
func (p *Provider) Tags() []string {
	out := make([]string, 0, len(p.Specialties)+len(p.Services))
	out = append(out, p.Specialties...)
	return append(out, p.Services...)
}

// BlogPost is the minimal projection of a published blog article used by the sitemap.
type BlogPost struct {
	Slug      string    `db:"slug" json:"slug"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// FAQEntry is one question/answer pair of a symptom page.
type FAQEntry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// ModelCityContent is the body of a model_city page.
type ModelCityContent struct {
	Intro          string   `json:"intro"`
	Model          string   `json:"model"`
	Brand          string   `json:"brand"`
	City           string   `json:"city"`
	PostalCode     string   `json:"postalCode,omitempty"`
	RepairersCount int      `json:"repairersCount"`
	RepairerIDs    []string `json:"repairerIds"`
	CommonRepairs  []string `json:"commonRepairs"`
	Benefits       []string `json:"benefits"`
}

// SymptomContent is the body of a symptom page.
type SymptomContent struct {
	Symptom         string     `json:"symptom"`
	Category        string     `json:"category"`
	City            string     `json:"city,omitempty"`
	Description     string     `json:"description"`
	Solutions       []string   `json:"solutions"`
	RelatedSymptoms []string   `json:"relatedSymptoms"`
	DiagnosticSteps []string   `json:"diagnosticSteps"`
	FAQ             []FAQEntry `json:"faq"`
}

// HubCityContent is the body of a hub_city page.
type HubCityContent struct {
	City           string   `json:"city"`
	Department     string   `json:"department"`
	Region         string   `json:"region"`
	PostalCodes    []string `json:"postalCodes"`
	RepairersCount int      `json:"repairersCount"`
	TopRepairerIDs []string `json:"topRepairerIds"`
	PopularBrands  []string `json:"popularBrands"`
	PopularModels  []string `json:"popularModels"`
	Services       []string `json:"services"`
	NearbyAreas    []string `json:"nearbyAreas"`
}

// BrandCityContent is the body of a brand_city page.
type BrandCityContent struct {
	Brand          string   `json:"brand"`
	City           string   `json:"city"`
	RepairersCount int      `json:"repairersCount"`
	Models         []string `json:"models"`
	Services       []string `json:"services"`
	WhyChooseUs    []string `json:"whyChooseUs"`
}

// PageResult is the outcome of generating a single page within a batch.
type PageResult struct {
	PageType PageType `json:"page_type"`
	Slug     string   `json:"slug"`
	ID       string   `json:"id,omitempty"`
	Success  bool     `json:"success"`
	Error    string   `json:"error,omitempty"`
}

// GenerationSummary aggregates the page results of one batch.
type GenerationSummary struct {
	City    string       `json:"city,omitempty"`
	Total   int          `json:"total"`
	Success int          `json:"success"`
	Failed  int          `json:"failed"`
	Results []PageResult `json:"results"`
	Error   string       `json:"error,omitempty"`
}

// Add appends r and updates the counters.
func (s *GenerationSummary) Add(r PageResult) {
	s.Results = append(s.Results, r)
	s.Total++
	if r.Success {
		s.Success++
	} else {
		s.Failed++
	}
}
