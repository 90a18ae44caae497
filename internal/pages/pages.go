// Package pages assembles the landing-page records of the four archetypes
// from input facts. Builders are pure: identical input yields byte-identical output.
package pages

import (
	"fmt"
	"strings"
	"unicode/utf8"

	dbtypes "github.com/nitesh/seo_engine/internal/db"
	"github.com/nitesh/seo_engine/internal/schemaorg"
	"github.com/nitesh/seo_engine/pkg/models"
)

const (
	metaDescriptionMax = 160

	// SmartphoneHub is the generic repair landing page every model page links to.
	SmartphoneHub = "reparation-smartphone"
)

// Built is the output of a page builder, ready to be persisted.
type Built struct {
	PageType        models.PageType
	Slug            string
	Title           string
	H1Title         string
	MetaDescription string
	Content         any
	SchemaOrg       schemaorg.Object
	InternalLinks   []string
	RepairersCount  int
	AverageRating   *float64
}

// Page encodes b as a storable page record. Publication flags are left false.
func (b *Built) Page() (*models.Page, error) {
	content, err := dbtypes.MarshalDocument(b.Content)
	if err != nil {
		return nil, fmt.Errorf("encode content of %s: %w", b.Slug, err)
	}
	schema, err := dbtypes.MarshalDocument(b.SchemaOrg)
	if err != nil {
		return nil, fmt.Errorf("encode schema.org of %s: %w", b.Slug, err)
	}
	return &models.Page{
		PageType:        b.PageType,
		Slug:            b.Slug,
		Title:           b.Title,
		H1Title:         b.H1Title,
		MetaDescription: b.MetaDescription,
		Content:         content,
		SchemaOrg:       schema,
		InternalLinks:   dbtypes.StringSlice(orEmpty(b.InternalLinks)),
		RepairersCount:  b.RepairersCount,
		AverageRating:   b.AverageRating,
	}, nil
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// links drops empty entries and duplicates, keeping first occurrence order.
func links(in ...string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, l := range in {
		if l == "" {
			continue
		}
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	return out
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	r := []rune(s)
	return string(r[:max-1]) + "…"
}

func ratingOf(avg *float64, count int) schemaorg.Rating {
	if avg == nil || *avg <= 0 {
		return schemaorg.Rating{}
	}
	return schemaorg.Rating{Value: avg, Count: count}
}

func containsFold(list []string, v string) bool {
	for _, s := range list {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
