// Package schemaorg builds the JSON-LD documents attached to generated pages.
// Every builder is total: absent optional facts are omitted, never emitted empty.
package schemaorg

import "github.com/nitesh/seo_engine/pkg/models"

const schemaContext = "https://schema.org"

// Object is a JSON-LD node.
type Object = map[string]any

// Rating carries the optional aggregate rating facts of a page.
type Rating struct {
	Value *float64
	Count int
}

func (r Rating) node() Object {
	if r.Value == nil || r.Count <= 0 {
		return nil
	}
	return Object{
		"@type":       "AggregateRating",
		"ratingValue": *r.Value,
		"bestRating":  5,
		"worstRating": 1,
		"reviewCount": r.Count,
	}
}

// LocalBusinessInput describes a model_city page's business node.
type LocalBusinessInput struct {
	Name        string
	Description string
	City        string
	PostalCode  string
	URL         string
	Rating      Rating
}

// LocalBusiness returns the LocalBusiness node of a model_city page.
func LocalBusiness(in LocalBusinessInput) Object {
	address := Object{
		"@type":           "PostalAddress",
		"addressLocality": in.City,
		"addressCountry":  "FR",
	}
	if in.PostalCode != "" {
		address["postalCode"] = in.PostalCode
	}
	obj := Object{
		"@context":    schemaContext,
		"@type":       "LocalBusiness",
		"name":        in.Name,
		"description": in.Description,
		"address":     address,
		"areaServed":  Object{"@type": "City", "name": in.City},
	}
	if in.URL != "" {
		obj["url"] = in.URL
	}
	if r := in.Rating.node(); r != nil {
		obj["aggregateRating"] = r
	}
	return obj
}

// FAQPage returns the FAQPage node of a symptom page, one Question per entry in order.
func FAQPage(faq []models.FAQEntry) Object {
	entities := make([]Object, 0, len(faq))
	for _, e := range faq {
		entities = append(entities, Object{
			"@type": "Question",
			"name":  e.Question,
			"acceptedAnswer": Object{
				"@type": "Answer",
				"text":  e.Answer,
			},
		})
	}
	return Object{
		"@context":   schemaContext,
		"@type":      "FAQPage",
		"mainEntity": entities,
	}
}

// CollectionPageInput describes a hub_city page.
type CollectionPageInput struct {
	Name           string
	Description    string
	City           string
	RepairersCount int
}

// CollectionPage returns the CollectionPage node of a hub_city page.
func CollectionPage(in CollectionPageInput) Object {
	return Object{
		"@context":      schemaContext,
		"@type":         "CollectionPage",
		"name":          in.Name,
		"description":   in.Description,
		"numberOfItems": in.RepairersCount,
		"about": Object{
			"@type":      "Service",
			"name":       "Réparation de smartphones",
			"areaServed": Object{"@type": "City", "name": in.City},
		},
	}
}

// ProductInput describes a brand_city page.
type ProductInput struct {
	Name        string
	Description string
	Brand       string
	OfferCount  int
	Rating      Rating
}

// Product returns the Product node of a brand_city page.
func Product(in ProductInput) Object {
	offers := Object{
		"@type":         "AggregateOffer",
		"priceCurrency": "EUR",
		"availability":  "https://schema.org/InStock",
	}
	if in.OfferCount > 0 {
		offers["offerCount"] = in.OfferCount
	}
	obj := Object{
		"@context":    schemaContext,
		"@type":       "Product",
		"name":        in.Name,
		"description": in.Description,
		"brand":       Object{"@type": "Brand", "name": in.Brand},
		"offers":      offers,
	}
	if r := in.Rating.node(); r != nil {
		obj["aggregateRating"] = r
	}
	return obj
}
