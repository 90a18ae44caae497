package schemaorg_test

import (
	"encoding/json"
	"testing"

	"github.com/nitesh/seo_engine/internal/schemaorg"
	"github.com/nitesh/seo_engine/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func TestLocalBusiness_OmitsRatingWhenAbsent(t *testing.T) {
	obj := schemaorg.LocalBusiness(schemaorg.LocalBusinessInput{
		Name:        "Réparation iPhone 15 à Lyon",
		Description: "desc",
		City:        "Lyon",
		Rating:      schemaorg.Rating{Count: 12},
	})

	_, has := obj["aggregateRating"]
	assert.False(t, has)
	assert.Equal(t, "LocalBusiness", obj["@type"])
	assert.Equal(t, "Lyon", obj["address"].(schemaorg.Object)["addressLocality"])
	assert.Equal(t, "Lyon", obj["areaServed"].(schemaorg.Object)["name"])
	_, hasPostal := obj["address"].(schemaorg.Object)["postalCode"]
	assert.False(t, hasPostal)
}

func TestLocalBusiness_IncludesRating(t *testing.T) {
	obj := schemaorg.LocalBusiness(schemaorg.LocalBusinessInput{
		Name:       "n",
		City:       "Lyon",
		PostalCode: "69001",
		Rating:     schemaorg.Rating{Value: ptr(4.5), Count: 6},
	})

	rating, ok := obj["aggregateRating"].(schemaorg.Object)
	require.True(t, ok)
	assert.Equal(t, 4.5, rating["ratingValue"])
	assert.Equal(t, 5, rating["bestRating"])
	assert.Equal(t, 1, rating["worstRating"])
	assert.Equal(t, 6, rating["reviewCount"])
	assert.Equal(t, "69001", obj["address"].(schemaorg.Object)["postalCode"])
}

func TestLocalBusiness_RatingWithoutCountIsOmitted(t *testing.T) {
	obj := schemaorg.LocalBusiness(schemaorg.LocalBusinessInput{City: "Lyon", Rating: schemaorg.Rating{Value: ptr(4)}})
	_, has := obj["aggregateRating"]
	assert.False(t, has)
}

func TestFAQPage_PreservesOrder(t *testing.T) {
	obj := schemaorg.FAQPage([]models.FAQEntry{
		{Question: "Q1", Answer: "A1"},
		{Question: "Q2", Answer: "A2"},
	})

	b, err := json.Marshal(obj)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"@context": "https://schema.org",
		"@type": "FAQPage",
		"mainEntity": [
			{"@type": "Question", "name": "Q1", "acceptedAnswer": {"@type": "Answer", "text": "A1"}},
			{"@type": "Question", "name": "Q2", "acceptedAnswer": {"@type": "Answer", "text": "A2"}}
		]
	}`, string(b))
}

func TestFAQPage_EmptyIsEmptyList(t *testing.T) {
	b, err := json.Marshal(schemaorg.FAQPage(nil))
	require.NoError(t, err)
	assert.Contains(t, string(b), `"mainEntity":[]`)
}

func TestCollectionPage(t *testing.T) {
	obj := schemaorg.CollectionPage(schemaorg.CollectionPageInput{Name: "n", City: "Lyon", RepairersCount: 12})

	assert.Equal(t, 12, obj["numberOfItems"])
	about := obj["about"].(schemaorg.Object)
	assert.Equal(t, "Lyon", about["areaServed"].(schemaorg.Object)["name"])
}

func TestProduct(t *testing.T) {
	obj := schemaorg.Product(schemaorg.ProductInput{Name: "n", Brand: "Apple", OfferCount: 8})

	assert.Equal(t, "Apple", obj["brand"].(schemaorg.Object)["name"])
	offers := obj["offers"].(schemaorg.Object)
	assert.Equal(t, "AggregateOffer", offers["@type"])
	assert.Equal(t, "EUR", offers["priceCurrency"])
	assert.Equal(t, "https://schema.org/InStock", offers["availability"])
	_, has := obj["aggregateRating"]
	assert.False(t, has)

	withRating := schemaorg.Product(schemaorg.ProductInput{Brand: "Apple", Rating: schemaorg.Rating{Value: ptr(4.2), Count: 8}})
	assert.Contains(t, withRating, "aggregateRating")
}
