// Package classifier ranks the brands and device models served in a city by
// scanning the free-text tags of its repairers against a fixed vocabulary.
package classifier

import (
	"sort"
	"strings"

	"github.com/nitesh/seo_engine/pkg/models"
)

const (
	maxBrands = 10
	maxModels = 20
	minBrands = 5
	minModels = 10
)

// Vocabulary is the static configuration the classifier matches against.
// Entries are matched case-insensitively as substrings of provider tags.
type Vocabulary struct {
	Brands        []string
	ModelPatterns []string
	DefaultBrands []string
	DefaultModels []string
}

// DefaultVocabulary returns the production vocabulary.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Brands: []string{
			"Apple", "Samsung", "Xiaomi", "Huawei", "Google", "OnePlus", "Oppo",
			"Honor", "Sony", "Nokia", "Motorola", "Realme", "Asus", "Wiko", "Fairphone",
		},
		ModelPatterns: []string{
			"iPhone 15 Pro Max", "iPhone 15 Pro", "iPhone 15", "iPhone 14 Pro", "iPhone 14",
			"iPhone 13", "iPhone 12", "iPhone 11", "iPhone SE", "iPad",
			"Galaxy S24", "Galaxy S23", "Galaxy S22", "Galaxy A54", "Galaxy A34", "Galaxy Z Flip",
			"Pixel 8", "Pixel 7", "Redmi Note 13", "Redmi Note 12", "Poco X6",
			"P30", "P40", "Mate 20", "OnePlus 12", "Xperia 10",
		},
		DefaultBrands: []string{"Apple", "Samsung", "Xiaomi", "Huawei", "Google"},
		DefaultModels: []string{
			"iPhone 15", "iPhone 14", "iPhone 13", "iPhone 12", "iPhone 11",
			"Galaxy S24", "Galaxy S23", "Galaxy A54", "Pixel 8", "Redmi Note 13",
		},
	}
}

// Result is the popularity ranking of one city.
type Result struct {
	Brands        []string
	Models        []string
	BrandCounts   map[string]int
	ModelCounts   map[string]int
	AverageRating float64
}

// Classifier aggregates tag matches over the providers of one city.
type Classifier struct {
	vocab Vocabulary
}

// New returns a classifier bound to vocab.
func New(vocab Vocabulary) *Classifier {
	return &Classifier{vocab: vocab}
}

// Classify ranks brands and models by the number of providers whose tags
// mention them. Equal counts keep vocabulary order. Short rankings are padded
// with the default lists.
func (c *Classifier) Classify(providers []*models.Provider) Result {
	brandCounts := make(map[string]int, len(c.vocab.Brands))
	modelCounts := make(map[string]int, len(c.vocab.ModelPatterns))
	var ratingSum float64

	for _, p := range providers {
		if p == nil {
			continue
		}
		if p.Rating != nil {
			ratingSum += *p.Rating
		}
		tags := lowerAll(p.Tags())
		for _, b := range c.vocab.Brands {
			if anyContains(tags, b) {
				brandCounts[b]++
			}
		}
		for _, m := range c.vocab.ModelPatterns {
			if anyContains(tags, m) {
				modelCounts[m]++
			}
		}
	}

	res := Result{
		Brands:      pad(rank(c.vocab.Brands, brandCounts, maxBrands), c.vocab.DefaultBrands, minBrands, maxBrands),
		Models:      pad(rank(c.vocab.ModelPatterns, modelCounts, maxModels), c.vocab.DefaultModels, minModels, maxModels),
		BrandCounts: brandCounts,
		ModelCounts: modelCounts,
	}
	if len(providers) > 0 {
		res.AverageRating = ratingSum / float64(len(providers))
	}
	return res
}

// rank returns the detected entries (count > 0) ordered by descending count.
func rank(vocab []string, counts map[string]int, limit int) []string {
	out := make([]string, 0, len(vocab))
	for _, v := range vocab {
		if counts[v] > 0 {
			out = append(out, v)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return counts[out[i]] > counts[out[j]]
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func pad(ranked, defaults []string, floor, limit int) []string {
	if len(ranked) >= floor {
		return ranked
	}
	seen := make(map[string]struct{}, len(ranked))
	for _, r := range ranked {
		seen[strings.ToLower(r)] = struct{}{}
	}
	for _, d := range defaults {
		if len(ranked) >= floor || len(ranked) >= limit {
			break
		}
		if _, ok := seen[strings.ToLower(d)]; ok {
			continue
		}
		seen[strings.ToLower(d)] = struct{}{}
		ranked = append(ranked, d)
	}
	return ranked
}

func lowerAll(tags []string) []string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = strings.ToLower(t)
	}
	return out
}

func anyContains(lowerTags []string, term string) bool {
	needle := strings.ToLower(term)
	for _, t := range lowerTags {
		if strings.Contains(t, needle) {
			return true
		}
	}
	return false
}
