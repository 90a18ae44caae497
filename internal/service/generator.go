package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nitesh/seo_engine/internal/classifier"
	"github.com/nitesh/seo_engine/internal/logger"
	"github.com/nitesh/seo_engine/internal/pages"
	"github.com/nitesh/seo_engine/internal/store"
	"github.com/nitesh/seo_engine/pkg/models"
)

const (
	brandPages      = 5
	modelPages      = 10
	topRepairers    = 10
	modelRepairers  = 5
	hubServices     = 8
	brandShareTenth = 7
	modelShareTenth = 5
)

// GenerateModelCityPage builds and persists one model_city page.
func (s *Service) GenerateModelCityPage(ctx context.Context, in pages.ModelCityInput) (store.UpsertResult, error) {
	return s.persist(ctx, pages.ModelCity(in))
}

// GenerateSymptomPage builds and persists one symptom page.
func (s *Service) GenerateSymptomPage(ctx context.Context, in pages.SymptomInput) (store.UpsertResult, error) {
	return s.persist(ctx, pages.Symptom(in))
}

// GenerateHubCityPage builds and persists one hub_city page.
func (s *Service) GenerateHubCityPage(ctx context.Context, in pages.HubCityInput) (store.UpsertResult, error) {
	return s.persist(ctx, pages.HubCity(in))
}

// GenerateBrandCityPage builds and persists one brand_city page.
func (s *Service) GenerateBrandCityPage(ctx context.Context, in pages.BrandCityInput) (store.UpsertResult, error) {
	return s.persist(ctx, pages.BrandCity(in))
}

// GenerateAllPagesForCity produces the hub page, up to 5 brand pages and up
// to 10 model pages of a city. Page failures are reported in the summary;
// only a directory failure or cancellation is returned as an error.
func (s *Service) GenerateAllPagesForCity(ctx context.Context, city string) (*models.GenerationSummary, error) {
	start := time.Now()
	log := s.log.With(logger.String("city", city))
	summary := newSummary(city)

	providers, err := s.dir.VerifiedProvidersInCity(ctx, city)
	if err != nil {
		return nil, fmt.Errorf("fetch providers for %s: %w", city, err)
	}
	if len(providers) == 0 {
		log.Info("no verified providers, nothing to generate")
		return summary, nil
	}

	ranking := s.classifier.Classify(providers)
	n := len(providers)
	avg := meanRating(ranking.AverageRating)
	rated := ratedCount(providers)
	brands := head(ranking.Brands, brandPages)
	modelNames := head(ranking.Models, modelPages)
	postalCodes := distinctPostalCodes(providers)
	services := topServices(providers, hubServices)
	department := ""
	if len(postalCodes) > 0 {
		department = pages.Department(postalCodes[0])
	}

	jobs := []func() *pages.Built{
		func() *pages.Built {
			return pages.HubCity(pages.HubCityInput{
				City:           city,
				Department:     department,
				Region:         pages.Region(department),
				PostalCodes:    postalCodes,
				RepairersCount: n,
				TopRepairerIDs: providerIDs(providers, topRepairers),
				PopularBrands:  brands,
				PopularModels:  modelNames,
				Services:       services,
				AverageRating:  avg,
			})
		},
	}
	for _, b := range brands {
		brand := b
		jobs = append(jobs, func() *pages.Built {
			return pages.BrandCity(pages.BrandCityInput{
				Brand:          brand,
				City:           city,
				RepairersCount: share(n, brandShareTenth),
				Models:         classifier.ModelsOfBrand(brand, modelNames),
				Services:       head(services, 5),
				AverageRating:  avg,
				RatingCount:    rated,
			})
		})
	}
	firstPostal := ""
	if len(postalCodes) > 0 {
		firstPostal = postalCodes[0]
	}
	for _, m := range modelNames {
		model := m
		jobs = append(jobs, func() *pages.Built {
			return pages.ModelCity(pages.ModelCityInput{
				Model:          model,
				Brand:          classifier.InferBrand(model),
				City:           city,
				PostalCode:     firstPostal,
				RepairersCount: share(n, modelShareTenth),
				RepairerIDs:    providerIDs(providers, modelRepairers),
				AverageRating:  avg,
				RatingCount:    rated,
				BrandPages:     brands,
			})
		})
	}

	for _, job := range jobs {
		if err := ctx.Err(); err != nil {
			return summary, fmt.Errorf("generation for %s interrupted: %w", city, err)
		}
		summary.Add(s.run(ctx, job()))
	}

	s.metrics.ObserveCity(time.Since(start))
	log.Info("city pages generated",
		logger.Int("total", summary.Total),
		logger.Int("success", summary.Success),
		logger.Int("failed", summary.Failed),
		logger.Duration("elapsed", time.Since(start)))
	return summary, nil
}

// GenerateStandardSymptomPages regenerates the fixed symptom catalogue.
func (s *Service) GenerateStandardSymptomPages(ctx context.Context) (*models.GenerationSummary, error) {
	summary := newSummary("")
	for _, in := range pages.StandardSymptoms() {
		if err := ctx.Err(); err != nil {
			return summary, fmt.Errorf("symptom generation interrupted: %w", err)
		}
		summary.Add(s.run(ctx, pages.Symptom(in)))
	}
	s.log.Info("symptom pages generated",
		logger.Int("total", summary.Total),
		logger.Int("success", summary.Success),
		logger.Int("failed", summary.Failed))
	return summary, nil
}

// GenerateCities runs GenerateAllPagesForCity for every city with at most
// workers cities in flight. A city whose directory read fails gets a summary
// carrying the error; cancellation stops scheduling further cities.
func (s *Service) GenerateCities(ctx context.Context, cities []string, workers int) ([]*models.GenerationSummary, error) {
	if workers <= 0 {
		workers = 1
	}
	out := make([]*models.GenerationSummary, len(cities))
	var g errgroup.Group
	g.SetLimit(workers)

	for i, city := range cities {
		if ctx.Err() != nil {
			break
		}
		i, city := i, city
		g.Go(func() error {
			summary, err := s.GenerateAllPagesForCity(ctx, city)
			if summary == nil {
				summary = newSummary(city)
			}
			if err != nil {
				summary.Error = err.Error()
				s.log.Error("city generation failed", logger.String("city", city), logger.Error(err))
			}
			out[i] = summary
			return nil
		})
	}
	_ = g.Wait()

	done := out[:0]
	for _, summary := range out {
		if summary != nil {
			done = append(done, summary)
		}
	}
	return done, ctx.Err()
}

func (s *Service) run(ctx context.Context, b *pages.Built) models.PageResult {
	res, err := s.persist(ctx, b)
	s.metrics.ObservePage(string(b.PageType), err == nil)
	if err != nil {
		s.log.Warn("page generation failed",
			logger.String("slug", b.Slug),
			logger.String("page_type", string(b.PageType)),
			logger.Error(err))
		return models.PageResult{PageType: b.PageType, Slug: b.Slug, Success: false, Error: errString(err)}
	}
	return models.PageResult{PageType: b.PageType, Slug: b.Slug, ID: res.ID, Success: true}
}

// persist encodes and upserts a built page, retrying once on transient store errors.
func (s *Service) persist(ctx context.Context, b *pages.Built) (store.UpsertResult, error) {
	page, err := b.Page()
	if err != nil {
		return store.UpsertResult{}, err
	}
	var res store.UpsertResult
	for attempt := 1; attempt <= pageAttempts; attempt++ {
		res, err = s.repo.Upsert(ctx, page)
		if err == nil || errors.Is(err, store.ErrPageTypeConflict) || ctx.Err() != nil {
			break
		}
	}
	if err != nil {
		return store.UpsertResult{}, err
	}
	s.invalidate(ctx, page.Slug)
	return res, nil
}

// share scales the city provider count to tenths, floored, never below one.
func share(total, tenths int) int {
	v := total * tenths / 10
	if v < 1 {
		return 1
	}
	return v
}

func meanRating(avg float64) *float64 {
	if avg <= 0 {
		return nil
	}
	return &avg
}

func ratedCount(providers []*models.Provider) int {
	n := 0
	for _, p := range providers {
		if p.Rating != nil {
			n++
		}
	}
	return n
}

func head(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func providerIDs(providers []*models.Provider, n int) []string {
	out := make([]string, 0, n)
	for _, p := range providers {
		if len(out) == n {
			break
		}
		out = append(out, p.ID)
	}
	return out
}

func distinctPostalCodes(providers []*models.Provider) []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, p := range providers {
		if p.PostalCode == "" {
			continue
		}
		if _, ok := seen[p.PostalCode]; ok {
			continue
		}
		seen[p.PostalCode] = struct{}{}
		out = append(out, p.PostalCode)
	}
	sort.Strings(out)
	return out
}

// topServices returns the most offered services, ties in first-seen order.
func topServices(providers []*models.Provider, n int) []string {
	counts := map[string]int{}
	order := []string{}
	for _, p := range providers {
		for _, svc := range p.Services {
			if _, ok := counts[svc]; !ok {
				order = append(order, svc)
			}
			counts[svc]++
		}
	}
	sort.SliceStable(order, func(i, j int) bool { return counts[order[i]] > counts[order[j]] })
	return head(order, n)
}
