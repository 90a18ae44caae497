// Package scheduler runs the periodic regeneration of city and symptom pages.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/nitesh/seo_engine/internal/logger"
	"github.com/nitesh/seo_engine/pkg/models"
)

const defaultRunTimeout = time.Hour

// Generator is the part of the service the scheduled job drives.
type Generator interface {
	GenerateCities(ctx context.Context, cities []string, workers int) ([]*models.GenerationSummary, error)
	GenerateStandardSymptomPages(ctx context.Context) (*models.GenerationSummary, error)
}

// Scheduler triggers one regeneration run per cron tick. Overlapping ticks
// are skipped while a run is still in progress.
type Scheduler struct {
	cron       *cron.Cron
	parser     cron.Parser
	gen        Generator
	cities     []string
	workers    int
	runTimeout time.Duration
	log        logger.Logger

	ctx    context.Context
	cancel context.CancelFunc
}

func New(gen Generator, cities []string, workers int, log logger.Logger) *Scheduler {
	if log == nil {
		log = logger.NewNop()
	}
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	c := cron.New(
		cron.WithParser(parser),
		cron.WithChain(cron.Recover(cron.DefaultLogger), cron.SkipIfStillRunning(cron.DefaultLogger)),
	)
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron:       c,
		parser:     parser,
		gen:        gen,
		cities:     append([]string(nil), cities...),
		workers:    workers,
		runTimeout: defaultRunTimeout,
		log:        log,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// WithRunTimeout bounds the duration of a single run.
func (s *Scheduler) WithRunTimeout(d time.Duration) *Scheduler {
	if d > 0 {
		s.runTimeout = d
	}
	return s
}

// Start registers the job under spec (five-field cron or @descriptor) and
// starts the cron loop.
func (s *Scheduler) Start(spec string) error {
	if spec == "" {
		return errors.New("empty schedule")
	}
	if _, err := s.parser.Parse(spec); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", spec, err)
	}
	if _, err := s.cron.AddFunc(spec, func() {
		if err := s.RunOnce(s.ctx); err != nil {
			s.log.Error("scheduled generation failed", logger.Error(err))
		}
	}); err != nil {
		return fmt.Errorf("schedule generation: %w", err)
	}
	s.cron.Start()
	s.log.Info("generation scheduled", logger.String("schedule", spec), logger.Strings("cities", s.cities))
	return nil
}

// Stop cancels an in-flight run and waits for it to return.
func (s *Scheduler) Stop() {
	s.cancel()
	<-s.cron.Stop().Done()
}

// RunOnce regenerates every configured city, then the symptom catalogue.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.runTimeout)
	defer cancel()
	start := time.Now()

	if len(s.cities) > 0 {
		summaries, err := s.gen.GenerateCities(ctx, s.cities, s.workers)
		if err != nil {
			return fmt.Errorf("generate cities: %w", err)
		}
		failed := 0
		for _, sum := range summaries {
			failed += sum.Failed
			if sum.Error != "" {
				failed++
			}
		}
		s.log.Info("scheduled city generation done",
			logger.Int("cities", len(summaries)),
			logger.Int("failed", failed))
	}

	if _, err := s.gen.GenerateStandardSymptomPages(ctx); err != nil {
		return fmt.Errorf("generate symptoms: %w", err)
	}
	s.log.Info("scheduled generation finished", logger.Duration("elapsed", time.Since(start)))
	return nil
}
