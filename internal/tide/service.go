package tide

import (
	"context"
	"fmt"
	"sort"

	"cloud.google.com/go/civil"
	"github.com/bbernstein/tidecal/internal/models"
	"github.com/bbernstein/tidecal/internal/moon"
	"github.com/rs/zerolog/log"
)

const (
	defaultPeriodWindowDays = 3
	defaultWorkerCount      = 4
)

type Service struct {
	predictor        Predictor
	cache            CacheProvider
	periodWindowDays int
	workerCount      int
}

type Option func(*Service)

// WithCache enables aggregate caching
func WithCache(cache CacheProvider) Option {
	return func(s *Service) {
		s.cache = cache
	}
}

// WithPeriodWindowDays sets how many days on each side of the target date are
// computed when building a daily summary
func WithPeriodWindowDays(days int) Option {
	return func(s *Service) {
		if days >= 0 {
			s.periodWindowDays = days
		}
	}
}

// WithWorkerCount bounds the number of days computed concurrently
func WithWorkerCount(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.workerCount = n
		}
	}
}

func NewService(predictor Predictor, opts ...Option) *Service {
	s := &Service{
		predictor:        predictor,
		periodWindowDays: defaultPeriodWindowDays,
		workerCount:      defaultWorkerCount,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetTide computes the classified aggregate for a location's calendar day.
func (s *Service) GetTide(ctx context.Context, loc models.Location, date civil.Date) (*models.Tide, error) {
	if cached := s.cachedTide(ctx, loc, date); cached != nil {
		return cached, nil
	}

	result, err := s.computeTide(ctx, loc, date)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SaveTide(ctx, loc.ID, result); err != nil {
			log.Warn().Err(err).Str("location_id", loc.ID).Str("date", date.String()).Msg("Error saving tide to cache")
		}
	}

	return result, nil
}

// cachedTide returns nil on a miss or when the cache cannot be read.
func (s *Service) cachedTide(ctx context.Context, loc models.Location, date civil.Date) *models.Tide {
	if s.cache == nil {
		return nil
	}
	cached, err := s.cache.GetTide(ctx, loc.ID, date)
	if err != nil {
		log.Warn().Err(err).
			Str("location_id", loc.ID).
			Str("date", date.String()).
			Msg("Error reading tide cache")
		return nil
	}
	if cached != nil {
		log.Debug().Str("location_id", loc.ID).Str("date", date.String()).Msg("Cache HIT for tide")
	}
	return cached
}

func (s *Service) computeTide(ctx context.Context, loc models.Location, date civil.Date) (*models.Tide, error) {
	series, err := s.predictor.Predict(ctx, loc, date)
	if err != nil {
		return nil, fmt.Errorf("predicting tide heights: %w", err)
	}
	if len(series) < 3 {
		return nil, NewDataError(loc.ID, date, ErrInsufficientData)
	}

	events := ExtractEvents(series)
	if len(events) == 0 {
		return nil, NewDataError(loc.ID, date, ErrNoExtrema)
	}

	rangeCM, ok := Range(events)
	if !ok {
		log.Warn().
			Str("location_id", loc.ID).
			Str("date", date.String()).
			Int("events", len(events)).
			Msg("Missing high or low tide, using zero range")
	}

	moonAge := moon.Age(date)
	tideType, err := Classify(rangeCM, moonAge)
	if err != nil {
		return nil, fmt.Errorf("classifying tide: %w", err)
	}

	result, err := models.NewTide(date, tideType, events, FindPrimeWindow(events))
	if err != nil {
		return nil, fmt.Errorf("building tide: %w", err)
	}

	log.Debug().
		Str("location_id", loc.ID).
		Str("date", date.String()).
		Float64("range_cm", rangeCM).
		Float64("moon_age", moonAge).
		Str("tide_type", tideType.String()).
		Msg("Computed tide")

	return result, nil
}

type dayResult struct {
	date  civil.Date
	tide  *models.Tide
	fresh bool
	err   error
}

// GetDailySummary computes the target day together with its neighbours so the
// target can be placed within its tide period. Neighbour failures only shrink
// the period data; a failure on the target day is returned. Days missing from
// the cache are written back in a single batch.
func (s *Service) GetDailySummary(ctx context.Context, loc models.Location, date civil.Date) (*models.DailySummary, error) {
	dates := make([]civil.Date, 0, 2*s.periodWindowDays+1)
	for offset := -s.periodWindowDays; offset <= s.periodWindowDays; offset++ {
		dates = append(dates, date.AddDays(offset))
	}

	workerCount := s.workerCount
	if workerCount > len(dates) {
		workerCount = len(dates)
	}

	work := make(chan civil.Date, len(dates))
	results := make(chan dayResult, len(dates))

	for i := 0; i < workerCount; i++ {
		go func() {
			for d := range work {
				if err := ctx.Err(); err != nil {
					results <- dayResult{date: d, err: err}
					continue
				}
				if cached := s.cachedTide(ctx, loc, d); cached != nil {
					results <- dayResult{date: d, tide: cached}
					continue
				}
				t, err := s.computeTide(ctx, loc, d)
				results <- dayResult{date: d, tide: t, fresh: err == nil, err: err}
			}
		}()
	}

	for _, d := range dates {
		work <- d
	}
	close(work)

	var target *models.Tide
	var targetErr error
	days := make([]DayType, 0, len(dates))
	var fresh []*models.Tide

	for range dates {
		r := <-results
		if r.date == date {
			target, targetErr = r.tide, r.err
		}
		if r.err != nil {
			if r.date != date {
				log.Warn().Err(r.err).
					Str("location_id", loc.ID).
					Str("date", r.date.String()).
					Msg("Skipping neighbouring day in period analysis")
			}
			continue
		}
		days = append(days, DayType{Date: r.date, Type: r.tide.Type})
		if r.fresh {
			fresh = append(fresh, r.tide)
		}
	}

	s.saveBatch(ctx, loc, fresh)

	if targetErr != nil {
		return nil, fmt.Errorf("computing tide for %s: %w", date, targetErr)
	}

	return &models.DailySummary{
		ID:         models.SummaryID(loc.ID, date),
		LocationID: loc.ID,
		Tide:       target,
		IsMidpoint: IsMidpoint(date, days),
	}, nil
}

func (s *Service) saveBatch(ctx context.Context, loc models.Location, tides []*models.Tide) {
	if s.cache == nil || len(tides) == 0 {
		return
	}
	sort.Slice(tides, func(i, j int) bool { return tides[i].Date.Before(tides[j].Date) })
	if err := s.cache.SaveTidesBatch(ctx, loc.ID, tides); err != nil {
		log.Warn().Err(err).
			Str("location_id", loc.ID).
			Int("count", len(tides)).
			Msg("Error saving tide batch to cache")
	}
	log.Debug().Interface("stats", s.cache.GetCacheStats()).Str("location_id", loc.ID).Msg("Tide cache stats")
}
