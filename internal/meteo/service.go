package meteo

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"
)

// Service answers weather queries for a city and weekday.
type Service struct {
	geocoder  Geocoder
	forecasts ForecastSource
	cache     Cache
	history   History

	now func() time.Time
}

// NewService creates a new Service. cache and history may be nil.
func NewService(geocoder Geocoder, forecasts ForecastSource, cache Cache, history History) *Service {
	return &Service{
		geocoder:  geocoder,
		forecasts: forecasts,
		cache:     cache,
		history:   history,
		now:       time.Now,
	}
}

// WithClock overrides the clock used to resolve weekdays to dates.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Analyze returns the per-slot rain and wind summary for the next
// occurrence of day at city. Failures are *Error values.
func (s *Service) Analyze(ctx context.Context, city, day string) (Analysis, error) {
	weekday, err := ParseWeekday(day)
	if err != nil {
		return Analysis{}, err
	}
	date := TargetDate(s.now(), weekday)
	key := cacheKey(city, date)

	if s.cache != nil {
		if a, err := s.cache.Latest(key); err == nil {
			log.Printf("DEBUG: analysis cache hit for %s", key)
			return a, nil
		}
	}

	points, err := s.points(ctx, city)
	if err != nil {
		return Analysis{}, err
	}

	analysis := Bucket(points, date)

	if s.cache != nil {
		s.cache.SaveAnalysis(key, analysis)
	}
	if s.history != nil {
		rec := AnalysisRecord{
			City:      city,
			Day:       day,
			Date:      date.Format("2006-01-02"),
			Analysis:  analysis,
			CreatedAt: s.now().UTC(),
		}
		if err := s.history.RecordAnalysis(ctx, rec); err != nil {
			log.Printf("warning: failed to record analysis for %s: %v", key, err)
		}
	}

	return analysis, nil
}

// Probe returns the rain probability and strong-wind share for one slot.
func (s *Service) Probe(ctx context.Context, day, slot, city string) (Probe, error) {
	weekday, err := ParseWeekday(day)
	if err != nil {
		return Probe{}, err
	}
	idx := SlotIndex(slot)
	if idx < 0 {
		return Probe{}, newError(http.StatusBadRequest, "Fascia oraria non valida.")
	}
	date := TargetDate(s.now(), weekday)

	points, err := s.points(ctx, city)
	if err != nil {
		return Probe{}, err
	}

	samples := collect(points, date)[idx]
	return Probe{
		Day:      day,
		Slot:     slot,
		Location: city,
		Rain:     round1(mean(samples.rain)),
		Wind:     windShare(samples.wind),
	}, nil
}

// History returns the most recent served analyses, newest first.
func (s *Service) History(ctx context.Context, limit int) ([]AnalysisRecord, error) {
	if s.history == nil {
		return []AnalysisRecord{}, nil
	}
	return s.history.ListAnalyses(ctx, limit)
}

func (s *Service) points(ctx context.Context, city string) ([]ForecastPoint, error) {
	coords, err := s.geocoder.Geocode(ctx, city)
	if err != nil {
		log.Printf("ERROR: geocoding failed for %s: %v", city, err)
		return nil, classify(err, city)
	}

	points, err := s.forecasts.Forecast(ctx, coords)
	if err != nil {
		log.Printf("ERROR: forecast failed for %s: %v", city, err)
		return nil, classify(err, city)
	}
	return points, nil
}

func cacheKey(city string, date time.Time) string {
	return strings.ToLower(strings.TrimSpace(city)) + "|" + date.Format("2006-01-02")
}
