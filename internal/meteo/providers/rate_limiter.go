package providers

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/meteosandra/market-weather/internal/meteo"
)

// Upstream is a provider that both geocodes and forecasts.
type Upstream interface {
	meteo.Geocoder
	meteo.ForecastSource
}

// RateLimited wraps an Upstream so that all its calls share one limiter.
// OpenWeatherMap's free tier allows 60 calls/minute.
type RateLimited struct {
	upstream Upstream
	limiter  *rate.Limiter
}

// NewRateLimited creates a limiter allowing rps requests per second with the given burst.
func NewRateLimited(upstream Upstream, rps float64, burst int) *RateLimited {
	return &RateLimited{
		upstream: upstream,
		limiter:  rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// Geocode waits for a token, then forwards.
func (r *RateLimited) Geocode(ctx context.Context, city string) (meteo.Coordinates, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return meteo.Coordinates{}, fmt.Errorf("%w: rate limit wait canceled: %v", meteo.ErrGeocodeUnavailable, err)
	}
	return r.upstream.Geocode(ctx, city)
}

// Forecast waits for a token, then forwards.
func (r *RateLimited) Forecast(ctx context.Context, at meteo.Coordinates) ([]meteo.ForecastPoint, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limit wait canceled: %v", meteo.ErrForecastUnavailable, err)
	}
	return r.upstream.Forecast(ctx, at)
}

var _ Upstream = (*RateLimited)(nil)
