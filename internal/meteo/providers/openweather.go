package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/meteosandra/market-weather/internal/meteo"
	"github.com/sony/gobreaker"
)

// OpenWeather geocodes Italian cities and fetches 5-day/3-hour forecasts
// from OpenWeatherMap.
type OpenWeather struct {
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig
	geo     *gobreaker.CircuitBreaker
	weather *gobreaker.CircuitBreaker
}

func NewOpenWeather(client *http.Client, apiKey string) *OpenWeather {
	return &OpenWeather{
		apiKey:  apiKey,
		baseURL: "http://api.openweathermap.org",
		httpCfg: HTTPClientConfig{
			Client:  client,
			Backoff: DefaultBackoff,
		},
		geo:     newBreaker("openweather-geo"),
		weather: newBreaker("openweather-forecast"),
	}
}

// WithBaseURL points the provider at another host, e.g. a test server.
func (p *OpenWeather) WithBaseURL(u string) *OpenWeather {
	p.baseURL = u
	return p
}

// WithBackoff replaces the retry policy.
func (p *OpenWeather) WithBackoff(b BackoffConfig) *OpenWeather {
	p.httpCfg.Backoff = b
	return p
}

func (p *OpenWeather) Name() string {
	return "openweathermap"
}

// Geocode resolves city (restricted to Italy) to coordinates.
func (p *OpenWeather) Geocode(ctx context.Context, city string) (meteo.Coordinates, error) {
	if p.apiKey == "" {
		return meteo.Coordinates{}, fmt.Errorf("%w: openweather api key is not configured", meteo.ErrGeocodeUnavailable)
	}

	buildRequest := func(ctx context.Context) (*http.Request, error) {
		values := url.Values{}
		values.Set("q", city+",IT")
		values.Set("limit", "1")
		values.Set("appid", p.apiKey)
		return http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/geo/1.0/direct?"+values.Encode(), nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.geo, buildRequest)
	if err != nil {
		return meteo.Coordinates{}, fmt.Errorf("%w: %v", meteo.ErrGeocodeUnavailable, err)
	}
	defer resp.Body.Close()

	var payload []struct {
		Lat *float64 `json:"lat"`
		Lon *float64 `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return meteo.Coordinates{}, fmt.Errorf("%w: %v", meteo.ErrGeocodePayload, err)
	}
	if len(payload) == 0 {
		return meteo.Coordinates{}, fmt.Errorf("%w: %s", meteo.ErrLocationNotFound, city)
	}
	if payload[0].Lat == nil || payload[0].Lon == nil {
		return meteo.Coordinates{}, fmt.Errorf("%w: missing lat/lon for %s", meteo.ErrGeocodePayload, city)
	}

	return meteo.Coordinates{Lat: *payload[0].Lat, Lon: *payload[0].Lon}, nil
}

// Forecast returns every 3-hour step of the 5-day forecast at the given point.
func (p *OpenWeather) Forecast(ctx context.Context, at meteo.Coordinates) ([]meteo.ForecastPoint, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("%w: openweather api key is not configured", meteo.ErrForecastUnavailable)
	}

	buildRequest := func(ctx context.Context) (*http.Request, error) {
		values := url.Values{}
		values.Set("lat", strconv.FormatFloat(at.Lat, 'f', -1, 64))
		values.Set("lon", strconv.FormatFloat(at.Lon, 'f', -1, 64))
		values.Set("appid", p.apiKey)
		values.Set("units", "metric")
		values.Set("lang", "it")
		return http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/data/2.5/forecast?"+values.Encode(), nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.weather, buildRequest)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", meteo.ErrForecastUnavailable, err)
	}
	defer resp.Body.Close()

	var payload struct {
		List *[]struct {
			Dt   *int64  `json:"dt"`
			Pop  float64 `json:"pop"`
			Wind struct {
				Speed float64 `json:"speed"`
			} `json:"wind"`
		} `json:"list"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", meteo.ErrForecastPayload, err)
	}
	if payload.List == nil {
		return nil, meteo.ErrForecastMissing
	}

	points := make([]meteo.ForecastPoint, 0, len(*payload.List))
	for _, item := range *payload.List {
		if item.Dt == nil {
			return nil, fmt.Errorf("%w: forecast entry without dt", meteo.ErrForecastPayload)
		}
		points = append(points, meteo.ForecastPoint{
			Time:      time.Unix(*item.Dt, 0).UTC(),
			RainProb:  item.Pop,
			WindSpeed: item.Wind.Speed,
		})
	}
	return points, nil
}

var (
	_ meteo.Geocoder       = (*OpenWeather)(nil)
	_ meteo.ForecastSource = (*OpenWeather)(nil)
)
