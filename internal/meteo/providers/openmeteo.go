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

// OpenMeteo is a keyless hourly ForecastSource backed by Open-Meteo.
// It does not geocode; pair it with OpenWeather for that.
type OpenMeteo struct {
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewOpenMeteo(client *http.Client) *OpenMeteo {
	return &OpenMeteo{
		baseURL: "https://api.open-meteo.com",
		httpCfg: HTTPClientConfig{
			Client:  client,
			Backoff: DefaultBackoff,
		},
		circuit: newBreaker("openmeteo"),
	}
}

// WithBaseURL points the provider at another host, e.g. a test server.
func (p *OpenMeteo) WithBaseURL(u string) *OpenMeteo {
	p.baseURL = u
	return p
}

// WithBackoff replaces the retry policy.
func (p *OpenMeteo) WithBackoff(b BackoffConfig) *OpenMeteo {
	p.httpCfg.Backoff = b
	return p
}

func (p *OpenMeteo) Name() string {
	return "openmeteo"
}

// Forecast returns hourly points for the next seven days.
// Precipitation probability is converted from percent to 0..1.
func (p *OpenMeteo) Forecast(ctx context.Context, at meteo.Coordinates) ([]meteo.ForecastPoint, error) {
	buildRequest := func(ctx context.Context) (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", strconv.FormatFloat(at.Lat, 'f', -1, 64))
		values.Set("longitude", strconv.FormatFloat(at.Lon, 'f', -1, 64))
		values.Set("hourly", "precipitation_probability,wind_speed_10m")
		values.Set("wind_speed_unit", "ms")
		values.Set("timeformat", "unixtime")
		values.Set("forecast_days", "7")
		return http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/v1/forecast?"+values.Encode(), nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", meteo.ErrForecastUnavailable, err)
	}
	defer resp.Body.Close()

	var payload struct {
		Hourly *struct {
			Time     []int64    `json:"time"`
			RainProb []*float64 `json:"precipitation_probability"`
			Wind     []*float64 `json:"wind_speed_10m"`
		} `json:"hourly"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", meteo.ErrForecastPayload, err)
	}
	if payload.Hourly == nil {
		return nil, meteo.ErrForecastMissing
	}

	h := payload.Hourly
	if len(h.RainProb) != len(h.Time) || len(h.Wind) != len(h.Time) {
		return nil, fmt.Errorf("%w: hourly series lengths differ", meteo.ErrForecastPayload)
	}

	points := make([]meteo.ForecastPoint, 0, len(h.Time))
	for i, ts := range h.Time {
		pt := meteo.ForecastPoint{Time: time.Unix(ts, 0).UTC()}
		// Open-Meteo reports gaps as null; treat them like OpenWeatherMap's missing fields.
		if h.RainProb[i] != nil {
			pt.RainProb = *h.RainProb[i] / 100
		}
		if h.Wind[i] != nil {
			pt.WindSpeed = *h.Wind[i]
		}
		points = append(points, pt)
	}
	return points, nil
}

// Split pairs a Geocoder with a separate ForecastSource.
type Split struct {
	meteo.Geocoder
	meteo.ForecastSource
}

var (
	_ meteo.ForecastSource = (*OpenMeteo)(nil)
	_ Upstream             = Split{}
)
