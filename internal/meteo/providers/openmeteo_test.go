package providers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/meteosandra/market-weather/internal/meteo"
)

func TestOpenMeteoForecast(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if r.URL.Path != "/v1/forecast" || q.Get("wind_speed_unit") != "ms" || q.Get("timeformat") != "unixtime" {
			t.Errorf("unexpected request %s", r.URL.String())
		}
		w.Write([]byte(`{"hourly":{"time":[1704085200,1704088800],"precipitation_probability":[40,null],"wind_speed_10m":[3.5,null]}}`))
	}))
	defer srv.Close()

	p := NewOpenMeteo(srv.Client()).WithBaseURL(srv.URL).WithBackoff(fastBackoff)
	points, err := p.Forecast(context.Background(), meteo.Coordinates{Lat: 45.5, Lon: 12.2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}
	if points[0].RainProb != 0.4 || points[0].WindSpeed != 3.5 {
		t.Fatalf("unexpected first point %+v", points[0])
	}
	if points[1].RainProb != 0 || points[1].WindSpeed != 0 {
		t.Fatalf("nulls should read as zero, got %+v", points[1])
	}
}

func TestOpenMeteoMismatchedSeries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"hourly":{"time":[1,2],"precipitation_probability":[1],"wind_speed_10m":[1,2]}}`))
	}))
	defer srv.Close()

	p := NewOpenMeteo(srv.Client()).WithBaseURL(srv.URL).WithBackoff(fastBackoff)
	if _, err := p.Forecast(context.Background(), meteo.Coordinates{}); !errors.Is(err, meteo.ErrForecastPayload) {
		t.Fatalf("expected ErrForecastPayload, got %v", err)
	}
}

func TestOpenMeteoMissingHourly(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"latitude":45.5}`))
	}))
	defer srv.Close()

	p := NewOpenMeteo(srv.Client()).WithBaseURL(srv.URL).WithBackoff(fastBackoff)
	if _, err := p.Forecast(context.Background(), meteo.Coordinates{}); !errors.Is(err, meteo.ErrForecastMissing) {
		t.Fatalf("expected ErrForecastMissing, got %v", err)
	}
}
