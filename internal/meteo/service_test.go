package meteo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"
)

type fakeUpstream struct {
	geoErr      error
	forecastErr error
	points      []ForecastPoint
	geoCalls    int
}

func (f *fakeUpstream) Geocode(_ context.Context, _ string) (Coordinates, error) {
	f.geoCalls++
	if f.geoErr != nil {
		return Coordinates{}, f.geoErr
	}
	return Coordinates{Lat: 45.49, Lon: 12.24}, nil
}

func (f *fakeUpstream) Forecast(_ context.Context, _ Coordinates) ([]ForecastPoint, error) {
	if f.forecastErr != nil {
		return nil, f.forecastErr
	}
	return f.points, nil
}

type mapCache map[string]Analysis

func (m mapCache) SaveAnalysis(key string, a Analysis) { m[key] = a }

func (m mapCache) Latest(key string) (Analysis, error) {
	a, ok := m[key]
	if !ok {
		return Analysis{}, errors.New("miss")
	}
	return a, nil
}

type sliceHistory struct {
	recs []AnalysisRecord
}

func (h *sliceHistory) RecordAnalysis(_ context.Context, rec AnalysisRecord) error {
	h.recs = append(h.recs, rec)
	return nil
}

func (h *sliceHistory) ListAnalyses(_ context.Context, _ int) ([]AnalysisRecord, error) {
	return h.recs, nil
}

// Monday 1 January 2024, 10:00 in Rome.
func fixedNow() time.Time {
	return time.Date(2024, time.January, 1, 10, 0, 0, 0, Italy)
}

func TestParseWeekday(t *testing.T) {
	for name, want := range map[string]int{"Lunedì": 0, "mercoledì": 2, " DOMENICA ": 6} {
		got, err := ParseWeekday(name)
		if err != nil || got != want {
			t.Errorf("ParseWeekday(%q) = %d, %v; want %d", name, got, err, want)
		}
	}

	_, err := ParseWeekday("Funday")
	var me *Error
	if !errors.As(err, &me) || me.Status != http.StatusBadRequest {
		t.Fatalf("expected 400 error, got %v", err)
	}
}

func TestTargetDateIncludesToday(t *testing.T) {
	now := fixedNow()
	if got := TargetDate(now, 0).Format("2006-01-02"); got != "2024-01-01" {
		t.Fatalf("monday: got %s", got)
	}
	if got := TargetDate(now, 2).Format("2006-01-02"); got != "2024-01-03" {
		t.Fatalf("wednesday: got %s", got)
	}
	if got := TargetDate(now, 6).Format("2006-01-02"); got != "2024-01-07" {
		t.Fatalf("sunday: got %s", got)
	}
}

func TestAnalyzeUsesCacheAndHistory(t *testing.T) {
	up := &fakeUpstream{points: []ForecastPoint{
		{Time: time.Date(2024, time.January, 3, 9, 0, 0, 0, Italy), RainProb: 0.6, WindSpeed: 1},
	}}
	cache := mapCache{}
	hist := &sliceHistory{}
	svc := NewService(up, up, cache, hist).WithClock(fixedNow)

	first, err := svc.Analyze(context.Background(), "Mestre", "Mercoledì")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Slot9to11.RainAvg != 60 || first.Slot9to11.RainColor != ColorOrange {
		t.Fatalf("unexpected slot: %+v", first.Slot9to11)
	}

	second, err := svc.Analyze(context.Background(), "mestre", "mercoledì")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second != first {
		t.Fatalf("expected cached analysis")
	}
	if up.geoCalls != 1 {
		t.Fatalf("expected one upstream call, got %d", up.geoCalls)
	}
	if len(hist.recs) != 1 || hist.recs[0].Date != "2024-01-03" {
		t.Fatalf("unexpected history: %+v", hist.recs)
	}
}

func TestAnalyzeMapsProviderErrors(t *testing.T) {
	cases := []struct {
		name   string
		up     *fakeUpstream
		status int
		detail string
	}{
		{"not found", &fakeUpstream{geoErr: fmt.Errorf("x: %w", ErrLocationNotFound)}, http.StatusNotFound, "Città 'Atlantide' non trovata."},
		{"geo down", &fakeUpstream{geoErr: ErrGeocodeUnavailable}, http.StatusServiceUnavailable, "Servizio di geocodifica non disponibile."},
		{"geo payload", &fakeUpstream{geoErr: ErrGeocodePayload}, http.StatusInternalServerError, "Errore nell'elaborazione dati geocoding."},
		{"forecast down", &fakeUpstream{forecastErr: ErrForecastUnavailable}, http.StatusServiceUnavailable, "Servizio meteo non disponibile."},
		{"forecast missing", &fakeUpstream{forecastErr: ErrForecastMissing}, http.StatusInternalServerError, "Risposta API meteo non valida."},
		{"forecast payload", &fakeUpstream{forecastErr: ErrForecastPayload}, http.StatusInternalServerError, "Errore nell'elaborazione dati meteo."},
		{"other", &fakeUpstream{forecastErr: errors.New("boom")}, http.StatusInternalServerError, "Errore interno del server."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewService(tc.up, tc.up, nil, nil).WithClock(fixedNow)
			_, err := svc.Analyze(context.Background(), "Atlantide", "Lunedì")
			var me *Error
			if !errors.As(err, &me) {
				t.Fatalf("expected *Error, got %v", err)
			}
			if me.Status != tc.status || me.Detail != tc.detail {
				t.Fatalf("got %d %q, want %d %q", me.Status, me.Detail, tc.status, tc.detail)
			}
		})
	}
}

func TestAnalyzeRejectsBadDayBeforeUpstream(t *testing.T) {
	up := &fakeUpstream{}
	svc := NewService(up, up, nil, nil).WithClock(fixedNow)
	if _, err := svc.Analyze(context.Background(), "Mestre", "Someday"); err == nil {
		t.Fatal("expected error")
	}
	if up.geoCalls != 0 {
		t.Fatalf("expected no upstream call, got %d", up.geoCalls)
	}
}

func TestProbe(t *testing.T) {
	up := &fakeUpstream{points: []ForecastPoint{
		{Time: time.Date(2024, time.January, 1, 12, 0, 0, 0, Italy), RainProb: 0.3, WindSpeed: 6},
		{Time: time.Date(2024, time.January, 1, 13, 0, 0, 0, Italy), RainProb: 0.5, WindSpeed: 2},
	}}
	svc := NewService(up, up, nil, nil).WithClock(fixedNow)

	p, err := svc.Probe(context.Background(), "Lunedì", "12-14", "Mirano")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Probe{Day: "Lunedì", Slot: "12-14", Location: "Mirano", Rain: 40, Wind: 50}
	if p != want {
		t.Fatalf("got %+v, want %+v", p, want)
	}

	_, err = svc.Probe(context.Background(), "Lunedì", "20-22", "Mirano")
	var me *Error
	if !errors.As(err, &me) || me.Status != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown slot, got %v", err)
	}
}

func TestHistoryWithoutStore(t *testing.T) {
	svc := NewService(&fakeUpstream{}, &fakeUpstream{}, nil, nil)
	recs, err := svc.History(context.Background(), 10)
	if err != nil || len(recs) != 0 {
		t.Fatalf("expected empty history, got %v %v", recs, err)
	}
}
