package meteo

import (
	"context"
)

// Geocoder resolves an Italian city name to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, city string) (Coordinates, error)
}

// ForecastSource returns the upstream 3-hour forecast for a point.
type ForecastSource interface {
	Forecast(ctx context.Context, at Coordinates) ([]ForecastPoint, error)
}

// Cache is the contract the in-memory analysis store must satisfy.
type Cache interface {
	SaveAnalysis(key string, a Analysis)
	Latest(key string) (Analysis, error)
}

// History persists served analyses.
type History interface {
	RecordAnalysis(ctx context.Context, rec AnalysisRecord) error
	ListAnalyses(ctx context.Context, limit int) ([]AnalysisRecord, error)
}
