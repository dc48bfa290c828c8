package meteo

import "time"

// Color is a severity key returned to clients.
type Color string

const (
	ColorGreen  Color = "verde"
	ColorYellow Color = "giallo"
	ColorOrange Color = "arancio"
	ColorRed    Color = "rosso"
)

// Coordinates is a geocoded point.
type Coordinates struct {
	Lat float64
	Lon float64
}

// ForecastPoint is one 3-hour step of an upstream forecast.
type ForecastPoint struct {
	Time      time.Time
	RainProb  float64 // probability of precipitation, 0..1
	WindSpeed float64 // m/s
}

// SlotSummary is the aggregated view of one time window.
type SlotSummary struct {
	RainAvg   float64 `json:"pioggia_avg"`
	RainColor Color   `json:"pioggia_colore"`
	WindAvg   float64 `json:"vento_avg"`
	WindColor Color   `json:"vento_colore"`
}

// Analysis is the POST /meteo response body.
type Analysis struct {
	Slot6to8   SlotSummary `json:"slot_6_8"`
	Slot9to11  SlotSummary `json:"slot_9_11"`
	Slot12to14 SlotSummary `json:"slot_12_14"`
}

// Probe is the GET /meteo response body.
type Probe struct {
	Day      string  `json:"giorno"`
	Slot     string  `json:"orario"`
	Location string  `json:"posizione"`
	Rain     float64 `json:"pioggia"`
	Wind     float64 `json:"vento"`
}

// AnalysisRecord is a served analysis as kept in history.
type AnalysisRecord struct {
	ID        string    `json:"id"`
	City      string    `json:"citta"`
	Day       string    `json:"giorno"`
	Date      string    `json:"data"`
	Analysis  Analysis  `json:"risultato"`
	CreatedAt time.Time `json:"creato_il"`
}
