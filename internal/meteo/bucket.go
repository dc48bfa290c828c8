package meteo

import (
	"math"
	"slices"
	"time"
)

// windAlertMS is the speed from which wind counts towards the probe's wind share.
const windAlertMS = 5.5

// Slot is one fixed morning window.
type Slot struct {
	Key   string
	Label string
	Hours []int
}

// Slots lists the reported windows in display order.
var Slots = []Slot{
	{Key: "slot_6_8", Label: "6-8", Hours: []int{6, 7, 8}},
	{Key: "slot_9_11", Label: "9-11", Hours: []int{9, 10, 11}},
	{Key: "slot_12_14", Label: "12-14", Hours: []int{12, 13, 14}},
}

// SlotIndex returns the position of the slot with the given label, or -1.
func SlotIndex(label string) int {
	return slices.IndexFunc(Slots, func(s Slot) bool { return s.Label == label })
}

type samples struct {
	rain []float64 // percent
	wind []float64 // m/s
}

// collect groups the forecast points of date's local day into slots.
// A point joins a slot when its 3-hour floor or its own hour falls in the slot.
// Values are kept distinct within each slot.
func collect(points []ForecastPoint, date time.Time) [3]samples {
	var out [3]samples
	day := date.In(Italy).Format("2006-01-02")

	for _, p := range points {
		local := p.Time.In(Italy)
		if local.Format("2006-01-02") != day {
			continue
		}
		hour := local.Hour()
		rain := p.RainProb * 100
		for i, s := range Slots {
			if !slices.Contains(s.Hours, hour/3*3) && !slices.Contains(s.Hours, hour) {
				continue
			}
			if !slices.Contains(out[i].rain, rain) {
				out[i].rain = append(out[i].rain, rain)
			}
			if !slices.Contains(out[i].wind, p.WindSpeed) {
				out[i].wind = append(out[i].wind, p.WindSpeed)
			}
		}
	}
	return out
}

// Bucket builds the per-slot analysis for date. Empty slots average to zero.
func Bucket(points []ForecastPoint, date time.Time) Analysis {
	s := collect(points, date)
	return Analysis{
		Slot6to8:   summarize(s[0]),
		Slot9to11:  summarize(s[1]),
		Slot12to14: summarize(s[2]),
	}
}

func summarize(s samples) SlotSummary {
	rain := mean(s.rain)
	wind := mean(s.wind)
	return SlotSummary{
		RainAvg:   round1(rain),
		RainColor: RainColor(rain),
		WindAvg:   round1(wind),
		WindColor: WindColor(wind),
	}
}

// windShare is the percentage of wind samples at or above windAlertMS.
func windShare(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	n := 0
	for _, v := range values {
		if v >= windAlertMS {
			n++
		}
	}
	return round1(float64(n) / float64(len(values)) * 100)
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
