package meteo

import (
	"net/http"
	"strings"
	"time"
	_ "time/tzdata"
)

var weekdays = []string{"lunedì", "martedì", "mercoledì", "giovedì", "venerdì", "sabato", "domenica"}

// Italy is the timezone forecasts are bucketed in.
var Italy = mustLoadLocation("Europe/Rome")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

// ParseWeekday maps an Italian day name to 0 (Monday) .. 6 (Sunday).
func ParseWeekday(name string) (int, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, d := range weekdays {
		if d == n {
			return i, nil
		}
	}
	return 0, newError(http.StatusBadRequest, "Nome del giorno non valido.")
}

// TargetDate returns the next date, today included, falling on weekday
// (Monday = 0) in the Italian timezone.
func TargetDate(now time.Time, weekday int) time.Time {
	today := now.In(Italy)
	current := (int(today.Weekday()) + 6) % 7
	offset := (weekday - current + 7) % 7
	return today.AddDate(0, 0, offset)
}
