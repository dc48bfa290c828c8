package meteo

import (
	"errors"
	"fmt"
	"net/http"
)

// Provider failure classes. Providers wrap one of these so the service can
// pick the right status for the caller.
var (
	ErrLocationNotFound    = errors.New("location not found")
	ErrGeocodeUnavailable  = errors.New("geocoding unavailable")
	ErrGeocodePayload      = errors.New("invalid geocoding payload")
	ErrForecastUnavailable = errors.New("forecast unavailable")
	ErrForecastPayload     = errors.New("invalid forecast payload")
	ErrForecastMissing     = errors.New("forecast list missing")
)

// Error is a client-facing failure with the HTTP status it maps to.
type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Detail)
}

func newError(status int, detail string) *Error {
	return &Error{Status: status, Detail: detail}
}

// classify turns a provider error into a client-facing Error.
func classify(err error, city string) *Error {
	var me *Error
	switch {
	case errors.As(err, &me):
		return me
	case errors.Is(err, ErrLocationNotFound):
		return newError(http.StatusNotFound, fmt.Sprintf("Città '%s' non trovata.", city))
	case errors.Is(err, ErrGeocodeUnavailable):
		return newError(http.StatusServiceUnavailable, "Servizio di geocodifica non disponibile.")
	case errors.Is(err, ErrGeocodePayload):
		return newError(http.StatusInternalServerError, "Errore nell'elaborazione dati geocoding.")
	case errors.Is(err, ErrForecastUnavailable):
		return newError(http.StatusServiceUnavailable, "Servizio meteo non disponibile.")
	case errors.Is(err, ErrForecastMissing):
		return newError(http.StatusInternalServerError, "Risposta API meteo non valida.")
	case errors.Is(err, ErrForecastPayload):
		return newError(http.StatusInternalServerError, "Errore nell'elaborazione dati meteo.")
	default:
		return newError(http.StatusInternalServerError, "Errore interno del server.")
	}
}
