package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/meteosandra/market-weather/internal/schedule"
)

func TestHTTPClientMeteo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/meteo" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Content-Type") != "application/json" || r.Header.Get("Accept") != "application/json" {
			t.Errorf("missing json headers: %v", r.Header)
		}
		var req MeteoRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode: %v", err)
		}
		if req.City != "Spinea" || req.Day != "Sabato" {
			t.Errorf("unexpected body %+v", req)
		}
		w.Write([]byte(`{"slot_6_8":{"pioggia_colore":"verde","vento_colore":"verde","pioggia_avg":0}}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL+"/", srv.Client())
	resp, err := c.Meteo(context.Background(), MeteoRequest{City: "Spinea", Day: "Sabato"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Slot6to8 == nil || resp.Slot6to8.RainAvg == nil || *resp.Slot6to8.RainAvg != 0 {
		t.Fatalf("unexpected slot_6_8: %+v", resp.Slot6to8)
	}
	if resp.Slot6to8.WindAvg != nil {
		t.Fatalf("expected absent vento_avg, got %v", *resp.Slot6to8.WindAvg)
	}
	if resp.Slot9to11 != nil || resp.Slot12to14 != nil {
		t.Fatalf("expected absent slots, got %+v", resp)
	}
}

func TestHTTPClientErrors(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"detail", http.StatusNotFound, `{"detail":"X"}`, "Errore: X"},
		{"unparsable body", http.StatusServiceUnavailable, `<html>bad gateway</html>`, "Errore: Errore HTTP 503"},
		{"empty body", http.StatusInternalServerError, ``, "Errore: Errore HTTP 500"},
		{"non-string detail", http.StatusUnprocessableEntity, `{"detail":[{"msg":"field required"}]}`, "Errore: Errore HTTP 422"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			r := NewRenderer(NewHTTPClient(srv.URL, srv.Client()), time.Second)
			b := r.Render(context.Background(), schedule.Default()[:1])
			row := b.Rows[0]
			if row.Error != tc.want {
				t.Fatalf("got %q, want %q", row.Error, tc.want)
			}
			for _, ind := range row.Indicators() {
				if ind.Class != ErrorClass {
					t.Fatalf("expected error class, got %q on %s", ind.Class, ind.ID)
				}
			}
		})
	}
}

func TestHTTPClientMalformedSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"slot_6_8":`))
	}))
	defer srv.Close()

	_, err := NewHTTPClient(srv.URL, srv.Client()).Meteo(context.Background(), MeteoRequest{})
	var apiErr *APIError
	if err == nil || errors.As(err, &apiErr) {
		t.Fatalf("expected a decode error, got %v", err)
	}
}

func TestHTTPClientProbe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if r.Method != http.MethodGet || q.Get("giorno") != "Lunedì" || q.Get("orario") != "9-11" || q.Get("posizione") != "Mirano" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.String())
		}
		w.Write([]byte(`{"giorno":"Lunedì","orario":"9-11","posizione":"Mirano","pioggia":35,"vento":0}`))
	}))
	defer srv.Close()

	got, err := NewHTTPClient(srv.URL, nil).Probe(context.Background(), ProbeQuery{Day: "Lunedì", Slot: "9-11", Location: "Mirano"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Rain != 35 || got.Location != "Mirano" {
		t.Fatalf("unexpected probe %+v", got)
	}
}
