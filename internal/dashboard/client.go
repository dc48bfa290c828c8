package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// MeteoRequest is the POST /meteo body.
type MeteoRequest struct {
	City string `json:"citta"`
	Day  string `json:"giorno"`
}

// SlotResult is one time window as the API reports it. Averages may be absent.
type SlotResult struct {
	RainColor string   `json:"pioggia_colore"`
	WindColor string   `json:"vento_colore"`
	RainAvg   *float64 `json:"pioggia_avg,omitempty"`
	WindAvg   *float64 `json:"vento_avg,omitempty"`
}

// MeteoResponse is the POST /meteo success body. Any slot may be absent.
type MeteoResponse struct {
	Slot6to8   *SlotResult `json:"slot_6_8,omitempty"`
	Slot9to11  *SlotResult `json:"slot_9_11,omitempty"`
	Slot12to14 *SlotResult `json:"slot_12_14,omitempty"`
}

// Slots returns the windows in display order.
func (r MeteoResponse) Slots() [3]*SlotResult {
	return [3]*SlotResult{r.Slot6to8, r.Slot9to11, r.Slot12to14}
}

// ProbeQuery holds the GET /meteo query parameters.
type ProbeQuery struct {
	Day      string
	Slot     string
	Location string
}

// ProbeResponse is the GET /meteo success body.
type ProbeResponse struct {
	Day      string  `json:"giorno"`
	Slot     string  `json:"orario"`
	Location string  `json:"posizione"`
	Rain     float64 `json:"pioggia"`
	Wind     float64 `json:"vento"`
}

// Client talks to the weather API.
type Client interface {
	Meteo(ctx context.Context, req MeteoRequest) (MeteoResponse, error)
	Probe(ctx context.Context, q ProbeQuery) (ProbeResponse, error)
}

// APIError is a non-2xx answer. Detail is empty when the body carried none.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("Errore HTTP %d", e.Status)
}

// ErrorMessage is the human-readable text shown for a failed row.
func ErrorMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	if err == nil || err.Error() == "" {
		return "Impossibile caricare i dati"
	}
	return err.Error()
}

// HTTPClient is the Client over plain HTTP. It neither retries nor sets a
// timeout of its own; callers bound requests through ctx.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

func NewHTTPClient(baseURL string, client *http.Client) *HTTPClient {
	if client == nil {
		client = &http.Client{}
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    client,
	}
}

func (c *HTTPClient) Meteo(ctx context.Context, req MeteoRequest) (MeteoResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return MeteoResponse{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/meteo", bytes.NewReader(body))
	if err != nil {
		return MeteoResponse{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	var out MeteoResponse
	err = c.do(httpReq, &out)
	return out, err
}

func (c *HTTPClient) Probe(ctx context.Context, q ProbeQuery) (ProbeResponse, error) {
	values := url.Values{}
	values.Set("giorno", q.Day)
	values.Set("orario", q.Slot)
	values.Set("posizione", q.Location)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/meteo?"+values.Encode(), nil)
	if err != nil {
		return ProbeResponse{}, err
	}
	httpReq.Header.Set("Accept", "application/json")

	var out ProbeResponse
	err = c.do(httpReq, &out)
	return out, err
}

func (c *HTTPClient) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var payload struct {
			Detail string `json:"detail"`
		}
		// An unreadable body leaves Detail empty and the status is reported instead.
		_ = json.NewDecoder(resp.Body).Decode(&payload)
		return &APIError{Status: resp.StatusCode, Detail: payload.Detail}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("risposta non valida: %w", err)
	}
	return nil
}

var _ Client = (*HTTPClient)(nil)
