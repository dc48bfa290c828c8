package dashboard

import (
	"context"
	"log"
	"time"

	"github.com/meteosandra/market-weather/internal/schedule"
)

// NoScheduleMessage replaces the loading message when there is nothing to show.
const NoScheduleMessage = "Nessuna pianificazione definita"

// Board is a rendered dashboard.
type Board struct {
	Message string
	Rows    []*RowView
}

// Renderer fills a dashboard with one weather request per schedule entry.
type Renderer struct {
	client  Client
	timeout time.Duration
}

// NewRenderer creates a Renderer. Rows whose request has not completed after
// timeout stay in the loading state; zero means wait for every row.
func NewRenderer(client Client, timeout time.Duration) *Renderer {
	return &Renderer{client: client, timeout: timeout}
}

type outcome struct {
	index int
	resp  MeteoResponse
	err   error
}

// Render builds every row, then fetches all of them concurrently. Each
// outcome is applied to its own row only, by this goroutine alone.
func (r *Renderer) Render(ctx context.Context, entries []schedule.Entry) Board {
	if len(entries) == 0 {
		return Board{Message: NoScheduleMessage}
	}

	rows := make([]*RowView, len(entries))
	for i, e := range entries {
		rows[i] = NewRow(i, e)
	}

	var cancel context.CancelFunc
	if r.timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}
	defer cancel()

	// Buffered so late requests never block after we stop collecting.
	results := make(chan outcome, len(entries))
	for i, e := range entries {
		go func(i int, e schedule.Entry) {
			resp, err := r.client.Meteo(ctx, MeteoRequest{City: e.APILocation, Day: e.Day})
			results <- outcome{index: i, resp: resp, err: err}
		}(i, e)
	}

	for pending := len(entries); pending > 0; pending-- {
		select {
		case o := <-results:
			row := rows[o.index]
			if o.err != nil {
				log.Printf("dashboard: fetch failed for %s (%s), %s: %v", row.DisplayName, row.Location, row.Day, o.err)
				row.ApplyFailure(o.err)
				continue
			}
			row.ApplySuccess(o.resp)
		case <-ctx.Done():
			log.Printf("dashboard: %d rows still loading: %v", pending, ctx.Err())
			return Board{Rows: rows}
		}
	}

	return Board{Rows: rows}
}
