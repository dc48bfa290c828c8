package dashboard

import (
	"context"
	"log"
	"strconv"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// FormInput holds the submitted lookup fields.
type FormInput struct {
	Day      string `form:"giorno" validate:"required"`
	Slot     string `form:"orario" validate:"required"`
	Location string `form:"posizione" validate:"required"`
}

// Measure is a probability with its severity class.
type Measure struct {
	Label string
	Value float64
	Class string
}

// Text formats the measure as "<label>: <value>%".
func (m Measure) Text() string {
	return m.Label + ": " + strconv.FormatFloat(m.Value, 'f', -1, 64) + "%"
}

// Details is the panel shown after a successful lookup.
type Details struct {
	Day      string
	Slot     string
	Location string
	Rain     Measure
	Wind     Measure
}

// FormHandler answers the single-query lookup form.
type FormHandler struct {
	client Client
}

func NewFormHandler(client Client) *FormHandler {
	return &FormHandler{client: client}
}

// Submit performs one lookup. On any failure it logs and returns false;
// the caller shows nothing to the user in that case.
func (h *FormHandler) Submit(ctx context.Context, in FormInput) (*Details, bool) {
	if err := validate.Struct(in); err != nil {
		log.Printf("form: invalid submission: %v", err)
		return nil, false
	}

	resp, err := h.client.Probe(ctx, ProbeQuery{Day: in.Day, Slot: in.Slot, Location: in.Location})
	if err != nil {
		log.Printf("form: lookup failed for %s %s %s: %v", in.Location, in.Day, in.Slot, err)
		return nil, false
	}

	return &Details{
		Day:      resp.Day,
		Slot:     resp.Slot,
		Location: resp.Location,
		Rain:     Measure{Label: "Probabilità di pioggia", Value: resp.Rain, Class: ProbabilityClass(resp.Rain)},
		Wind:     Measure{Label: "Probabilità di vento forte", Value: resp.Wind, Class: ProbabilityClass(resp.Wind)},
	}, true
}
