package dashboard

import (
	"fmt"
	"strconv"

	"github.com/meteosandra/market-weather/internal/schedule"
)

var slotLabels = [3]string{"6-8", "9-11", "12-14"}

// Indicator is one colored dot.
type Indicator struct {
	ID    string
	Class string
	Title string
}

// SlotView is the rain/wind pair of one window.
type SlotView struct {
	Label string
	Rain  Indicator
	Wind  Indicator
}

// RowView is the rendered state of one schedule entry.
type RowView struct {
	ID          string
	Suffix      string
	Day         string
	DisplayName string
	Location    string
	Slots       [3]SlotView
	ErrorID     string
	Error       string
}

// NewRow builds the row for entry index with every indicator loading.
func NewRow(index int, e schedule.Entry) *RowView {
	suffix := e.Suffix(index)
	row := &RowView{
		ID:          schedule.RowID(index),
		Suffix:      suffix,
		Day:         e.Day,
		DisplayName: e.DisplayName,
		Location:    e.APILocation,
		ErrorID:     "error-" + suffix,
	}
	for i, label := range slotLabels {
		row.Slots[i] = SlotView{
			Label: label,
			Rain: Indicator{
				ID:    fmt.Sprintf("precip-%s-%s", label, suffix),
				Class: LoadingClass,
				Title: "Precipitazioni " + label,
			},
			Wind: Indicator{
				ID:    fmt.Sprintf("wind-%s-%s", label, suffix),
				Class: LoadingClass,
				Title: "Vento " + label,
			},
		}
	}
	return row
}

// Indicators returns the six indicators, rain before wind, in slot order.
func (r *RowView) Indicators() []*Indicator {
	out := make([]*Indicator, 0, 2*len(r.Slots))
	for i := range r.Slots {
		out = append(out, &r.Slots[i].Rain, &r.Slots[i].Wind)
	}
	return out
}

// ApplySuccess recolors every present slot and sets all six tooltips.
// Absent slots keep their loading class.
func (r *RowView) ApplySuccess(resp MeteoResponse) {
	for i, slot := range resp.Slots() {
		v := &r.Slots[i]
		var rainAvg, windAvg *float64
		if slot != nil {
			v.Rain.Class = ColorClass(slot.RainColor)
			v.Wind.Class = ColorClass(slot.WindColor)
			rainAvg, windAvg = slot.RainAvg, slot.WindAvg
		}
		v.Rain.Title = fmt.Sprintf("Precipitazioni %s: %s%%", v.Label, formatAvg(rainAvg))
		v.Wind.Title = fmt.Sprintf("Vento %s: %s m/s", v.Label, formatAvg(windAvg))
	}
}

// ApplyFailure shows the error text and grays out every indicator,
// overriding anything already applied.
func (r *RowView) ApplyFailure(err error) {
	r.Error = "Errore: " + ErrorMessage(err)
	for _, ind := range r.Indicators() {
		ind.Class = ErrorClass
	}
}

func formatAvg(v *float64) string {
	if v == nil {
		return "N/D"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
