package dashboard

import (
	"embed"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pages = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

// FormSlots are the choices offered by the lookup form.
var FormSlots = slotLabels

// FormPage is the data behind the lookup page.
type FormPage struct {
	Input   FormInput
	Details *Details
	Slots   [3]string
}

// WriteDashboard renders b as a full HTML page.
func WriteDashboard(w io.Writer, b Board) error {
	return pages.ExecuteTemplate(w, "dashboard.html", b)
}

// WriteForm renders the lookup page. A nil Details leaves the panel empty.
func WriteForm(w io.Writer, p FormPage) error {
	p.Slots = FormSlots
	return pages.ExecuteTemplate(w, "form.html", p)
}
