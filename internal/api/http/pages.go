package httpapi

import (
	"bytes"

	"github.com/gofiber/fiber/v2"

	"github.com/meteosandra/market-weather/internal/dashboard"
	"github.com/meteosandra/market-weather/internal/schedule"
)

// RegisterPages wires the dashboard and the lookup form.
func RegisterPages(app *fiber.App, renderer *dashboard.Renderer, form *dashboard.FormHandler, entries []schedule.Entry) {
	app.Get("/", func(c *fiber.Ctx) error {
		board := renderer.Render(c.UserContext(), entries)

		var buf bytes.Buffer
		if err := dashboard.WriteDashboard(&buf, board); err != nil {
			return err
		}
		c.Type("html", "utf-8")
		return c.Send(buf.Bytes())
	})

	app.Get("/previsione", func(c *fiber.Ctx) error {
		return sendForm(c, dashboard.FormPage{})
	})

	app.Post("/previsione", func(c *fiber.Ctx) error {
		var in dashboard.FormInput
		if err := c.BodyParser(&in); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "modulo non valido")
		}

		// A failed lookup is only logged; the panel stays empty.
		details, _ := form.Submit(c.UserContext(), in)
		return sendForm(c, dashboard.FormPage{Input: in, Details: details})
	})
}

func sendForm(c *fiber.Ctx, p dashboard.FormPage) error {
	var buf bytes.Buffer
	if err := dashboard.WriteForm(&buf, p); err != nil {
		return err
	}
	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}
