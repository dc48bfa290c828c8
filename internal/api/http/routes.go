package httpapi

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/meteosandra/market-weather/internal/meteo"
)

var validate = validator.New()

// ErrorHandler renders every failure as {"detail": "..."}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	detail := "Errore interno del server."

	var me *meteo.Error
	var fe *fiber.Error
	switch {
	case errors.As(err, &me):
		code, detail = me.Status, me.Detail
	case errors.As(err, &fe):
		code, detail = fe.Code, fe.Message
	default:
		log.Printf("ERROR: unhandled error on %s %s: %v", c.Method(), c.Path(), err)
	}

	return c.Status(code).JSON(fiber.Map{"detail": detail})
}

// RegisterRoutes wires the weather API handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *meteo.Service) {
	app.Post("/meteo", func(c *fiber.Ctx) error {
		var req analyzeRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "JSON non valido")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
		}

		analysis, err := service.Analyze(c.UserContext(), req.City, req.Day)
		if err != nil {
			return err
		}
		return c.JSON(analysis)
	})

	app.Get("/meteo", func(c *fiber.Ctx) error {
		var q probeQuery
		if err := c.QueryParser(&q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
		}

		probe, err := service.Probe(c.UserContext(), q.Day, q.Slot, q.Location)
		if err != nil {
			return err
		}
		return c.JSON(probe)
	})

	v1 := app.Group("/api/v1")

	v1.Get("/history", func(c *fiber.Ctx) error {
		limit := c.QueryInt("limit", 50)
		if limit <= 0 || limit > 500 {
			return fiber.NewError(fiber.StatusBadRequest, "limit must be between 1 and 500")
		}

		records, err := service.History(c.UserContext(), limit)
		if err != nil {
			log.Printf("ERROR: history lookup failed: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "failed to read history")
		}
		return c.JSON(fiber.Map{
			"count":   len(records),
			"records": records,
		})
	})
}

// analyzeRequest is the POST /meteo body.
type analyzeRequest struct {
	City string `json:"citta" validate:"required"`
	Day  string `json:"giorno" validate:"required"`
}

// probeQuery holds the GET /meteo query parameters.
type probeQuery struct {
	Day      string `query:"giorno" validate:"required"`
	Slot     string `query:"orario" validate:"required,oneof=6-8 9-11 12-14"`
	Location string `query:"posizione" validate:"required"`
}
