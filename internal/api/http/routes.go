package httpapi

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/i474232898/sunset-scout/internal/runner"
	"github.com/i474232898/sunset-scout/internal/scout"
	"github.com/i474232898/sunset-scout/internal/store"
	"github.com/i474232898/sunset-scout/internal/weather"
)

var validate = validator.New()

// Runner triggers a scouting run.
type Runner interface {
	Run(ctx context.Context) (scout.Report, error)
}

// ReportReader exposes stored reports.
type ReportReader interface {
	Latest() (scout.Report, error)
	List() []scout.Report
}

// Deps are the services behind the HTTP API.
type Deps struct {
	Runner   Runner
	Reports  ReportReader
	Scorer   *scout.Scorer
	Location *time.Location
	// Registry backs /metrics when set.
	Registry *prometheus.Registry
	// Now defaults to time.Now.
	Now func() time.Time
}

// ErrorHandler renders every error as {"error": true, "message": ...}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": err.Error(),
	})
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, d Deps) {
	if d.Location == nil {
		d.Location = time.Local
	}
	if d.Now == nil {
		d.Now = time.Now
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "sunset-scout",
		})
	})

	if d.Registry != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{})))
	}

	v1 := app.Group("/api/v1")

	v1.Get("/report/latest", func(c *fiber.Ctx) error {
		r, err := latest(d.Reports)
		if err != nil {
			return err
		}
		return c.JSON(r)
	})

	v1.Get("/report/latest/text", func(c *fiber.Ctx) error {
		r, err := latest(d.Reports)
		if err != nil {
			return err
		}
		c.Type("txt", "utf-8")
		return c.SendString(r.Text)
	})

	v1.Get("/report/history", func(c *fiber.Ctx) error {
		var q historyQuery
		if err := bindQuery(c, &q); err != nil {
			return err
		}
		reports := d.Reports.List()
		if q.Limit > 0 && len(reports) > q.Limit {
			reports = reports[:q.Limit]
		}
		return c.JSON(fiber.Map{
			"count":   len(reports),
			"reports": reports,
		})
	})

	v1.Post("/report/run", func(c *fiber.Ctx) error {
		r, err := d.Runner.Run(c.UserContext())
		if err != nil {
			if errors.Is(err, runner.ErrWeatherUnavailable) {
				return fiber.NewError(fiber.StatusServiceUnavailable, "weather data unavailable")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "scouting run failed")
		}
		return c.Status(fiber.StatusCreated).JSON(r)
	})

	v1.Get("/score", func(c *fiber.Ctx) error {
		var q scoreQuery
		if err := bindQuery(c, &q); err != nil {
			return err
		}
		obs := q.observation()
		sunset := d.Now().In(d.Location)
		a, err := d.Scorer.Score(&obs, nil, sunset)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(a)
	})

	v1.Get("/transit", func(c *fiber.Ctx) error {
		var q transitQuery
		if err := bindQuery(c, &q); err != nil {
			return err
		}
		loc, ok := d.Scorer.Locations().ByKey(q.Location)
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "unknown location "+q.Location)
		}
		clock, err := time.Parse("15:04", q.Sunset)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "sunset must be HH:MM")
		}
		today := d.Now().In(d.Location)
		sunset := time.Date(today.Year(), today.Month(), today.Day(), clock.Hour(), clock.Minute(), 0, 0, d.Location)
		return c.JSON(scout.PlanTransit(sunset, loc))
	})
}

func latest(reports ReportReader) (scout.Report, error) {
	r, err := reports.Latest()
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return r, fiber.NewError(fiber.StatusNotFound, "no sunset report yet")
		}
		return r, fiber.NewError(fiber.StatusInternalServerError, "failed to read reports")
	}
	return r, nil
}

func bindQuery(c *fiber.Ctx, out any) error {
	if err := c.QueryParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := validate.Struct(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return nil
}

// historyQuery holds query parameters for the history endpoint.
type historyQuery struct {
	Limit int `query:"limit" validate:"omitempty,gte=1,lte=100"`
}

// scoreQuery holds query parameters for ad-hoc scoring. Missing optional
// fields take the same defaults as a provider reading with gaps.
type scoreQuery struct {
	Cloud      *int   `query:"cloud" validate:"required,gte=0,lte=100"`
	Humidity   *int   `query:"humidity" validate:"required,gte=0,lte=100"`
	Visibility *int   `query:"visibility" validate:"omitempty,gte=0"`
	Condition  string `query:"condition" validate:"omitempty,alpha,max=32"`
}

func (q scoreQuery) observation() weather.Observation {
	obs := weather.Observation{
		CloudCover: *q.Cloud,
		Humidity:   *q.Humidity,
		Visibility: weather.DefaultVisibility,
		Condition:  weather.DefaultCondition,
	}
	if q.Visibility != nil {
		obs.Visibility = *q.Visibility
	}
	if q.Condition != "" {
		obs.Condition = weather.Condition(cases.Title(language.English).String(strings.ToLower(q.Condition)))
	}
	return obs
}

// transitQuery holds query parameters for the transit endpoint.
type transitQuery struct {
	Location string `query:"location" validate:"required"`
	Sunset   string `query:"sunset" validate:"required,datetime=15:04"`
}
