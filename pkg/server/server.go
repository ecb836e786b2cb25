package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/echo/v4/health"
	"github.com/robinjoseph08/golib/echo/v4/middleware/logger"
	"github.com/robinjoseph08/golib/echo/v4/middleware/recovery"
	"github.com/shishobooks/catalog/pkg/binder"
	"github.com/shishobooks/catalog/pkg/catalog"
	"github.com/shishobooks/catalog/pkg/config"
	"github.com/shishobooks/catalog/pkg/database"
	"github.com/shishobooks/catalog/pkg/errcodes"
	"github.com/shishobooks/catalog/pkg/views"
	"github.com/uptrace/bun"
	"golang.org/x/time/rate"
)

func New(cfg *config.Config, db *bun.DB) (*http.Server, error) {
	e := echo.New()

	b, err := binder.New()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	e.Binder = b

	r, err := views.New(cfg.PageTitle)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	e.Renderer = r
	e.JSONSerializer = &jsonSerializer{}

	e.Use(logger.Middleware())
	e.Use(recovery.Middleware())
	if cfg.DatabaseDebug {
		e.Use(queryLogging)
	}
	if cfg.ServerFormRateLimit > 0 {
		e.Use(formRateLimit(cfg))
	}

	health.RegisterRoutes(e)

	e.GET("/", func(c echo.Context) error {
		return errors.WithStack(c.Redirect(http.StatusFound, "/catalog"))
	})
	catalog.RegisterRoutesWithGroup(e.Group("/catalog"), db)

	echo.NotFoundHandler = notFoundHandler
	e.HTTPErrorHandler = errcodes.NewHandler().Handle

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
		Handler:           e,
		ReadHeaderTimeout: 3 * time.Second,
	}

	return srv, nil
}

// queryLogging logs every query a request runs.
func queryLogging(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		c.SetRequest(req.WithContext(database.WithLogging(req.Context())))
		return next(c)
	}
}

// formRateLimit throttles form submissions per client IP. Page views are
// never limited.
func formRateLimit(cfg *config.Config) echo.MiddlewareFunc {
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(cfg.ServerFormRateLimit),
		Burst:     cfg.ServerFormRateBurst,
		ExpiresIn: 3 * time.Minute,
	})
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Skipper: func(c echo.Context) bool {
			return c.Request().Method != http.MethodPost
		},
		Store: store,
	})
}

func notFoundHandler(c echo.Context) error {
	c.SetPath("/:path")
	return errcodes.NotFound("Page")
}
