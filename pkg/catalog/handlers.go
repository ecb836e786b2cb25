package catalog

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/echo/v4/middleware/logger"
	"github.com/shishobooks/catalog/pkg/aggregate"
	"github.com/shishobooks/catalog/pkg/authors"
	"github.com/shishobooks/catalog/pkg/bookinstances"
	"github.com/shishobooks/catalog/pkg/books"
	"github.com/shishobooks/catalog/pkg/genres"
	"github.com/shishobooks/catalog/pkg/models"
)

type handler struct {
	bookService         *books.Service
	bookInstanceService *bookinstances.Service
	authorService       *authors.Service
	genreService        *genres.Service
}

// index shows how many of each record the catalog holds. A failing count is
// shown on the page instead of failing the request.
func (h *handler) index(c echo.Context) error {
	available := models.BookInstanceStatusAvailable

	results, err := aggregate.Parallel(c.Request().Context(), aggregate.Tasks{
		"book_count": func(ctx context.Context) (any, error) {
			return h.bookService.CountBooks(ctx)
		},
		"book_instance_count": func(ctx context.Context) (any, error) {
			return h.bookInstanceService.CountBookInstances(ctx, bookinstances.CountBookInstancesOptions{})
		},
		"book_instance_available_count": func(ctx context.Context) (any, error) {
			return h.bookInstanceService.CountBookInstances(ctx, bookinstances.CountBookInstancesOptions{Status: &available})
		},
		"author_count": func(ctx context.Context) (any, error) {
			return h.authorService.CountAuthors(ctx)
		},
		"genre_count": func(ctx context.Context) (any, error) {
			return h.genreService.CountGenres(ctx)
		},
	})

	data := echo.Map{"title": "Local Library Home"}
	if err != nil {
		logger.FromEchoContext(c).Err(err).Error("unable to count catalog records")
		data["error"] = err.Error()
	} else {
		for key, value := range results {
			data[key] = value
		}
	}

	return errors.WithStack(c.Render(http.StatusOK, "index", data))
}
