package genres

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/shishobooks/catalog/pkg/aggregate"
	"github.com/shishobooks/catalog/pkg/binder"
	"github.com/shishobooks/catalog/pkg/errcodes"
	"github.com/shishobooks/catalog/pkg/models"
	"github.com/shishobooks/catalog/pkg/validation"
)

type handler struct {
	genreService *Service
}

func (h *handler) list(c echo.Context) error {
	genres, err := h.genreService.ListGenres(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.Render(http.StatusOK, "genre_list", echo.Map{
		"title":  "Genre List",
		"genres": genres,
	}))
}

func (h *handler) retrieve(c echo.Context) error {
	genre, books, err := h.genreWithBooks(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}
	if genre == nil {
		return errcodes.NotFound("Genre")
	}

	return errors.WithStack(c.Render(http.StatusOK, "genre_detail", echo.Map{
		"title":       "Genre Detail",
		"genre":       genre,
		"genre_books": books,
	}))
}

func (h *handler) createForm(c echo.Context) error {
	return h.renderForm(c, "Create Genre", nil, nil)
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	params := GenrePayload{}
	result, err := binder.BindForm(c, &params)
	if err != nil {
		return errors.WithStack(err)
	}

	genre := &models.Genre{Name: params.Name}
	if !result.IsEmpty() {
		return h.renderForm(c, "Create Genre", genre, result)
	}

	// A genre with this name already exists, so show it instead of making a
	// duplicate.
	existing, err := h.genreService.RetrieveGenre(ctx, RetrieveGenreOptions{Name: &params.Name})
	if err == nil {
		return errors.WithStack(c.Redirect(http.StatusFound, existing.URL()))
	}
	if !errors.Is(err, errcodes.NotFound("Genre")) {
		return errors.WithStack(err)
	}

	if err := h.genreService.CreateGenre(ctx, genre); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.Redirect(http.StatusFound, genre.URL()))
}

func (h *handler) updateForm(c echo.Context) error {
	id := c.Param("id")
	genre, err := h.genreService.RetrieveGenre(c.Request().Context(), RetrieveGenreOptions{ID: &id})
	if err != nil {
		return errors.WithStack(err)
	}

	return h.renderForm(c, "Update Genre", genre, nil)
}

func (h *handler) update(c echo.Context) error {
	params := GenrePayload{}
	result, err := binder.BindForm(c, &params)
	if err != nil {
		return errors.WithStack(err)
	}

	genre := &models.Genre{ID: models.CanonicalID(c.Param("id")), Name: params.Name}
	if !result.IsEmpty() {
		return h.renderForm(c, "Update Genre", genre, result)
	}

	if err := h.genreService.UpdateGenre(c.Request().Context(), genre); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.Redirect(http.StatusFound, genre.URL()))
}

func (h *handler) deleteForm(c echo.Context) error {
	genre, books, err := h.genreWithBooks(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}
	if genre == nil {
		return errors.WithStack(c.Redirect(http.StatusFound, "/catalog/genres"))
	}

	return h.renderDelete(c, genre, books)
}

func (h *handler) delete(c echo.Context) error {
	ctx := c.Request().Context()

	params := DeleteGenrePayload{}
	if _, err := binder.BindForm(c, &params); err != nil {
		return errors.WithStack(err)
	}

	genre, books, err := h.genreWithBooks(ctx, params.GenreID)
	if err != nil {
		return errors.WithStack(err)
	}
	if genre != nil && len(books) > 0 {
		return h.renderDelete(c, genre, books)
	}

	if err := h.genreService.DeleteGenre(ctx, params.GenreID); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.Redirect(http.StatusFound, "/catalog/genres"))
}

// genreWithBooks fetches the genre and the books filed under it together. A
// missing genre is reported as nil rather than an error.
func (h *handler) genreWithBooks(ctx context.Context, id string) (*models.Genre, []*models.Book, error) {
	results, err := aggregate.Parallel(ctx, aggregate.Tasks{
		"genre": func(ctx context.Context) (any, error) {
			genre, err := h.genreService.RetrieveGenre(ctx, RetrieveGenreOptions{ID: &id})
			if errors.Is(err, errcodes.NotFound("Genre")) {
				return (*models.Genre)(nil), nil
			}
			return genre, err
		},
		"genre_books": func(ctx context.Context) (any, error) {
			return h.genreService.GetBooks(ctx, id)
		},
	})
	if err != nil {
		return nil, nil, errors.WithStack(err)
	}

	return aggregate.Value[*models.Genre](results, "genre"), aggregate.Value[[]*models.Book](results, "genre_books"), nil
}

func (h *handler) renderForm(c echo.Context, title string, genre *models.Genre, result *validation.Result) error {
	return errors.WithStack(c.Render(http.StatusOK, "genre_form", echo.Map{
		"title":  title,
		"genre":  genre,
		"errors": result,
	}))
}

func (h *handler) renderDelete(c echo.Context, genre *models.Genre, books []*models.Book) error {
	return errors.WithStack(c.Render(http.StatusOK, "genre_delete", echo.Map{
		"title":       "Delete Genre",
		"genre":       genre,
		"genre_books": books,
	}))
}
