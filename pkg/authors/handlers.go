package authors

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
	authorService *Service
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	authors, err := h.authorService.ListAuthors(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.Render(http.StatusOK, "author_list", echo.Map{
		"title":   "Author List",
		"authors": authors,
	}))
}

func (h *handler) retrieve(c echo.Context) error {
	author, books, err := h.authorWithBooks(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}
	if author == nil {
		return errcodes.NotFound("Author")
	}

	return errors.WithStack(c.Render(http.StatusOK, "author_detail", echo.Map{
		"title":        "Author Detail",
		"author":       author,
		"author_books": books,
	}))
}

func (h *handler) createForm(c echo.Context) error {
	return h.renderForm(c, http.StatusOK, "Create Author", nil, nil)
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	params := AuthorPayload{}
	result, err := binder.BindForm(c, &params)
	if err != nil {
		return errors.WithStack(err)
	}

	author := params.Author("")
	if !result.IsEmpty() {
		return h.renderForm(c, http.StatusOK, "Create Author", author, result)
	}

	if err := h.authorService.CreateAuthor(ctx, author); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.Redirect(http.StatusFound, author.URL()))
}

func (h *handler) updateForm(c echo.Context) error {
	author, err := h.authorService.RetrieveAuthor(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return h.renderForm(c, http.StatusOK, "Update Author", author, nil)
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()

	params := AuthorPayload{}
	result, err := binder.BindForm(c, &params)
	if err != nil {
		return errors.WithStack(err)
	}

	author := params.Author(models.CanonicalID(c.Param("id")))
	if !result.IsEmpty() {
		return h.renderForm(c, http.StatusOK, "Update Author", author, result)
	}

	if err := h.authorService.UpdateAuthor(ctx, author); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.Redirect(http.StatusFound, author.URL()))
}

func (h *handler) deleteForm(c echo.Context) error {
	author, books, err := h.authorWithBooks(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}
	if author == nil {
		return errors.WithStack(c.Redirect(http.StatusFound, "/catalog/authors"))
	}

	return h.renderDelete(c, author, books)
}

func (h *handler) delete(c echo.Context) error {
	ctx := c.Request().Context()

	params := DeleteAuthorPayload{}
	if _, err := binder.BindForm(c, &params); err != nil {
		return errors.WithStack(err)
	}

	author, books, err := h.authorWithBooks(ctx, params.AuthorID)
	if err != nil {
		return errors.WithStack(err)
	}
	if author != nil && len(books) > 0 {
		return h.renderDelete(c, author, books)
	}

	if err := h.authorService.DeleteAuthor(ctx, params.AuthorID); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.Redirect(http.StatusFound, "/catalog/authors"))
}

// authorWithBooks fetches the author and their books together. A missing
// author is reported as a nil author rather than an error so callers can
// decide how to respond.
func (h *handler) authorWithBooks(ctx context.Context, id string) (*models.Author, []*models.Book, error) {
	results, err := aggregate.Parallel(ctx, aggregate.Tasks{
		"author": func(ctx context.Context) (any, error) {
			author, err := h.authorService.RetrieveAuthor(ctx, id)
			if errors.Is(err, errcodes.NotFound("Author")) {
				return (*models.Author)(nil), nil
			}
			return author, err
		},
		"author_books": func(ctx context.Context) (any, error) {
			return h.authorService.GetBooks(ctx, id)
		},
	})
	if err != nil {
		return nil, nil, errors.WithStack(err)
	}

	return aggregate.Value[*models.Author](results, "author"), aggregate.Value[[]*models.Book](results, "author_books"), nil
}

func (h *handler) renderForm(c echo.Context, code int, title string, author *models.Author, result *validation.Result) error {
	return errors.WithStack(c.Render(code, "author_form", echo.Map{
		"title":  title,
		"author": author,
		"errors": result,
	}))
}

func (h *handler) renderDelete(c echo.Context, author *models.Author, books []*models.Book) error {
	return errors.WithStack(c.Render(http.StatusOK, "author_delete", echo.Map{
		"title":        "Delete Author",
		"author":       author,
		"author_books": books,
	}))
}
