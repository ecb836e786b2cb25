package books

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/shishobooks/catalog/pkg/aggregate"
	"github.com/shishobooks/catalog/pkg/authors"
	"github.com/shishobooks/catalog/pkg/binder"
	"github.com/shishobooks/catalog/pkg/errcodes"
	"github.com/shishobooks/catalog/pkg/genres"
	"github.com/shishobooks/catalog/pkg/models"
	"github.com/shishobooks/catalog/pkg/validation"
)

type handler struct {
	bookService   *Service
	authorService *authors.Service
	genreService  *genres.Service
}

func (h *handler) list(c echo.Context) error {
	books, err := h.bookService.ListBooks(c.Request().Context(), ListBooksOptions{})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.Render(http.StatusOK, "book_list", echo.Map{
		"title": "Book List",
		"books": books,
	}))
}

func (h *handler) retrieve(c echo.Context) error {
	book, copies, err := h.bookWithCopies(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}
	if book == nil {
		return errcodes.NotFound("Book")
	}

	return errors.WithStack(c.Render(http.StatusOK, "book_detail", echo.Map{
		"title":          "Book Detail",
		"book":           book,
		"book_instances": copies,
	}))
}

func (h *handler) createForm(c echo.Context) error {
	results, err := aggregate.Parallel(c.Request().Context(), h.referenceTasks())
	if err != nil {
		return errors.WithStack(err)
	}

	return h.renderForm(c, "Create Book", nil, results, nil)
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	params := BookPayload{}
	result, err := binder.BindForm(c, &params)
	if err != nil {
		return errors.WithStack(err)
	}

	book := params.Book("")
	if !result.IsEmpty() {
		results, err := aggregate.Parallel(ctx, h.referenceTasks())
		if err != nil {
			return errors.WithStack(err)
		}
		return h.renderForm(c, "Create Book", book, results, result)
	}

	if err := h.bookService.CreateBook(ctx, book); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.Redirect(http.StatusFound, book.URL()))
}

func (h *handler) updateForm(c echo.Context) error {
	id := c.Param("id")

	tasks := h.referenceTasks()
	tasks["book"] = func(ctx context.Context) (any, error) {
		return h.bookService.RetrieveBook(ctx, id)
	}
	results, err := aggregate.Parallel(c.Request().Context(), tasks)
	if err != nil {
		return errors.WithStack(err)
	}

	return h.renderForm(c, "Update Book", aggregate.Value[*models.Book](results, "book"), results, nil)
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()

	params := BookPayload{}
	result, err := binder.BindForm(c, &params)
	if err != nil {
		return errors.WithStack(err)
	}

	// The id in the path is kept so the update replaces the existing record.
	book := params.Book(models.CanonicalID(c.Param("id")))
	if !result.IsEmpty() {
		results, err := aggregate.Parallel(ctx, h.referenceTasks())
		if err != nil {
			return errors.WithStack(err)
		}
		return h.renderForm(c, "Update Book", book, results, result)
	}

	if err := h.bookService.UpdateBook(ctx, book); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.Redirect(http.StatusFound, book.URL()))
}

func (h *handler) deleteForm(c echo.Context) error {
	book, copies, err := h.bookWithCopies(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}
	if book == nil {
		return errors.WithStack(c.Redirect(http.StatusFound, "/catalog/books"))
	}

	return h.renderDelete(c, book, copies)
}

func (h *handler) delete(c echo.Context) error {
	ctx := c.Request().Context()

	params := DeleteBookPayload{}
	if _, err := binder.BindForm(c, &params); err != nil {
		return errors.WithStack(err)
	}

	book, copies, err := h.bookWithCopies(ctx, params.BookID)
	if err != nil {
		return errors.WithStack(err)
	}
	if book != nil && len(copies) > 0 {
		return h.renderDelete(c, book, copies)
	}

	if err := h.bookService.DeleteBook(ctx, params.BookID); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.Redirect(http.StatusFound, "/catalog/books"))
}

// referenceTasks loads the authors and genres a book form offers.
func (h *handler) referenceTasks() aggregate.Tasks {
	return aggregate.Tasks{
		"authors": func(ctx context.Context) (any, error) {
			return h.authorService.ListAuthors(ctx)
		},
		"genres": func(ctx context.Context) (any, error) {
			return h.genreService.ListGenres(ctx)
		},
	}
}

// bookWithCopies fetches the book and its copies together. A missing book is
// reported as nil rather than an error.
func (h *handler) bookWithCopies(ctx context.Context, id string) (*models.Book, []*models.BookInstance, error) {
	results, err := aggregate.Parallel(ctx, aggregate.Tasks{
		"book": func(ctx context.Context) (any, error) {
			book, err := h.bookService.RetrieveBook(ctx, id)
			if errors.Is(err, errcodes.NotFound("Book")) {
				return (*models.Book)(nil), nil
			}
			return book, err
		},
		"book_instances": func(ctx context.Context) (any, error) {
			return h.bookService.ListCopies(ctx, id)
		},
	})
	if err != nil {
		return nil, nil, errors.WithStack(err)
	}

	return aggregate.Value[*models.Book](results, "book"), aggregate.Value[[]*models.BookInstance](results, "book_instances"), nil
}

func (h *handler) renderForm(c echo.Context, title string, book *models.Book, results aggregate.Results, result *validation.Result) error {
	genreList := aggregate.Value[[]*models.Genre](results, "genres")
	if book != nil {
		markChecked(genreList, book.GenreIDs())
	}

	return errors.WithStack(c.Render(http.StatusOK, "book_form", echo.Map{
		"title":   title,
		"book":    book,
		"authors": aggregate.Value[[]*models.Author](results, "authors"),
		"genres":  genreList,
		"errors":  result,
	}))
}

func (h *handler) renderDelete(c echo.Context, book *models.Book, copies []*models.BookInstance) error {
	return errors.WithStack(c.Render(http.StatusOK, "book_delete", echo.Map{
		"title":          "Delete Book",
		"book":           book,
		"book_instances": copies,
	}))
}

// markChecked flags every genre whose id is among ids.
func markChecked(genreList []*models.Genre, ids []string) {
	selected := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		selected[models.CanonicalID(id)] = struct{}{}
	}
	for _, g := range genreList {
		_, g.Checked = selected[models.CanonicalID(g.ID)]
	}
}
