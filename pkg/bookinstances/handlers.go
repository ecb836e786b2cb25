package bookinstances

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/shishobooks/catalog/pkg/aggregate"
	"github.com/shishobooks/catalog/pkg/binder"
	"github.com/shishobooks/catalog/pkg/books"
	"github.com/shishobooks/catalog/pkg/errcodes"
	"github.com/shishobooks/catalog/pkg/models"
	"github.com/shishobooks/catalog/pkg/validation"
)

type handler struct {
	bookInstanceService *Service
	bookService         *books.Service
}

func (h *handler) list(c echo.Context) error {
	instances, err := h.bookInstanceService.ListBookInstances(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.Render(http.StatusOK, "bookinstance_list", echo.Map{
		"title":         "Book Instance List",
		"bookinstances": instances,
	}))
}

func (h *handler) retrieve(c echo.Context) error {
	bi, err := h.bookInstanceService.RetrieveBookInstance(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.Render(http.StatusOK, "bookinstance_detail", echo.Map{
		"title":        "Book Instance Detail",
		"bookinstance": bi,
	}))
}

func (h *handler) createForm(c echo.Context) error {
	bookList, err := h.bookService.ListBooks(c.Request().Context(), books.ListBooksOptions{})
	if err != nil {
		return errors.WithStack(err)
	}

	return h.renderForm(c, "Create BookInstance", nil, bookList, nil)
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	params := BookInstancePayload{}
	result, err := binder.BindForm(c, &params)
	if err != nil {
		return errors.WithStack(err)
	}

	bi := params.BookInstance("")
	if !result.IsEmpty() {
		bookList, err := h.bookService.ListBooks(ctx, books.ListBooksOptions{})
		if err != nil {
			return errors.WithStack(err)
		}
		return h.renderForm(c, "Create BookInstance", bi, bookList, result)
	}

	if err := h.bookInstanceService.CreateBookInstance(ctx, bi); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.Redirect(http.StatusFound, bi.URL()))
}

func (h *handler) updateForm(c echo.Context) error {
	id := c.Param("id")

	results, err := aggregate.Parallel(c.Request().Context(), aggregate.Tasks{
		"bookinstance": func(ctx context.Context) (any, error) {
			return h.bookInstanceService.RetrieveBookInstance(ctx, id)
		},
		"books": func(ctx context.Context) (any, error) {
			return h.bookService.ListBooks(ctx, books.ListBooksOptions{})
		},
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return h.renderForm(c, "Update BookInstance",
		aggregate.Value[*models.BookInstance](results, "bookinstance"),
		aggregate.Value[[]*models.Book](results, "books"),
		nil)
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()

	params := BookInstancePayload{}
	result, err := binder.BindForm(c, &params)
	if err != nil {
		return errors.WithStack(err)
	}

	bi := params.BookInstance(models.CanonicalID(c.Param("id")))
	if !result.IsEmpty() {
		bookList, err := h.bookService.ListBooks(ctx, books.ListBooksOptions{})
		if err != nil {
			return errors.WithStack(err)
		}
		return h.renderForm(c, "Update BookInstance", bi, bookList, result)
	}

	if err := h.bookInstanceService.UpdateBookInstance(ctx, bi); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.Redirect(http.StatusFound, bi.URL()))
}

func (h *handler) deleteForm(c echo.Context) error {
	bi, err := h.bookInstanceService.RetrieveBookInstance(c.Request().Context(), c.Param("id"))
	if errors.Is(err, errcodes.NotFound("Book copy")) {
		return errors.WithStack(c.Redirect(http.StatusFound, "/catalog/bookinstances"))
	}
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.Render(http.StatusOK, "bookinstance_delete", echo.Map{
		"title":        "Delete BookInstance",
		"bookinstance": bi,
	}))
}

func (h *handler) delete(c echo.Context) error {
	params := DeleteBookInstancePayload{}
	if _, err := binder.BindForm(c, &params); err != nil {
		return errors.WithStack(err)
	}

	if err := h.bookInstanceService.DeleteBookInstance(c.Request().Context(), params.BookInstanceID); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.Redirect(http.StatusFound, "/catalog/bookinstances"))
}

func (h *handler) renderForm(c echo.Context, title string, bi *models.BookInstance, bookList []*models.Book, result *validation.Result) error {
	selectedBook := ""
	selectedStatus := ""
	if bi != nil {
		selectedBook = bi.BookID
		selectedStatus = bi.Status
	}

	return errors.WithStack(c.Render(http.StatusOK, "bookinstance_form", echo.Map{
		"title":           title,
		"bookinstance":    bi,
		"books":           bookList,
		"statuses":        models.BookInstanceStatuses,
		"selected_book":   selectedBook,
		"selected_status": selectedStatus,
		"errors":          result,
	}))
}
