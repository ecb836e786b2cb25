package views

import (
	"bytes"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shishobooks/catalog/pkg/models"
	"github.com/shishobooks/catalog/pkg/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := New("Local Library")
	require.NoError(t, err)
	return r
}

func TestNew_ParsesEveryView(t *testing.T) {
	t.Parallel()
	r := newRenderer(t)

	for _, name := range []string{
		"index", "error",
		"book_list", "book_detail", "book_form", "book_delete",
		"bookinstance_list", "bookinstance_detail", "bookinstance_form", "bookinstance_delete",
		"author_list", "author_detail", "author_form", "author_delete",
		"genre_list", "genre_detail", "genre_form", "genre_delete",
	} {
		assert.True(t, r.Has(name), name)
	}
	assert.False(t, r.Has("layout"))
}

func TestRender_UnknownView(t *testing.T) {
	t.Parallel()
	r := newRenderer(t)

	var buf bytes.Buffer
	err := r.Render(&buf, "missing", nil, nil)
	require.Error(t, err)
	assert.Empty(t, buf.String())
}

func TestRender_Layout(t *testing.T) {
	t.Parallel()
	r := newRenderer(t)

	var buf bytes.Buffer
	err := r.Render(&buf, "genre_list", echo.Map{"title": "Genre List", "genres": []*models.Genre{}}, nil)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "<title>Genre List | Local Library</title>")
	assert.Contains(t, buf.String(), "There are no genres.")
}

func TestRender_StoredTextIsNotEscapedTwice(t *testing.T) {
	t.Parallel()
	r := newRenderer(t)

	var buf bytes.Buffer
	book := &models.Book{ID: "b1", Title: "Tom &amp; Jerry", Summary: "s", ISBN: "i"}
	err := r.Render(&buf, "book_form", echo.Map{
		"title":   "Update Book",
		"book":    book,
		"authors": []*models.Author{},
		"genres":  []*models.Genre{},
	}, nil)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `value="Tom &amp; Jerry"`)
	assert.NotContains(t, buf.String(), "&amp;amp;")
}

func TestRender_BookFormSelections(t *testing.T) {
	t.Parallel()
	r := newRenderer(t)

	var buf bytes.Buffer
	book := &models.Book{ID: "b1", AuthorID: "A1"}
	err := r.Render(&buf, "book_form", echo.Map{
		"title": "Create Book",
		"book":  book,
		"authors": []*models.Author{
			{ID: "a1", FirstName: "Ursula", FamilyName: "Le Guin"},
			{ID: "a2", FirstName: "Frank", FamilyName: "Herbert"},
		},
		"genres": []*models.Genre{
			{ID: "g1", Name: "Fantasy", Checked: true},
			{ID: "g2", Name: "Poetry"},
		},
		"errors": &validation.Result{Failures: []validation.Failure{{Field: "title", Message: "Title must not be empty."}}},
	}, nil)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `<option value="a1" selected>`)
	assert.Contains(t, out, `<option value="a2">`)
	assert.Contains(t, out, `value="g1" checked>`)
	assert.Contains(t, out, `value="g2">`)
	assert.Contains(t, out, "<li>Title must not be empty.</li>")
}

func TestRender_ErrorView(t *testing.T) {
	t.Parallel()
	r := newRenderer(t)

	var buf bytes.Buffer
	err := r.Render(&buf, "error", struct {
		Title      string
		Message    string
		StatusCode int
	}{"Not Found", "Book not found", 404}, nil)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "<h1>Not Found</h1>")
	assert.Contains(t, buf.String(), "Book not found")
}

func TestRender_Dashboard(t *testing.T) {
	t.Parallel()
	r := newRenderer(t)

	var buf bytes.Buffer
	err := r.Render(&buf, "index", echo.Map{
		"title":                         "Local Library Home",
		"book_count":                    0,
		"book_instance_count":           0,
		"book_instance_available_count": 0,
		"author_count":                  0,
		"genre_count":                   0,
	}, nil)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `<span id="book_count">0</span>`)
	assert.NotContains(t, buf.String(), "Error:")
}

func TestRender_BookInstanceDueBack(t *testing.T) {
	t.Parallel()
	r := newRenderer(t)

	var buf bytes.Buffer
	bi := &models.BookInstance{
		ID:      "bi1",
		Imprint: "Gollancz, 2011",
		Status:  models.BookInstanceStatusLoaned,
		DueBack: time.Date(2020, time.June, 6, 0, 0, 0, 0, time.UTC),
	}
	err := r.Render(&buf, "bookinstance_detail", echo.Map{"title": "Book:", "bookinstance": bi}, nil)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "June 6th, 2020")
}
