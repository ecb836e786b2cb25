package catalog

import (
	"context"
	"net/http"
	"testing"

	"github.com/shishobooks/catalog/pkg/models"
	"github.com/shishobooks/catalog/pkg/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndex_EmptyCatalog(t *testing.T) {
	t.Parallel()
	db := testutils.NewDB(t)
	e := testutils.NewEcho(t)
	RegisterRoutesWithGroup(e.Group("/catalog"), db)

	rec := testutils.Get(t, e, "/catalog")
	require.Equal(t, http.StatusOK, rec.Code)

	page := testutils.ParsePage(t, rec.Body.String())
	for _, id := range []string{"book_count", "book_instance_count", "book_instance_available_count", "author_count", "genre_count"} {
		assert.Equal(t, "0", page.Text(id), id)
	}
}

func TestIndex_Counts(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := testutils.NewDB(t)
	e := testutils.NewEcho(t)
	RegisterRoutesWithGroup(e.Group("/catalog"), db)

	author := &models.Author{ID: models.NewID(), FirstName: "Patrick", FamilyName: "Rothfuss"}
	book := &models.Book{ID: models.NewID(), Title: "t", AuthorID: author.ID, Summary: "s", ISBN: "i"}
	_, err := db.NewInsert().Model(author).Exec(ctx)
	require.NoError(t, err)
	_, err = db.NewInsert().Model(book).Exec(ctx)
	require.NoError(t, err)
	for _, status := range []string{models.BookInstanceStatusAvailable, models.BookInstanceStatusLoaned, models.BookInstanceStatusAvailable} {
		_, err = db.NewInsert().Model(&models.BookInstance{ID: models.NewID(), BookID: book.ID, Imprint: "i", Status: status}).Exec(ctx)
		require.NoError(t, err)
	}

	rec := testutils.Get(t, e, "/catalog/")
	require.Equal(t, http.StatusOK, rec.Code)

	page := testutils.ParsePage(t, rec.Body.String())
	assert.Equal(t, "1", page.Text("book_count"))
	assert.Equal(t, "3", page.Text("book_instance_count"))
	assert.Equal(t, "2", page.Text("book_instance_available_count"))
	assert.Equal(t, "1", page.Text("author_count"))
	assert.Equal(t, "0", page.Text("genre_count"))
}

func TestIndex_StoreErrorIsShown(t *testing.T) {
	t.Parallel()
	db := testutils.NewDB(t)
	e := testutils.NewEcho(t)
	RegisterRoutesWithGroup(e.Group("/catalog"), db)
	require.NoError(t, db.Close())

	rec := testutils.Get(t, e, "/catalog")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Error:")
	assert.Nil(t, testutils.ParsePage(t, rec.Body.String()).ByID("book_count"))
}

func TestRoutes_MountsResources(t *testing.T) {
	t.Parallel()
	db := testutils.NewDB(t)
	e := testutils.NewEcho(t)
	RegisterRoutesWithGroup(e.Group("/catalog"), db)

	for _, path := range []string{"/catalog/books", "/catalog/bookinstances", "/catalog/authors", "/catalog/genres"} {
		rec := testutils.Get(t, e, path)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}
