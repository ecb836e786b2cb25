package bookinstances

import (
	"context"
	"testing"
	"time"

	"github.com/shishobooks/catalog/pkg/errcodes"
	"github.com/shishobooks/catalog/pkg/models"
	"github.com/shishobooks/catalog/pkg/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

func insertBook(t *testing.T, db *bun.DB, title string) *models.Book {
	t.Helper()

	book := &models.Book{ID: models.NewID(), Title: title, AuthorID: models.NewID(), Summary: "s", ISBN: "i"}
	_, err := db.NewInsert().Model(book).Exec(context.Background())
	require.NoError(t, err)
	return book
}

func TestService_CreateBookInstance_Defaults(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := testutils.NewDB(t)
	svc := NewService(db)
	book := insertBook(t, db, "The Name of the Wind")

	before := time.Now().Add(-time.Second)
	bi := &models.BookInstance{BookID: book.ID, Imprint: "Gollancz, 2011"}
	require.NoError(t, svc.CreateBookInstance(ctx, bi))

	found, err := svc.RetrieveBookInstance(ctx, bi.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookInstanceStatusMaintenance, found.Status)
	assert.True(t, found.DueBack.After(before))
	require.NotNil(t, found.Book)
	assert.Equal(t, "The Name of the Wind", found.Book.Title)
}

func TestService_RetrieveBookInstance_NotFound(t *testing.T) {
	t.Parallel()
	svc := NewService(testutils.NewDB(t))

	_, err := svc.RetrieveBookInstance(context.Background(), models.NewID())
	assert.ErrorIs(t, err, errcodes.NotFound("Book copy"))
}

func TestService_CountBookInstances(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := testutils.NewDB(t)
	svc := NewService(db)
	book := insertBook(t, db, "t")

	for _, status := range []string{
		models.BookInstanceStatusAvailable,
		models.BookInstanceStatusAvailable,
		models.BookInstanceStatusLoaned,
	} {
		require.NoError(t, svc.CreateBookInstance(ctx, &models.BookInstance{BookID: book.ID, Imprint: "i", Status: status}))
	}

	total, err := svc.CountBookInstances(ctx, CountBookInstancesOptions{})
	require.NoError(t, err)
	assert.Equal(t, 3, total)

	available := models.BookInstanceStatusAvailable
	count, err := svc.CountBookInstances(ctx, CountBookInstancesOptions{Status: &available})
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestService_UpdateAndDeleteBookInstance(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := testutils.NewDB(t)
	svc := NewService(db)
	book := insertBook(t, db, "t")

	bi := &models.BookInstance{BookID: book.ID, Imprint: "first", Status: models.BookInstanceStatusLoaned}
	require.NoError(t, svc.CreateBookInstance(ctx, bi))

	due := time.Date(2030, time.January, 2, 0, 0, 0, 0, time.UTC)
	require.NoError(t, svc.UpdateBookInstance(ctx, &models.BookInstance{
		ID: bi.ID, BookID: book.ID, Imprint: "second", Status: models.BookInstanceStatusAvailable, DueBack: due,
	}))

	found, err := svc.RetrieveBookInstance(ctx, bi.ID)
	require.NoError(t, err)
	assert.Equal(t, "second", found.Imprint)
	assert.Equal(t, models.BookInstanceStatusAvailable, found.Status)
	assert.Equal(t, "2030-01-02", found.DueBackInput())

	err = svc.UpdateBookInstance(ctx, &models.BookInstance{ID: models.NewID(), BookID: book.ID, Imprint: "x"})
	assert.ErrorIs(t, err, errcodes.NotFound("Book copy"))

	require.NoError(t, svc.DeleteBookInstance(ctx, bi.ID))
	_, err = svc.RetrieveBookInstance(ctx, bi.ID)
	assert.ErrorIs(t, err, errcodes.NotFound("Book copy"))
}

func TestService_ListBookInstances(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := testutils.NewDB(t)
	svc := NewService(db)
	book := insertBook(t, db, "t")

	later := time.Now().Add(48 * time.Hour)
	require.NoError(t, svc.CreateBookInstance(ctx, &models.BookInstance{BookID: book.ID, Imprint: "later", DueBack: later}))
	require.NoError(t, svc.CreateBookInstance(ctx, &models.BookInstance{BookID: book.ID, Imprint: "sooner"}))

	instances, err := svc.ListBookInstances(ctx)
	require.NoError(t, err)
	require.Len(t, instances, 2)
	assert.Equal(t, "sooner", instances[0].Imprint)
	require.NotNil(t, instances[0].Book)
	assert.Equal(t, "t", instances[0].Book.Title)
}
