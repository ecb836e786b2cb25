package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookSetGenreIDs(t *testing.T) {
	t.Parallel()

	id := NewID()
	book := &Book{ID: "book"}
	book.SetGenreIDs([]string{id, "", "  " + id + "  ", "fiction"})

	require.Len(t, book.BookGenres, 2)
	assert.Equal(t, []string{id, "fiction"}, book.GenreIDs())
	assert.Equal(t, "book", book.BookGenres[0].BookID)
}

func TestBookGenresSkipsMissing(t *testing.T) {
	t.Parallel()

	fantasy := &Genre{ID: "1", Name: "Fantasy"}
	book := &Book{BookGenres: []*BookGenre{
		{GenreID: "1", Genre: fantasy},
		{GenreID: "2"},
	}}

	assert.Equal(t, []*Genre{fantasy}, book.Genres())
	assert.Equal(t, []string{"1", "2"}, book.GenreIDs())
}

func TestBookInstanceDueBack(t *testing.T) {
	t.Parallel()

	bi := &BookInstance{ID: "x", DueBack: time.Date(2020, time.October, 23, 22, 0, 0, 0, time.UTC)}
	assert.Equal(t, "October 23rd, 2020", bi.DueBackFormatted())
	assert.Equal(t, "2020-10-23", bi.DueBackInput())
	assert.Equal(t, "/catalog/bookinstance/x", bi.URL())

	assert.Empty(t, (&BookInstance{}).DueBackInput())
}

func TestCanonicalID(t *testing.T) {
	t.Parallel()

	id := NewID()
	upper := "{" + id + "}"

	assert.Equal(t, id, CanonicalID(upper))
	assert.True(t, SameID(id, " "+id))
	assert.True(t, SameID("ABC", "abc"))
	assert.False(t, SameID(id, NewID()))
}
