package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Book struct {
	bun.BaseModel `bun:"table:books,alias:b"`

	ID         string       `bun:",pk" json:"id"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
	Title      string       `bun:",notnull" json:"title"`
	AuthorID   string       `bun:",notnull" json:"author_id"`
	Author     *Author      `bun:"rel:belongs-to,join:author_id=id" json:"author,omitempty"`
	Summary    string       `bun:",notnull" json:"summary"`
	ISBN       string       `bun:"isbn,notnull" json:"isbn"`
	BookGenres []*BookGenre `bun:"rel:has-many,join:id=book_id" json:"book_genres,omitempty"`
}

func (b *Book) URL() string {
	return "/catalog/book/" + b.ID
}

// GenreIDs returns the ids of the genres the book is filed under, in the order
// they were attached.
func (b *Book) GenreIDs() []string {
	ids := make([]string, 0, len(b.BookGenres))
	for _, bg := range b.BookGenres {
		ids = append(ids, bg.GenreID)
	}
	return ids
}

// Genres returns the populated genres of the book. Associations whose genre
// no longer exists are skipped.
func (b *Book) Genres() []*Genre {
	genres := make([]*Genre, 0, len(b.BookGenres))
	for _, bg := range b.BookGenres {
		if bg.Genre != nil && bg.Genre.ID != "" {
			genres = append(genres, bg.Genre)
		}
	}
	return genres
}

// SetGenreIDs replaces the genre associations of the book with the given ids.
// Duplicates (compared by canonical id) are dropped.
func (b *Book) SetGenreIDs(ids []string) {
	seen := make(map[string]struct{}, len(ids))
	b.BookGenres = make([]*BookGenre, 0, len(ids))
	for _, id := range ids {
		canonical := CanonicalID(id)
		if canonical == "" {
			continue
		}
		if _, ok := seen[canonical]; ok {
			continue
		}
		seen[canonical] = struct{}{}
		b.BookGenres = append(b.BookGenres, &BookGenre{BookID: b.ID, GenreID: canonical})
	}
}
