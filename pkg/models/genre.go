package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Genre struct {
	bun.BaseModel `bun:"table:genres,alias:g"`

	ID        string    `bun:",pk" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Name      string    `bun:",notnull" json:"name"`

	// Checked marks the genre as selected when it's rendered in a book form.
	Checked bool `bun:"-" json:"-"`
}

func (g *Genre) URL() string {
	return "/catalog/genre/" + g.ID
}

type BookGenre struct {
	bun.BaseModel `bun:"table:book_genres,alias:bg"`

	BookID  string `bun:",pk" json:"book_id"`
	GenreID string `bun:",pk" json:"genre_id"`
	Genre   *Genre `bun:"rel:belongs-to,join:genre_id=id" json:"genre,omitempty"`
}
