// Package catalog serves the catalog home page and mounts every catalog
// resource under one group.
package catalog

import (
	"github.com/labstack/echo/v4"
	"github.com/shishobooks/catalog/pkg/authors"
	"github.com/shishobooks/catalog/pkg/bookinstances"
	"github.com/shishobooks/catalog/pkg/books"
	"github.com/shishobooks/catalog/pkg/genres"
	"github.com/uptrace/bun"
)

// RegisterRoutesWithGroup registers the home page and every resource's routes
// on the catalog group.
func RegisterRoutesWithGroup(g *echo.Group, db *bun.DB) {
	h := &handler{
		bookService:         books.NewService(db),
		bookInstanceService: bookinstances.NewService(db),
		authorService:       authors.NewService(db),
		genreService:        genres.NewService(db),
	}

	g.GET("", h.index)
	g.GET("/", h.index)

	books.RegisterRoutesWithGroup(g, db)
	bookinstances.RegisterRoutesWithGroup(g, db)
	authors.RegisterRoutesWithGroup(g, db)
	genres.RegisterRoutesWithGroup(g, db)
}
