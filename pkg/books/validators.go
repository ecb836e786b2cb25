package books

import "github.com/shishobooks/catalog/pkg/models"

// BookPayload is the book create and update form. Genre arrives as zero, one,
// or many checkbox values and is always decoded into a list.
type BookPayload struct {
	Title   string   `form:"title" mod:"trim" validate:"min=1" sanitize:"escape" msg:"Title must not be empty."`
	Author  string   `form:"author" mod:"trim" validate:"min=1" sanitize:"escape" msg:"Author must not be empty."`
	Summary string   `form:"summary" mod:"trim" validate:"min=1" sanitize:"escape" msg:"Summary must not be empty."`
	ISBN    string   `form:"isbn" mod:"trim" validate:"min=1" sanitize:"escape" msg:"ISBN must not be empty"`
	Genre   []string `form:"genre" sanitize:"dive,escape" default:"[]"`
}

// Book builds the book described by the form.
func (p *BookPayload) Book(id string) *models.Book {
	book := &models.Book{
		ID:       id,
		Title:    p.Title,
		AuthorID: models.CanonicalID(p.Author),
		Summary:  p.Summary,
		ISBN:     p.ISBN,
	}
	book.SetGenreIDs(p.Genre)
	return book
}

// DeleteBookPayload is the delete confirmation form.
type DeleteBookPayload struct {
	BookID string `form:"bookid" mod:"trim"`
}
