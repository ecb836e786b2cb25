package bookinstances

import (
	"github.com/shishobooks/catalog/pkg/models"
	"github.com/shishobooks/catalog/pkg/validation"
)

// BookInstancePayload is the copy create and update form.
type BookInstancePayload struct {
	Book    string `form:"book" mod:"trim" validate:"min=1" sanitize:"escape" msg:"Book must be specified"`
	Imprint string `form:"imprint" mod:"trim" validate:"min=1" sanitize:"escape" msg:"Imprint must be specified"`
	Status  string `form:"status" mod:"trim" default:"Maintenance" validate:"oneof=Available Maintenance Loaned Reserved" sanitize:"escape" msg:"Invalid value"`
	DueBack string `form:"due_back" mod:"trim" validate:"omitempty,iso8601" msg:"Invalid date"`
}

// BookInstance builds the copy described by the form. A blank or unparsable
// due date is left unset.
func (p *BookInstancePayload) BookInstance(id string) *models.BookInstance {
	bi := &models.BookInstance{
		ID:      id,
		BookID:  models.CanonicalID(p.Book),
		Imprint: p.Imprint,
		Status:  p.Status,
	}
	if t, ok := validation.ParseISO8601(p.DueBack); ok {
		bi.DueBack = t
	}
	return bi
}

// DeleteBookInstancePayload is the delete confirmation form.
type DeleteBookInstancePayload struct {
	BookInstanceID string `form:"bookinstanceid" mod:"trim"`
}
