package authors

import (
	"time"

	"github.com/shishobooks/catalog/pkg/models"
	"github.com/shishobooks/catalog/pkg/validation"
)

// AuthorPayload is the author create and update form.
type AuthorPayload struct {
	FirstName   string `form:"first_name" mod:"trim" validate:"min=1,max=100,alphanum" sanitize:"escape" msg_min:"First name must be specified." msg_alphanum:"First name has non-alphanumeric characters."`
	FamilyName  string `form:"family_name" mod:"trim" validate:"min=1,max=100,alphanum" sanitize:"escape" msg_min:"Family name must be specified." msg_alphanum:"Family name has non-alphanumeric characters."`
	DateOfBirth string `form:"date_of_birth" validate:"omitempty,iso8601" msg:"Invalid date of birth"`
	DateOfDeath string `form:"date_of_death" validate:"omitempty,iso8601" msg:"Invalid date of death"`
}

// Author builds the author described by the form. Dates that are blank or
// don't parse are left unset.
func (p *AuthorPayload) Author(id string) *models.Author {
	return &models.Author{
		ID:          id,
		FirstName:   p.FirstName,
		FamilyName:  p.FamilyName,
		DateOfBirth: parseDate(p.DateOfBirth),
		DateOfDeath: parseDate(p.DateOfDeath),
	}
}

// DeleteAuthorPayload is the delete confirmation form.
type DeleteAuthorPayload struct {
	AuthorID string `form:"authorid" mod:"trim"`
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, ok := validation.ParseISO8601(s)
	if !ok {
		return nil
	}
	return &t
}
