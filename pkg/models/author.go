package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Author struct {
	bun.BaseModel `bun:"table:authors,alias:a"`

	ID          string     `bun:",pk" json:"id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	FirstName   string     `bun:",notnull" json:"first_name"`
	FamilyName  string     `bun:",notnull" json:"family_name"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	DateOfDeath *time.Time `json:"date_of_death"`
}

// Name returns "family, first". Authors missing either part display as the
// empty string.
func (a *Author) Name() string {
	if a.FirstName == "" || a.FamilyName == "" {
		return ""
	}
	return a.FamilyName + ", " + a.FirstName
}

// Lifespan renders the birth and death dates, leaving out whichever is unknown.
func (a *Author) Lifespan() string {
	switch {
	case a.DateOfBirth != nil && a.DateOfDeath != nil:
		return "(" + FormatDisplayDate(*a.DateOfBirth) + " - " + FormatDisplayDate(*a.DateOfDeath) + ")"
	case a.DateOfBirth != nil:
		return "(Date of Birth: " + FormatDisplayDate(*a.DateOfBirth) + ")"
	case a.DateOfDeath != nil:
		return "(Date of Death: " + FormatDisplayDate(*a.DateOfDeath) + ")"
	default:
		return ""
	}
}

func (a *Author) DateOfBirthInput() string {
	if a.DateOfBirth == nil {
		return ""
	}
	return FormatInputDate(*a.DateOfBirth)
}

func (a *Author) DateOfDeathInput() string {
	if a.DateOfDeath == nil {
		return ""
	}
	return FormatInputDate(*a.DateOfDeath)
}

func (a *Author) URL() string {
	return "/catalog/author/" + a.ID
}
