package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Book instance statuses.
const (
	BookInstanceStatusAvailable   = "Available"
	BookInstanceStatusMaintenance = "Maintenance"
	BookInstanceStatusLoaned      = "Loaned"
	BookInstanceStatusReserved    = "Reserved"
)

// BookInstanceStatuses lists every status in the order they're offered in forms.
var BookInstanceStatuses = []string{
	BookInstanceStatusAvailable,
	BookInstanceStatusMaintenance,
	BookInstanceStatusLoaned,
	BookInstanceStatusReserved,
}

// BookInstance is a physical copy of a book.
type BookInstance struct {
	bun.BaseModel `bun:"table:book_instances,alias:bi"`

	ID        string    `bun:",pk" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	BookID    string    `bun:",notnull" json:"book_id"`
	Book      *Book     `bun:"rel:belongs-to,join:book_id=id" json:"book,omitempty"`
	Imprint   string    `bun:",notnull" json:"imprint"`
	Status    string    `bun:",notnull" json:"status" default:"Maintenance"`
	DueBack   time.Time `bun:",notnull" json:"due_back"`
}

func (bi *BookInstance) URL() string {
	return "/catalog/bookinstance/" + bi.ID
}

func (bi *BookInstance) DueBackFormatted() string {
	return FormatDisplayDate(bi.DueBack)
}

// DueBackInput is empty for a copy that hasn't been given a due date yet.
func (bi *BookInstance) DueBackInput() string {
	if bi.DueBack.IsZero() {
		return ""
	}
	return FormatInputDate(bi.DueBack)
}
