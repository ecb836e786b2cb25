package models

import (
	"time"

	"github.com/dustin/go-humanize"
)

const inputDateLayout = "2006-01-02"

// FormatDisplayDate renders t in UTC like "June 6th, 2020".
func FormatDisplayDate(t time.Time) string {
	t = t.UTC()
	return t.Format("January") + " " + humanize.Ordinal(t.Day()) + ", " + t.Format("2006")
}

// FormatInputDate renders t in UTC in the format expected by HTML date inputs.
func FormatInputDate(t time.Time) string {
	return t.UTC().Format(inputDateLayout)
}
