//go:build property
// +build property

package validation

import (
	"html"
	"strings"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestEscapeProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("escaped text has no markup characters", prop.ForAll(
		func(s string) bool {
			return !strings.ContainsAny(Escape(s), "<>\"'/\\`")
		},
		gen.AnyString(),
	))

	properties.Property("unescaping restores the input", prop.ForAll(
		func(s string) bool {
			return html.UnescapeString(Escape(s)) == s
		},
		gen.AnyString(),
	))

	properties.Property("text without markup characters is unchanged", prop.ForAll(
		func(s string) bool {
			return Escape(s) == s
		},
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}

func TestParseISO8601Properties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("input dates round trip", prop.ForAll(
		func(days int) bool {
			d := time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, days)
			parsed, ok := ParseISO8601(d.Format("2006-01-02"))
			return ok && parsed.Equal(d)
		},
		gen.IntRange(0, 365*200),
	))

	properties.TestingRun(t)
}
