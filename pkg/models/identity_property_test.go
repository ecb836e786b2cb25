//go:build property
// +build property

package models

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestIdentityProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("canonical ids are stable", prop.ForAll(
		func(s string) bool {
			return CanonicalID(CanonicalID(s)) == CanonicalID(s)
		},
		gen.AlphaString(),
	))

	properties.Property("uuids match regardless of case and padding", prop.ForAll(
		func(b []byte) bool {
			id, err := uuid.FromBytes(b)
			if err != nil {
				return false
			}
			return SameID(strings.ToUpper(id.String()), "  "+id.String()+"\t")
		},
		gen.SliceOfN(16, gen.UInt8()),
	))

	properties.Property("distinct uuids never match", prop.ForAll(
		func(a, b []byte) bool {
			x, _ := uuid.FromBytes(a)
			y, _ := uuid.FromBytes(b)
			return SameID(x.String(), y.String()) == (x == y)
		},
		gen.SliceOfN(16, gen.UInt8()),
		gen.SliceOfN(16, gen.UInt8()),
	))

	properties.TestingRun(t)
}
