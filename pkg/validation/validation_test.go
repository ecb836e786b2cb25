package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResult(t *testing.T) {
	t.Parallel()

	var empty *Result
	assert.True(t, empty.IsEmpty())
	assert.True(t, (&Result{}).IsEmpty())

	r := &Result{}
	r.Add("title", "Title must not be empty.", "")
	r.Add("isbn", "ISBN must not be empty", "")
	r.Add("title", "Title is too long.", "x")

	assert.False(t, r.IsEmpty())
	assert.Equal(t, []string{"Title must not be empty.", "ISBN must not be empty", "Title is too long."}, r.Messages())
	assert.Equal(t, []string{"Title must not be empty.", "Title is too long."}, r.For("title"))
	assert.Empty(t, r.For("summary"))
	assert.Equal(t, "Title must not be empty. ISBN must not be empty Title is too long.", r.Error())
}

func TestEscape(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "&lt;b&gt;Tom &amp; Jerry&lt;&#x2F;b&gt;", Escape("<b>Tom & Jerry</b>"))
	assert.Equal(t, "&quot;quoted&quot; &#x27;single&#x27; &#96;tick&#96; &#x5C;", Escape("\"quoted\" 'single' `tick` \\"))
	assert.Equal(t, "plain text", Escape("plain text"))
}

func TestParseISO8601(t *testing.T) {
	t.Parallel()

	tm, ok := ParseISO8601("2020-06-06")
	require.True(t, ok)
	assert.Equal(t, time.Date(2020, time.June, 6, 0, 0, 0, 0, time.UTC), tm)

	tm, ok = ParseISO8601("2020-06-06T10:30")
	require.True(t, ok)
	assert.Equal(t, 10, tm.Hour())

	_, ok = ParseISO8601("2020-06-06T10:30:00+02:00")
	assert.True(t, ok)

	for _, bad := range []string{"", "06/06/2020", "2020-13-01", "yesterday"} {
		_, ok := ParseISO8601(bad)
		assert.False(t, ok, bad)
	}
}
