package binder

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shishobooks/catalog/pkg/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type params struct {
	Title  string   `form:"title" mod:"trim" validate:"min=1" sanitize:"escape" msg:"Title must not be empty."`
	Name   string   `form:"name" mod:"trim" validate:"max=9"`
	Code   string   `form:"code" mod:"trim" validate:"omitempty,alphanum,max=4" msg_alphanum:"Code has non-alphanumeric characters." msg:"Code is too long."`
	Status string   `form:"status" mod:"trim" validate:"oneof=Available Loaned" msg:"Invalid value"`
	Due    string   `form:"due" validate:"omitempty,iso8601" msg:"Invalid date"`
	Short  string   `form:"short" mod:"trim" validate:"max=3" sanitize:"escape"`
	Genre  []string `form:"genre" sanitize:"dive,escape" default:"[]"`
	Omit   string   `form:"-"`
}

func TestBind(t *testing.T) {
	t.Parallel()
	b, err := New()
	require.NoError(t, err)
	assert.NotNil(t, b)

	t.Run("only allows form payloads", func(tt *testing.T) {
		c := newContext(`{"title":"x"}`, echo.MIMEApplicationJSON)
		p := params{}
		err := b.Bind(&p, c)
		assert.Contains(tt, err.Error(), "Unsupported Media Type")
	})

	t.Run("use mod and sanitize tags to clean params", func(tt *testing.T) {
		c := newFormContext(url.Values{
			"title":  {"  <b>Tom & Jerry</b>  "},
			"name":   {"  world  "},
			"status": {" Loaned "},
			"genre":  {"<i>"},
			"submit": {"Submit"},
		})
		p := params{}
		err := b.Bind(&p, c)
		require.NoError(tt, err)
		assert.Equal(tt, "&lt;b&gt;Tom &amp; Jerry&lt;&#x2F;b&gt;", p.Title)
		assert.Equal(tt, "world", p.Name)
		assert.Equal(tt, "Loaned", p.Status)
		assert.Equal(tt, []string{"&lt;i&gt;"}, p.Genre)
	})

	t.Run("normalizes multi-valued fields to a list", func(tt *testing.T) {
		cases := map[string]struct {
			values   url.Values
			expected []string
		}{
			"absent": {url.Values{}, []string{}},
			"scalar": {url.Values{"genre": {"a"}}, []string{"a"}},
			"many":   {url.Values{"genre": {"a", "b"}}, []string{"a", "b"}},
		}
		for name, tc := range cases {
			values := tc.values
			values.Set("title", "t")
			values.Set("status", "Available")
			c := newFormContext(values)
			p := params{}
			err := b.Bind(&p, c)
			require.NoError(tt, err, name)
			assert.NotNil(tt, p.Genre, name)
			assert.Equal(tt, tc.expected, p.Genre, name)
		}
	})

	t.Run("collects every failure in field order", func(tt *testing.T) {
		c := newFormContext(url.Values{
			"title":  {"   "},
			"name":   {"0123456789"},
			"code":   {"a-b"},
			"status": {"Lost"},
			"due":    {"not a date"},
		})
		p := params{}
		err := b.Bind(&p, c)
		require.Error(tt, err)

		var result *validation.Result
		require.ErrorAs(tt, err, &result)
		require.Len(tt, result.Failures, 5)
		assert.Equal(tt, validation.Failure{Field: "title", Message: "Title must not be empty.", Value: ""}, result.Failures[0])
		assert.Equal(tt, "name", result.Failures[1].Field)
		assert.Equal(tt, `"name" length must be less than or equal to 9 characters`, result.Failures[1].Message)
		assert.Equal(tt, "Code has non-alphanumeric characters.", result.Failures[2].Message)
		assert.Equal(tt, "Invalid value", result.Failures[3].Message)
		assert.Equal(tt, "Invalid date", result.Failures[4].Message)
	})

	t.Run("escapes after the length rules run", func(tt *testing.T) {
		c := newFormContext(url.Values{"title": {"t"}, "status": {"Available"}, "short": {" <&> "}})
		p := params{}
		require.NoError(tt, b.Bind(&p, c))
		assert.Equal(tt, "&lt;&amp;&gt;", p.Short)
	})

	t.Run("failing forms are still sanitized", func(tt *testing.T) {
		c := newFormContext(url.Values{"title": {"<i>"}, "status": {"Lost"}, "genre": {"a&b"}})
		p := params{}
		err := b.Bind(&p, c)
		var result *validation.Result
		require.ErrorAs(tt, err, &result)
		assert.Equal(tt, []string{"Invalid value"}, result.Messages())
		assert.Equal(tt, "&lt;i&gt;", p.Title)
		assert.Equal(tt, []string{"a&amp;b"}, p.Genre)
	})

	t.Run("optional fields accept blank values", func(tt *testing.T) {
		c := newFormContext(url.Values{"title": {"t"}, "status": {"Available"}, "due": {""}, "code": {""}})
		p := params{}
		require.NoError(tt, b.Bind(&p, c))
	})

	t.Run("a body-less post still runs the rules", func(tt *testing.T) {
		e := echo.New()
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		c := e.NewContext(req, httptest.NewRecorder())
		p := params{}
		err := b.Bind(&p, c)
		var result *validation.Result
		require.ErrorAs(tt, err, &result)
		assert.Equal(tt, []string{"Title must not be empty.", "Invalid value"}, result.Messages())
	})
}

func TestBindForm(t *testing.T) {
	t.Parallel()
	b, err := New()
	require.NoError(t, err)

	e := echo.New()
	e.Binder = b

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(url.Values{"title": {""}, "status": {"Available"}}.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	c := e.NewContext(req, httptest.NewRecorder())

	p := params{}
	result, err := BindForm(c, &p)
	require.NoError(t, err)
	assert.False(t, result.IsEmpty())
	assert.Equal(t, []string{"Title must not be empty."}, result.For("title"))

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(url.Values{"title": {"ok"}, "status": {"Available"}}.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	c = e.NewContext(req, httptest.NewRecorder())

	result, err = BindForm(c, &params{})
	require.NoError(t, err)
	assert.True(t, result.IsEmpty())

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`<xml/>`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationXML)
	c = e.NewContext(req, httptest.NewRecorder())

	result, err = BindForm(c, &params{})
	require.Error(t, err)
	assert.Nil(t, result)
}

func newContext(payload, mime string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, mime)
	rr := httptest.NewRecorder()
	return e.NewContext(req, rr)
}

func newFormContext(values url.Values) echo.Context {
	return newContext(values.Encode(), echo.MIMEApplicationForm)
}
