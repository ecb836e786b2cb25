// Package testutils builds the pieces handler tests share: a migrated
// in-memory database and an Echo instance configured like the server's.
package testutils

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shishobooks/catalog/pkg/binder"
	"github.com/shishobooks/catalog/pkg/errcodes"
	"github.com/shishobooks/catalog/pkg/migrations"
	"github.com/shishobooks/catalog/pkg/views"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

// NewDB returns a migrated in-memory database that is closed when the test
// finishes. It's limited to a single connection so every query sees the same
// database.
func NewDB(t testing.TB) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() {
		db.Close()
	})

	_, err = migrations.BringUpToDate(context.Background(), db)
	require.NoError(t, err)

	return db
}

// NewEcho returns an Echo instance with the form binder, the catalog views,
// and the error handler installed.
func NewEcho(t testing.TB) *echo.Echo {
	t.Helper()

	e := echo.New()

	b, err := binder.New()
	require.NoError(t, err)
	e.Binder = b

	r, err := views.New("Local Library")
	require.NoError(t, err)
	e.Renderer = r

	e.HTTPErrorHandler = errcodes.NewHandler().Handle
	return e
}

// Get performs a GET request against e.
func Get(t testing.TB, e *echo.Echo, target string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// PostForm submits form to target as an url-encoded body.
func PostForm(t testing.TB, e *echo.Echo, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}
