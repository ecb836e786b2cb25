package errcodes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/shishobooks/catalog/pkg/views"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateView(t *testing.T) {
	t.Parallel()
	h := NewHandler()

	tests := []struct {
		name     string
		err      error
		expected ErrorView
	}{
		{
			name:     "custom error",
			err:      errors.WithStack(NotFound("Author")),
			expected: ErrorView{Title: "Not Found", Message: "Author not found.", Code: "not_found", StatusCode: http.StatusNotFound},
		},
		{
			name:     "echo error",
			err:      echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded"),
			expected: ErrorView{Title: "Too Many Requests", Message: "rate limit exceeded", Code: "rate_limit_exceeded", StatusCode: http.StatusTooManyRequests},
		},
		{
			name:     "generic error",
			err:      errors.New("disk on fire"),
			expected: ErrorView{Title: "Internal Server Error", Message: "Internal Server Error", Code: "internal_server_error", StatusCode: http.StatusInternalServerError},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, h.generateView(tt.err))
		})
	}
}

func TestHandle(t *testing.T) {
	t.Parallel()

	e := echo.New()
	r, err := views.New("Local Library")
	require.NoError(t, err)
	e.Renderer = r

	t.Run("renders the error view for browsers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(echo.HeaderAccept, "text/html,application/xhtml+xml,application/json;q=0.9")
		rec := httptest.NewRecorder()
		NewHandler().Handle(NotFound("Genre"), e.NewContext(req, rec))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "Genre not found.")
	})

	t.Run("writes the envelope for json clients", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(echo.HeaderAccept, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		NewHandler().Handle(MalformedPayload(), e.NewContext(req, rec))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":{"code":"malformed_payload","message":"Malformed Payload","status_code":400}}`, rec.Body.String())
	})
}
