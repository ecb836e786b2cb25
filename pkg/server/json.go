package server

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"
	"github.com/shishobooks/catalog/pkg/errcodes"
)

// jsonSerializer encodes the JSON responses Echo writes, such as error
// envelopes for clients that ask for JSON.
type jsonSerializer struct{}

func (s *jsonSerializer) Serialize(c echo.Context, i interface{}, indent string) error {
	enc := json.NewEncoder(c.Response())
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return errors.WithStack(enc.Encode(i))
}

func (s *jsonSerializer) Deserialize(c echo.Context, i interface{}) error {
	if err := json.NewDecoder(c.Request().Body).Decode(i); err != nil {
		return errcodes.MalformedPayload()
	}
	return nil
}
