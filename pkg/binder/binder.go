package binder

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"regexp"
	"strings"

	"github.com/creasty/defaults"
	"github.com/go-playground/mold/v4"
	"github.com/go-playground/mold/v4/modifiers"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/echo/v4/middleware/logger"
	"github.com/shishobooks/catalog/pkg/errcodes"
	"github.com/shishobooks/catalog/pkg/validation"
)

var indexSuffixRE = regexp.MustCompile(`\[\d+\]$`)

// Binder is a custom struct that implements the Echo Binder interface. It
// decodes the submitted form into a struct, fills in defaults, uses mold to
// normalize the params, validator to validate them, and finally mold again to
// escape them.
//
// Validation failures don't stop binding. Every failing field is collected
// into a *validation.Result, which is returned as the error so that handlers
// can re-display the form with all of the messages.
type Binder struct {
	queryDecoder *schema.Decoder
	formDecoder  *schema.Decoder
	conform      *mold.Transformer
	sanitize     *mold.Transformer
	validate     *validator.Validate
}

// New initializes a new Binder instance with the appropriate validation
// functions registered.
func New() (*Binder, error) {
	queryDecoder := schema.NewDecoder()
	queryDecoder.SetAliasTag("query")
	queryDecoder.IgnoreUnknownKeys(true)
	formDecoder := schema.NewDecoder()
	formDecoder.SetAliasTag("form")
	// Forms carry fields that aren't part of the payload, like the submit
	// button or the id of the record being deleted.
	formDecoder.IgnoreUnknownKeys(true)

	conform := modifiers.New()
	// Escaping runs after validation so that length rules see what the user
	// typed.
	sanitize := mold.New()
	sanitize.SetTagName("sanitize")
	sanitize.Register("escape", escapeModifier)

	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := validate.RegisterValidation("iso8601", iso8601Validator); err != nil {
		return nil, errors.WithStack(err)
	}

	return &Binder{queryDecoder, formDecoder, conform, sanitize, validate}, nil
}

// Bind binds, normalizes, sanitizes, and validates payloads against the given
// struct.
func (b *Binder) Bind(i interface{}, c echo.Context) error {
	req := c.Request()

	ctype := req.Header.Get(echo.HeaderContentType)
	switch {
	case strings.HasPrefix(ctype, echo.MIMEApplicationForm), strings.HasPrefix(ctype, echo.MIMEMultipartForm):
		params, err := c.FormParams()
		if err != nil {
			logger.FromEchoContext(c).Err(err).Warn("unable to parse form")
			return errcodes.MalformedPayload()
		}
		if err := b.decode(i, params, b.formDecoder); err != nil {
			return errors.WithStack(err)
		}
	case req.Method == http.MethodGet || req.Method == http.MethodDelete:
		if err := b.decode(i, c.QueryParams(), b.queryDecoder); err != nil {
			return errors.WithStack(err)
		}
	case req.ContentLength > 0:
		return errcodes.UnsupportedMediaType()
	}

	return b.check(req.Context(), i)
}

// check normalizes, validates, and sanitizes i. Multi-valued fields are
// normalized by their defaults before any element is touched. i is always
// sanitized, even when it fails validation, since failing forms are displayed
// again with what was submitted.
func (b *Binder) check(ctx context.Context, i interface{}) error {
	if err := defaults.Set(i); err != nil {
		return errors.WithStack(err)
	}

	if err := b.conform.Struct(ctx, i); err != nil {
		return errors.WithStack(err)
	}

	result := &validation.Result{}
	if err := b.validate.Struct(i); err != nil {
		var errs validator.ValidationErrors
		if !errors.As(err, &errs) {
			return errors.WithStack(err)
		}
		t := reflect.TypeOf(i)
		for t.Kind() == reflect.Ptr {
			t = t.Elem()
		}
		for _, fe := range errs {
			result.Add(fieldName(fe), message(t, fe), fmt.Sprint(fe.Value()))
		}
	}

	if err := b.sanitize.Struct(ctx, i); err != nil {
		return errors.WithStack(err)
	}

	if result.IsEmpty() {
		return nil
	}
	return result
}

func (b *Binder) decode(i interface{}, params url.Values, decoder *schema.Decoder) error {
	if err := decoder.Decode(i, params); err != nil {
		if errs, ok := err.(schema.MultiError); ok {
			var err error
			for _, err = range errs {
				break
			}

			if err, ok := err.(schema.ConversionError); ok {
				msg := formatSchemaConversionError(err)
				return errcodes.ValidationTypeError(msg)
			}
			return errors.WithStack(err)
		}
		return errors.WithStack(err)
	}
	return nil
}

// BindForm binds the submitted form into i and returns the outcome of its
// validation rules. The error is only set when the request itself couldn't be
// read; failing rules are reported through the result.
func BindForm(c echo.Context, i interface{}) (*validation.Result, error) {
	err := c.Bind(i)
	if err == nil {
		return &validation.Result{}, nil
	}
	var result *validation.Result
	if errors.As(err, &result) {
		return result, nil
	}
	return nil, errors.WithStack(err)
}

// fieldName reports the form name of the failing field. Errors on slice
// elements are reported against the slice itself.
func fieldName(fe validator.FieldError) string {
	return indexSuffixRE.ReplaceAllString(fe.Field(), "")
}

// message returns the human-readable message for a failure. A `msg_<tag>`
// struct tag takes precedence over `msg`, and fields with neither fall back to
// a generated message.
func message(t reflect.Type, fe validator.FieldError) string {
	name := indexSuffixRE.ReplaceAllString(fe.StructField(), "")
	if field, ok := t.FieldByName(name); ok {
		if msg := field.Tag.Get("msg_" + fe.Tag()); msg != "" {
			return msg
		}
		if msg := field.Tag.Get("msg"); msg != "" {
			return msg
		}
	}
	return formatValidationError(fe)
}

func escapeModifier(_ context.Context, fl mold.FieldLevel) error {
	if fl.Field().Kind() == reflect.String && fl.Field().CanSet() {
		fl.Field().SetString(validation.Escape(fl.Field().String()))
	}
	return nil
}
