// Package views renders the catalog's HTML pages.
package views

import (
	"bytes"
	"embed"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/shishobooks/catalog/pkg/models"
)

//go:embed templates/*.html
var templateFS embed.FS

const layoutFile = "templates/layout.html"

// Renderer implements echo.Renderer. Every view is parsed together with the
// shared layout and executed through it.
type Renderer struct {
	views map[string]*template.Template
}

// New parses every view. siteTitle is shown in the header of every page.
func New(siteTitle string) (*Renderer, error) {
	funcs := template.FuncMap{
		"siteTitle": func() string { return siteTitle },
		"sameID":    models.SameID,
		// Stored text is escaped when it's submitted, so it's already safe to
		// emit as markup.
		"sanitized": func(s string) template.HTML {
			return template.HTML(s) //nolint:gosec
		},
	}

	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, errors.WithStack(err)
	}

	views := make(map[string]*template.Template, len(files))
	for _, file := range files {
		if file == layoutFile {
			continue
		}
		name := strings.TrimSuffix(path.Base(file), ".html")
		tmpl, err := template.New(path.Base(layoutFile)).Funcs(funcs).ParseFS(templateFS, layoutFile, file)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse view %s", name)
		}
		views[name] = tmpl
	}

	return &Renderer{views: views}, nil
}

// Render writes the named view. The view is fully executed before anything is
// written, so a failing view doesn't leave a half-written page behind.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	tmpl, ok := r.views[name]
	if !ok {
		return errors.Errorf("view %q does not exist", name)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, path.Base(layoutFile), data); err != nil {
		return errors.Wrapf(err, "failed to render view %s", name)
	}
	_, err := buf.WriteTo(w)
	return errors.WithStack(err)
}

// Has reports whether a view with the given name exists.
func (r *Renderer) Has(name string) bool {
	_, ok := r.views[name]
	return ok
}
