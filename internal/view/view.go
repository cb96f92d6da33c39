// Package view renders the site's HTML pages from embedded templates.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/microcosm-cc/bluemonday"

	"portfolio/internal/auth"
	"portfolio/internal/form"
	"portfolio/internal/model"
)

//go:embed templates/*.html
var templateFiles embed.FS

//go:embed static
var staticFiles embed.FS

const layoutTemplate = "templates/layout.html"

// Page is the data handed to every template.
type Page struct {
	Title    string
	LoggedIn bool
	CSRF     string
	Flash    string
	Errors   form.Errors
	Form     interface{}
	Action   string

	Profile  *model.Profile
	Projects []model.ProjectPost
	Project  *model.ProjectPost
	MsgSent  bool

	Status  int
	Message string
}

// NewPage builds the page data shared by every view for the current request.
func NewPage(c echo.Context, title string) Page {
	csrf, _ := c.Get(middleware.DefaultCSRFConfig.ContextKey).(string)
	return Page{
		Title:    title,
		LoggedIn: auth.IsAuthenticated(c),
		CSRF:     csrf,
	}
}

// Renderer implements echo.Renderer over the embedded page templates.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses every page together with the shared layout.
func NewRenderer() (*Renderer, error) {
	policy := bluemonday.UGCPolicy()
	funcs := template.FuncMap{
		// rich text is stored as submitted and sanitized on the way out
		"rich": func(s string) template.HTML {
			return template.HTML(policy.Sanitize(s))
		},
		"year": func() int { return time.Now().Year() },
	}

	names, err := fs.Glob(templateFiles, "templates/*.html")
	if err != nil {
		return nil, err
	}

	pages := make(map[string]*template.Template, len(names))
	for _, name := range names {
		if name == layoutTemplate {
			continue
		}
		tmpl, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFiles, layoutTemplate, name)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		pages[name[len("templates/"):]] = tmpl
	}
	return &Renderer{pages: pages}, nil
}

// Render executes the named page inside the layout.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}
	return tmpl.ExecuteTemplate(w, "layout.html", data)
}

// Static returns the embedded stylesheet directory.
func Static() fs.FS {
	return echo.MustSubFS(staticFiles, "static")
}
