package preview

import (
	"embed"
	"io/fs"
	"net/http"
	"sync"

	"github.com/flosch/pongo2/v6"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/goliatone/go-depselect/pkg/markup"
)

//go:embed templates/page.html
var templatesFS embed.FS

// runtimePath is where the component serves the browser runtime, relative to
// its mount point.
const runtimePath = "/assets/depselect.js"

// Component bundles the preview handlers, their configuration, and routing.
type Component struct {
	opts Options
	gen  *markup.Generator

	tplOnce sync.Once
	tpl     *pongo2.Template
	tplErr  error
}

// New constructs a component with default options plus any overrides.
func New(fns ...OptionFn) *Component {
	opts := NewOptions(fns...)
	gen := markup.NewGenerator(
		markup.WithStore(opts.Store),
		markup.WithTheme(opts.Theme),
		markup.WithRuntimeURL(opts.BasePath+runtimePath),
	)
	return &Component{opts: opts, gen: gen}
}

// Options returns a copy of the component configuration.
func (c *Component) Options() Options {
	return NewOptions(func(o *Options) { *o = c.opts })
}

// Handler returns the component's http.Handler. Routes are relative to the
// mount point: the demo page at /, the runtime script, and the catalog API.
func (c *Component) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(RequestLogger(c.opts.Logger))
	if c.opts.Guard != nil {
		r.Use(guardMiddleware(c.opts.Guard))
	}

	r.Get("/", c.handlePage)
	r.Get("/health", c.handleHealth)
	r.Get(runtimePath, c.handleRuntime)
	r.Get("/api/catalogs", c.handleCatalogIndex)
	r.Get("/api/catalogs/{name}", c.handleCatalog)
	return r
}

// handlePage renders the demo form: the root control followed by every
// generated dependent select. A fresh markup context per request keeps
// catalog dedup and the runtime tag page-local.
func (c *Component) handlePage(w http.ResponseWriter, _ *http.Request) {
	tpl, err := c.pageTemplate()
	if err != nil {
		c.fail(w, "load page template", err)
		return
	}

	ctx := markup.NewContext()
	head, err := c.gen.ThemeAssets(ctx)
	if err != nil {
		c.fail(w, "render theme assets", err)
		return
	}
	runtimeTag, err := c.gen.RuntimeTag(ctx)
	if err != nil {
		c.fail(w, "render runtime tag", err)
		return
	}
	controls := make([]string, 0, len(c.opts.Controls))
	for _, spec := range c.opts.Controls {
		tag, err := c.gen.SelectTag(ctx, spec)
		if err != nil {
			c.fail(w, "render control "+spec.Name, err)
			return
		}
		controls = append(controls, tag)
	}

	rootOptions := make([]map[string]any, 0, len(c.opts.Root.Options))
	for _, choice := range c.opts.Root.Options {
		rootOptions = append(rootOptions, map[string]any{"text": choice.Text, "value": choice.Value})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err = tpl.ExecuteWriter(pongo2.Context{
		"title":        c.opts.PageTitle,
		"theme_head":   head,
		"runtime_tag":  runtimeTag,
		"root_id":      c.opts.Root.ID,
		"root_name":    c.opts.Root.Name,
		"root_label":   c.opts.Root.Label,
		"root_options": rootOptions,
		"controls":     controls,
	}, w)
	if err != nil {
		c.opts.Logger.Error("execute page template", "error", err)
	}
}

func (c *Component) fail(w http.ResponseWriter, what string, err error) {
	c.opts.Logger.Error(what, "error", err)
	writeJSONError(w, http.StatusInternalServerError, what)
}

func (c *Component) pageTemplate() (*pongo2.Template, error) {
	c.tplOnce.Do(func() {
		sub, err := fs.Sub(templatesFS, "templates")
		if err != nil {
			c.tplErr = err
			return
		}
		set := pongo2.NewSet("depselect-preview", pongo2.NewFSLoader(sub))
		c.tpl, c.tplErr = set.FromFile("page.html")
	})
	return c.tpl, c.tplErr
}
