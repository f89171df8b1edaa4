package preview

import (
	"log/slog"
	"net/http"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-depselect/pkg/catalog"
	"github.com/goliatone/go-depselect/pkg/markup"
)

// GuardFunc can reject a request before any preview handler runs.
type GuardFunc func(r *http.Request) error

// Choice is one option of the root select.
type Choice struct {
	Text  string
	Value string
}

// RootControl is the hand-written field at the top of the cascade. It is not
// generated: dependent controls observe it by element id.
type RootControl struct {
	ID      string
	Name    string
	Label   string
	Options []Choice
}

// Options configures the preview component.
type Options struct {
	// BasePath prefixes generated asset URLs when the component is mounted
	// somewhere other than the server root.
	BasePath  string
	PageTitle string
	Store     *catalog.Store
	Root      RootControl
	Controls  []markup.Spec
	Theme     *theme.RendererConfig
	Logger    *slog.Logger
	Guard     GuardFunc
}

// OptionFn mutates Options during construction.
type OptionFn func(*Options)

// DefaultOptions returns the base configuration without the demo form.
func DefaultOptions() Options {
	return Options{
		PageTitle: "Dependent select preview",
	}
}

// NewOptions applies overrides on top of defaults. When neither a store nor
// controls are provided the built-in demo form fills both, so the component
// works out of the box.
func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if strings.TrimSpace(opts.PageTitle) == "" {
		opts.PageTitle = "Dependent select preview"
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Store == nil && opts.Controls == nil {
		opts.Store = DemoStore()
		opts.Controls = DemoControls()
		if opts.Root.ID == "" {
			opts.Root = DemoRoot()
		}
	}
	if opts.Root.ID == "" {
		opts.Root = RootControl{ID: "observed", Label: "Observed"}
	}
	if opts.Root.Name == "" {
		opts.Root.Name = opts.Root.ID
	}
	opts.BasePath = strings.TrimRight(strings.TrimSpace(opts.BasePath), "/")
	if opts.Controls != nil {
		opts.Controls = append([]markup.Spec{}, opts.Controls...)
	}
	return opts
}

// WithBasePath sets the mount prefix used when building asset URLs.
func WithBasePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.BasePath = path
	}
}

// WithPageTitle overrides the demo page title.
func WithPageTitle(title string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.PageTitle = title
	}
}

// WithStore serves catalogs from the given store.
func WithStore(store *catalog.Store) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Store = store
	}
}

// WithRoot replaces the hand-written field at the top of the cascade.
func WithRoot(root RootControl) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Root = root
	}
}

// WithControls sets the dependent controls rendered on the page, in order.
// Controls must appear after the field they observe.
func WithControls(controls []markup.Spec) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		if controls == nil {
			o.Controls = nil
			return
		}
		o.Controls = append([]markup.Spec{}, controls...)
	}
}

// WithTheme styles the generated controls and emits the theme's assets in
// the page head.
func WithTheme(cfg *theme.RendererConfig) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Theme = cfg
	}
}

// WithLogger sets the request and error logger.
func WithLogger(logger *slog.Logger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}

// WithGuard rejects requests (all routes) when the guard returns an error.
func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}
