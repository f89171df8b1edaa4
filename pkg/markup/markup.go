package markup

import (
	"fmt"
	"html"
	"strings"

	json "github.com/goccy/go-json"
	theme "github.com/goliatone/go-theme"

	depselect "github.com/goliatone/go-depselect"
	"github.com/goliatone/go-depselect/pkg/catalog"
)

// controlPrefix namespaces generated element ids so they cannot collide with
// hand-written page markup.
const controlPrefix = "ds-"

// StylesheetAssetKey is the theme asset key resolved for the stylesheet link.
const StylesheetAssetKey = "depselect.stylesheet"

// ControlID returns the element id generated for a control name. Use it to
// point one generated control's Observes at another generated control.
func ControlID(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	return controlPrefix + trimmed
}

// Spec describes one dependent select to generate.
type Spec struct {
	// Name is the control's form name; the element id derives from it.
	Name string
	// Observes is the element id of the field whose value drives filtering.
	Observes string
	// CatalogName picks a catalog from the generator's store and doubles as
	// the page-level array name, so controls sharing it share one copy of
	// the data in the page.
	CatalogName string
	// Catalog embeds rows inline instead of using the store; the array name
	// derives from the control name. An empty non-nil catalog is valid and
	// simply matches nothing.
	Catalog catalog.Catalog
	// InitialValue seeds the selection on the first rebuild.
	InitialValue string
	// Label renders ahead of the control when set.
	Label string
	// Description renders after the control. Markdown, sanitized.
	Description string
	// Required appends the required marker to the label.
	Required bool
	// IncludeBlank prepends a blank option on every rebuild.
	IncludeBlank bool
	// CollapseSpaces leaves option texts unchanged; when false, ASCII spaces
	// become no-break spaces.
	CollapseSpaces bool
	// Attrs adds extra attributes to the select element, emitted in sorted
	// order. Attributes the generator owns (id, name, class, data-*) are
	// skipped.
	Attrs map[string]string
}

// Generator emits dependent-select markup and the scripts that animate it.
// A generator is safe to share across pages; per-page state lives in the
// Context.
type Generator struct {
	store      *catalog.Store
	theme      *theme.RendererConfig
	runtimeURL string
}

// GeneratorOption customises generator construction.
type GeneratorOption func(*Generator)

// WithStore resolves Spec.CatalogName lookups against the given store.
func WithStore(store *catalog.Store) GeneratorOption {
	return func(g *Generator) {
		g.store = store
	}
}

// WithTheme stamps theme attributes on generated controls and lets
// ThemeAssets emit the theme's stylesheet and CSS variables.
func WithTheme(cfg *theme.RendererConfig) GeneratorOption {
	return func(g *Generator) {
		g.theme = cfg
	}
}

// WithRuntimeURL makes RuntimeTag reference a served script instead of
// inlining the embedded runtime.
func WithRuntimeURL(url string) GeneratorOption {
	return func(g *Generator) {
		g.runtimeURL = strings.TrimSpace(url)
	}
}

// NewGenerator creates a generator.
func NewGenerator(opts ...GeneratorOption) *Generator {
	g := &Generator{}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// SelectTag renders one dependent select: wrapper, label, the (empty) select
// element, sanitized description, and the script that registers catalog data
// and binds the runtime. Catalog rows land in the page exactly once per array
// name, tracked by the context. The control ships empty on purpose; the
// runtime's first synchronization fills it when the page loads, exactly as
// later rebuilds will.
func (g *Generator) SelectTag(ctx *Context, spec Spec) (string, error) {
	if ctx == nil {
		return "", fmt.Errorf("markup: render context is required")
	}
	name := strings.TrimSpace(spec.Name)
	if name == "" {
		return "", fmt.Errorf("markup: control name is required")
	}
	observes := strings.TrimSpace(spec.Observes)
	if observes == "" {
		return "", fmt.Errorf("markup: control %q needs an observed field", name)
	}

	rows, arrayName, err := g.resolveCatalog(spec, name)
	if err != nil {
		return "", err
	}
	if arrayName == "" {
		arrayName = catalogArrayName(name)
	}
	payload, err := catalog.Encode(rows)
	if err != nil {
		return "", fmt.Errorf("markup: control %q: %w", name, err)
	}

	description, err := renderDescription(spec.Description)
	if err != nil {
		return "", err
	}

	controlID := ControlID(name)
	if err := ctx.claimControl(controlID); err != nil {
		return "", err
	}

	script, err := g.bindScript(ctx, spec, controlID, observes, arrayName, payload)
	if err != nil {
		return "", err
	}

	var builder strings.Builder
	builder.Grow(len(payload) + len(script) + 512)

	builder.WriteString(`<div class="`)
	builder.WriteString(string(ClassField))
	builder.WriteString(`" data-component="depselect"`)
	if g.theme != nil && g.theme.Theme != "" {
		builder.WriteString(` data-theme="`)
		builder.WriteString(html.EscapeString(g.theme.Theme))
		builder.WriteString(`"`)
		if g.theme.Variant != "" {
			builder.WriteString(` data-theme-variant="`)
			builder.WriteString(html.EscapeString(g.theme.Variant))
			builder.WriteString(`"`)
		}
	}
	builder.WriteString(">\n")

	if label := strings.TrimSpace(spec.Label); label != "" {
		builder.WriteString(`    <label for="`)
		builder.WriteString(html.EscapeString(controlID))
		builder.WriteString(`" class="`)
		builder.WriteString(string(ClassLabel))
		builder.WriteString(`">`)
		builder.WriteString(html.EscapeString(label))
		if spec.Required {
			builder.WriteString(` *`)
		}
		builder.WriteString("</label>\n")
	}

	builder.WriteString(`    <select id="`)
	builder.WriteString(html.EscapeString(controlID))
	builder.WriteString(`" name="`)
	builder.WriteString(html.EscapeString(name))
	builder.WriteString(`" class="`)
	builder.WriteString(string(ClassControl))
	builder.WriteString(`" data-observes="`)
	builder.WriteString(html.EscapeString(observes))
	builder.WriteString(`" data-catalog="`)
	builder.WriteString(html.EscapeString(arrayName))
	builder.WriteString(`"`)
	for _, key := range sortedAttrKeys(spec.Attrs) {
		if reservedAttr(key) {
			continue
		}
		builder.WriteByte(' ')
		builder.WriteString(html.EscapeString(key))
		builder.WriteString(`="`)
		builder.WriteString(html.EscapeString(spec.Attrs[key]))
		builder.WriteString(`"`)
	}
	builder.WriteString("></select>\n")

	if description != "" {
		builder.WriteString(`    <small class="`)
		builder.WriteString(string(ClassDescription))
		builder.WriteString(`">`)
		builder.WriteString(description)
		builder.WriteString("</small>\n")
	}

	builder.WriteString("</div>\n")
	builder.WriteString(script)

	return builder.String(), nil
}

// RuntimeTag emits the browser runtime once per context: inline by default,
// or as a script reference when the generator was built with WithRuntimeURL.
// Later calls return an empty string.
func (g *Generator) RuntimeTag(ctx *Context) (string, error) {
	if ctx == nil {
		return "", fmt.Errorf("markup: render context is required")
	}
	if !ctx.claimRuntime() {
		return "", nil
	}
	if g.runtimeURL != "" {
		return `<script src="` + html.EscapeString(g.runtimeURL) + `"></script>` + "\n", nil
	}
	script := depselect.RuntimeScript()
	if len(script) == 0 {
		return "", fmt.Errorf("markup: embedded runtime unavailable")
	}
	return "<script>\n" + string(script) + "</script>\n", nil
}

// ThemeAssets emits the theme's stylesheet link and CSS variable block, once
// per context. Without a configured theme it returns an empty string.
func (g *Generator) ThemeAssets(ctx *Context) (string, error) {
	if ctx == nil {
		return "", fmt.Errorf("markup: render context is required")
	}
	if g.theme == nil || !ctx.claimTheme() {
		return "", nil
	}

	var builder strings.Builder
	if g.theme.AssetURL != nil {
		if href := g.theme.AssetURL(StylesheetAssetKey); href != "" {
			builder.WriteString(`<link rel="stylesheet" href="`)
			builder.WriteString(html.EscapeString(href))
			builder.WriteString("\">\n")
		}
	}
	if style := cssVarsStyle(g.theme.CSSVars); style != "" {
		builder.WriteString("<style>\n")
		builder.WriteString(style)
		builder.WriteString("</style>\n")
	}
	return builder.String(), nil
}

// resolveCatalog returns the control's rows plus the shared array name, empty
// when the rows are inline and the name should derive from the control.
func (g *Generator) resolveCatalog(spec Spec, name string) (catalog.Catalog, string, error) {
	catalogName := strings.TrimSpace(spec.CatalogName)
	if catalogName != "" && spec.Catalog != nil {
		return nil, "", fmt.Errorf("markup: control %q sets both CatalogName and Catalog", name)
	}
	if catalogName != "" {
		if g.store == nil {
			return nil, "", fmt.Errorf("markup: control %q references catalog %q but the generator has no store", name, catalogName)
		}
		rows, err := g.store.Get(catalogName)
		if err != nil {
			return nil, "", fmt.Errorf("markup: control %q: %w", name, err)
		}
		return rows, catalogName, nil
	}
	if spec.Catalog == nil {
		return nil, "", fmt.Errorf("markup: control %q needs CatalogName or Catalog", name)
	}
	return spec.Catalog, "", nil
}

type bindPayload struct {
	DependentID    string          `json:"dependentId"`
	ObservedID     string          `json:"observedId"`
	Catalog        json.RawMessage `json:"catalog"`
	InitialValue   string          `json:"initialValue,omitempty"`
	IncludeBlank   bool            `json:"includeBlank,omitempty"`
	CollapseSpaces bool            `json:"collapseSpaces,omitempty"`
}

// bindScript writes the per-control script: the catalog registration when
// this control is the first on the page to use the array name, then the bind
// call referencing the data by name. All dynamic values pass through the JSON
// encoder, which escapes HTML-significant characters, so the payload cannot
// break out of the script element.
func (g *Generator) bindScript(ctx *Context, spec Spec, controlID, observes, arrayName string, payload []byte) (string, error) {
	emit, err := ctx.registerCatalog(arrayName, string(payload))
	if err != nil {
		return "", err
	}
	nameJSON, err := json.Marshal(arrayName)
	if err != nil {
		return "", fmt.Errorf("markup: encode catalog name: %w", err)
	}

	bind, err := json.Marshal(bindPayload{
		DependentID:    controlID,
		ObservedID:     observes,
		Catalog:        json.RawMessage(nameJSON),
		InitialValue:   spec.InitialValue,
		IncludeBlank:   spec.IncludeBlank,
		CollapseSpaces: spec.CollapseSpaces,
	})
	if err != nil {
		return "", fmt.Errorf("markup: encode binding: %w", err)
	}

	var builder strings.Builder
	builder.WriteString("<script>\n")
	if emit {
		builder.WriteString("DepSelect.registerCatalog(")
		builder.Write(nameJSON)
		builder.WriteString(", ")
		builder.Write(payload)
		builder.WriteString(");\n")
	}
	builder.WriteString("DepSelect.bind(")
	builder.Write(bind)
	builder.WriteString(");\n</script>\n")
	return builder.String(), nil
}
