package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	json "github.com/goccy/go-json"

	"github.com/goliatone/go-depselect/pkg/catalog"
	"github.com/goliatone/go-depselect/pkg/markup"
)

// ExtensionKey is the vendor extension that marks a request body property as
// a dependent select.
const ExtensionKey = "x-depselect"

// Options controls document loading.
type Options struct {
	// ResolveReferences validates the document and follows external refs.
	ResolveReferences bool
	// AllowPartialDocuments accepts documents without paths instead of
	// failing, which suits specs still under construction.
	AllowPartialDocuments bool
}

// Binding is one dependent select declared in an OpenAPI document.
type Binding struct {
	// Field is the request body property carrying the extension.
	Field string
	// Observes names the sibling property whose value drives filtering. A
	// leading # marks a literal element id on the host page instead.
	Observes string
	// CatalogName references a catalog registered with the consumer's store.
	CatalogName string
	// Catalog holds rows embedded directly in the document.
	Catalog catalog.Catalog
	// InitialValue seeds the first rebuild's selection.
	InitialValue string
	// Label comes from the property's title.
	Label string
	// Description comes from the property's description.
	Description string
	// Required reflects the schema's required list.
	Required       bool
	IncludeBlank   bool
	CollapseSpaces bool
}

// Spec converts the binding into a markup spec. Sibling property names
// resolve to the element ids the generator assigns its own controls; a
// leading # passes the remainder through as a literal id.
func (b Binding) Spec() markup.Spec {
	observes := b.Observes
	if rest, ok := strings.CutPrefix(observes, "#"); ok {
		observes = rest
	} else {
		observes = markup.ControlID(observes)
	}
	return markup.Spec{
		Name:           b.Field,
		Observes:       observes,
		CatalogName:    b.CatalogName,
		Catalog:        b.Catalog,
		InitialValue:   b.InitialValue,
		Label:          b.Label,
		Description:    b.Description,
		Required:       b.Required,
		IncludeBlank:   b.IncludeBlank,
		CollapseSpaces: b.CollapseSpaces,
	}
}

// Extractor pulls bindings out of OpenAPI documents using kin-openapi.
type Extractor struct {
	options Options
}

// New constructs an Extractor with the given options.
func New(options Options) *Extractor {
	return &Extractor{options: options}
}

// Bindings loads a document and collects the dependent selects declared on
// request body properties, keyed by operation id. Operations without any
// x-depselect annotations do not appear in the result.
func (e *Extractor) Bindings(ctx context.Context, data []byte) (map[string][]Binding, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: e.options.ResolveReferences,
	}
	spec, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if e.options.ResolveReferences {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi: validate: %w", err)
		}
	}

	if spec.Paths == nil || spec.Paths.Len() == 0 {
		if e.options.AllowPartialDocuments {
			return map[string][]Binding{}, nil
		}
		return nil, errors.New("openapi: document does not contain any paths")
	}

	result := make(map[string][]Binding)
	for path, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for _, candidate := range []struct {
			method    string
			operation *openapi3.Operation
		}{
			{"GET", item.Get},
			{"PUT", item.Put},
			{"POST", item.Post},
			{"DELETE", item.Delete},
			{"PATCH", item.Patch},
			{"HEAD", item.Head},
			{"OPTIONS", item.Options},
			{"TRACE", item.Trace},
		} {
			if err := e.collect(ctx, result, candidate.method, path, candidate.operation); err != nil {
				return nil, err
			}
		}
	}
	return result, nil
}

func (e *Extractor) collect(ctx context.Context, target map[string][]Binding, method, path string, operation *openapi3.Operation) error {
	if ctx.Err() != nil || operation == nil {
		return nil
	}
	schema := requestSchema(operation.RequestBody)
	if schema == nil || len(schema.Properties) == 0 {
		return nil
	}

	opID := operation.OperationID
	if opID == "" {
		opID = strings.ToLower(method) + ":" + path
	}

	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	var bindings []Binding
	for name, ref := range schema.Properties {
		if ref == nil || ref.Value == nil {
			continue
		}
		raw, ok := ref.Value.Extensions[ExtensionKey]
		if !ok {
			continue
		}
		binding, err := decodeBinding(name, raw)
		if err != nil {
			return fmt.Errorf("openapi: operation %s, field %s: %w", opID, name, err)
		}
		binding.Label = ref.Value.Title
		binding.Description = ref.Value.Description
		binding.Required = required[name]
		bindings = append(bindings, binding)
	}
	if len(bindings) == 0 {
		return nil
	}
	sort.Slice(bindings, func(i, j int) bool { return bindings[i].Field < bindings[j].Field })
	target[opID] = append(target[opID], bindings...)
	return nil
}

// requestSchema picks the schema the form is built from, preferring the
// form-oriented media types before falling back to whatever the operation
// declares.
func requestSchema(requestBody *openapi3.RequestBodyRef) *openapi3.Schema {
	if requestBody == nil || requestBody.Value == nil {
		return nil
	}
	content := requestBody.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil && mt.Schema.Value != nil {
			return mt.Schema.Value
		}
	}
	for _, mt := range content {
		if mt.Schema != nil && mt.Schema.Value != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

type extensionPayload struct {
	Observes       string          `json:"observes"`
	Catalog        string          `json:"catalog"`
	Rows           catalog.Catalog `json:"rows"`
	InitialValue   flexString      `json:"initialValue"`
	IncludeBlank   bool            `json:"includeBlank"`
	CollapseSpaces bool            `json:"collapseSpaces"`
}

// flexString also accepts numeric scalars, which YAML documents produce for
// unquoted initial values.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = flexString(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err == nil {
		*s = flexString(num.String())
		return nil
	}
	return fmt.Errorf("value %s is not a string or number", string(data))
}

// decodeBinding round-trips the extension value through JSON so YAML and JSON
// documents decode identically.
func decodeBinding(field string, raw any) (Binding, error) {
	encoded, err := json.Marshal(raw)
	if err != nil {
		return Binding{}, fmt.Errorf("encode %s extension: %w", ExtensionKey, err)
	}
	var payload extensionPayload
	if err := json.Unmarshal(encoded, &payload); err != nil {
		return Binding{}, fmt.Errorf("decode %s extension: %w", ExtensionKey, err)
	}

	observes := strings.TrimSpace(payload.Observes)
	if observes == "" {
		return Binding{}, fmt.Errorf("%s extension needs an observes field", ExtensionKey)
	}
	catalogName := strings.TrimSpace(payload.Catalog)
	if catalogName != "" && payload.Rows != nil {
		return Binding{}, fmt.Errorf("%s extension sets both catalog and rows", ExtensionKey)
	}
	if catalogName == "" && payload.Rows == nil {
		return Binding{}, fmt.Errorf("%s extension needs catalog or rows", ExtensionKey)
	}

	return Binding{
		Field:          field,
		Observes:       observes,
		CatalogName:    catalogName,
		Catalog:        payload.Rows,
		InitialValue:   string(payload.InitialValue),
		IncludeBlank:   payload.IncludeBlank,
		CollapseSpaces: payload.CollapseSpaces,
	}, nil
}

// Order sorts bindings so every control renders after the field it observes.
// The browser runtime subscribes at script execution time, so a dependent
// emitted ahead of its observed control would bind against a missing element.
// Order is stable for unrelated bindings and fails on observation cycles.
func Order(bindings []Binding) ([]Binding, error) {
	byField := make(map[string]int, len(bindings))
	for i, b := range bindings {
		byField[b.Field] = i
	}

	const (
		unvisited = iota
		visiting
		done
	)
	state := make([]int, len(bindings))
	ordered := make([]Binding, 0, len(bindings))

	var visit func(int) error
	visit = func(i int) error {
		switch state[i] {
		case done:
			return nil
		case visiting:
			return fmt.Errorf("openapi: field %s participates in an observes cycle", bindings[i].Field)
		}
		state[i] = visiting
		if j, ok := byField[bindings[i].Observes]; ok && j != i {
			if err := visit(j); err != nil {
				return err
			}
		} else if ok {
			return fmt.Errorf("openapi: field %s observes itself", bindings[i].Field)
		}
		state[i] = done
		ordered = append(ordered, bindings[i])
		return nil
	}

	for i := range bindings {
		if err := visit(i); err != nil {
			return nil, err
		}
	}
	return ordered, nil
}
