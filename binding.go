package depselect

import (
	"fmt"

	"github.com/goliatone/go-depselect/pkg/catalog"
)

// Binding declares one dependent-select relationship on a page.
type Binding struct {
	// DependentID is the element id of the select to rebuild.
	DependentID string
	// ObservedID is the element id of the field whose value drives filtering.
	ObservedID string
	// Catalog holds the [text, value, filterKey] rows backing the dependent.
	Catalog catalog.Catalog
	// InitialValue seeds the selection on the first rebuild only, typically
	// the value persisted with the record being edited.
	InitialValue string
	// IncludeBlank prepends a blank option to every rebuild.
	IncludeBlank bool
	// CollapseSpaces leaves option texts unchanged. When false, ASCII spaces
	// in texts become no-break spaces.
	CollapseSpaces bool
}

// Validate reports structural problems with the binding. A select observing
// itself would rebuild forever, so that shape is rejected here; longer cycles
// through several bindings are the integrator's responsibility.
func (b Binding) Validate() error {
	if b.DependentID == "" {
		return fmt.Errorf("depselect: dependent field id is required")
	}
	if b.ObservedID == "" {
		return fmt.Errorf("depselect: observed field id is required")
	}
	if b.DependentID == b.ObservedID {
		return fmt.Errorf("depselect: field %q cannot observe itself", b.DependentID)
	}
	return nil
}

// Page is the host surface a Binder wires bindings onto: field resolution plus
// event subscription. Hosts invoke handlers synchronously, in registration
// order, on a single goroutine; a handler runs to completion (including any
// nested dispatches it triggers) before the next one starts.
type Page interface {
	FieldResolver

	// On registers handler for the named event on the element with id.
	On(id, event string, handler func()) error
}

// Binder attaches bindings to a page. For each binding it subscribes to the
// observed field's native change event and to cascade events arriving from
// upstream rebuilds, then synchronizes once so the dependent reflects the
// page's initial state.
type Binder struct {
	page    Page
	onError func(Binding, error)
}

// BinderOption customises Binder construction.
type BinderOption func(*Binder)

// WithErrorHandler routes synchronization failures raised inside event
// handlers, where no caller is waiting on an error return. Without a handler
// such failures are dropped.
func WithErrorHandler(fn func(Binding, error)) BinderOption {
	return func(b *Binder) {
		if fn != nil {
			b.onError = fn
		}
	}
}

// NewBinder creates a binder over the supplied page.
func NewBinder(page Page, opts ...BinderOption) (*Binder, error) {
	if page == nil {
		return nil, fmt.Errorf("depselect: page is required")
	}
	b := &Binder{
		page:    page,
		onError: func(Binding, error) {},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b, nil
}

// Bind validates the binding, subscribes to the observed field's change and
// cascade events, and runs the first synchronization. The first run uses the
// binding's InitialValue as the selection reference; every rebuild triggered
// by events afterwards preserves the dependent's then-current value instead.
func (b *Binder) Bind(binding Binding) error {
	if err := binding.Validate(); err != nil {
		return err
	}

	resync := func() {
		if err := b.sync(binding, false); err != nil {
			b.onError(binding, err)
		}
	}
	if err := b.page.On(binding.ObservedID, EventChange, resync); err != nil {
		return fmt.Errorf("depselect: bind %q: %w", binding.DependentID, err)
	}
	if err := b.page.On(binding.ObservedID, EventCascade, resync); err != nil {
		return fmt.Errorf("depselect: bind %q: %w", binding.DependentID, err)
	}

	return b.sync(binding, true)
}

// BindAll binds each binding in order, stopping at the first failure. Bind
// dependents in dependency order: a select must be bound before the selects
// that observe it, so first-run rebuilds see already-synchronized upstream
// values.
func (b *Binder) BindAll(bindings ...Binding) error {
	for _, binding := range bindings {
		if err := b.Bind(binding); err != nil {
			return err
		}
	}
	return nil
}

func (b *Binder) sync(binding Binding, firstRun bool) error {
	return Synchronize(
		b.page,
		binding.DependentID,
		binding.ObservedID,
		binding.Catalog,
		binding.InitialValue,
		binding.IncludeBlank,
		binding.CollapseSpaces,
		firstRun,
	)
}
