package depselect_test

import (
	"fmt"

	depselect "github.com/goliatone/go-depselect"
	"github.com/goliatone/go-depselect/pkg/catalog"
)

func statesCatalog() catalog.Catalog {
	return catalog.Catalog{
		{Text: "Alabama", Value: "1", FilterKey: "1"},
		{Text: "Alaska", Value: "2", FilterKey: "1"},
		{Text: "Quebec", Value: "3", FilterKey: "2"},
	}
}

// fakePage is an in-memory Page: named selects and inputs plus a synchronous
// listener table, enough to drive the synchronizer without a real document.
type fakePage struct {
	selects   map[string]*fakeSelect
	inputs    map[string]string
	listeners map[string][]func()
}

func newFakePage() *fakePage {
	return &fakePage{
		selects:   make(map[string]*fakeSelect),
		inputs:    make(map[string]string),
		listeners: make(map[string][]func()),
	}
}

func (p *fakePage) addSelect(id string, opts ...depselect.Option) *fakeSelect {
	f := &fakeSelect{id: id, page: p, options: opts}
	p.selects[id] = f
	return f
}

func (p *fakePage) addInput(id, value string) {
	p.inputs[id] = value
}

func (p *fakePage) Field(id string) (depselect.Field, error) {
	if f, ok := p.selects[id]; ok {
		return f, nil
	}
	if value, ok := p.inputs[id]; ok {
		return fakeInput(value), nil
	}
	return nil, fmt.Errorf("no field %q", id)
}

func (p *fakePage) SelectField(id string) (depselect.SelectField, error) {
	f, ok := p.selects[id]
	if !ok {
		return nil, fmt.Errorf("no select %q", id)
	}
	return f, nil
}

func (p *fakePage) On(id, event string, handler func()) error {
	if _, ok := p.selects[id]; !ok {
		if _, ok := p.inputs[id]; !ok {
			return fmt.Errorf("no field %q", id)
		}
	}
	key := id + "\x00" + event
	p.listeners[key] = append(p.listeners[key], handler)
	return nil
}

func (p *fakePage) dispatch(id, event string) {
	key := id + "\x00" + event
	handlers := append([]func(){}, p.listeners[key]...)
	for _, handler := range handlers {
		handler()
	}
}

type fakeInput string

func (f fakeInput) Value() string { return string(f) }

type fakeSelect struct {
	id       string
	page     *fakePage
	options  []depselect.Option
	cascades int
}

func (f *fakeSelect) Value() string {
	for i := len(f.options) - 1; i >= 0; i-- {
		if f.options[i].Selected {
			return f.options[i].Value
		}
	}
	if len(f.options) > 0 {
		return f.options[0].Value
	}
	return ""
}

func (f *fakeSelect) ClearOptions() {
	f.options = nil
}

func (f *fakeSelect) AppendOption(opt depselect.Option) {
	if opt.Selected {
		for i := range f.options {
			f.options[i].Selected = false
		}
	}
	f.options = append(f.options, opt)
}

func (f *fakeSelect) DispatchCascade() {
	f.cascades++
	f.page.dispatch(f.id, depselect.EventCascade)
}

// change simulates a user edit: move the selection mark, then fire the native
// change event.
func (f *fakeSelect) change(value string) {
	for i := range f.options {
		f.options[i].Selected = f.options[i].Value == value
	}
	f.page.dispatch(f.id, depselect.EventChange)
}

func optionTexts(opts []depselect.Option) []string {
	texts := make([]string, len(opts))
	for i, opt := range opts {
		texts[i] = opt.Text
	}
	return texts
}
