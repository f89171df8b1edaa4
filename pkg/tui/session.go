package tui

import (
	"context"
	"fmt"
	"strings"

	depselect "github.com/goliatone/go-depselect"
	"github.com/goliatone/go-depselect/pkg/catalog"
	"github.com/goliatone/go-depselect/pkg/dom"
)

// blankChoice stands in for the empty option's text, which a terminal list
// cannot show as an empty row. The recorded value stays empty.
const blankChoice = "(blank)"

// RootField is the chain's first prompt, the field every later step filters
// from. With Options set it renders as a select, otherwise as free input.
type RootField struct {
	Name    string
	Label   string
	Options []string
	Default string
}

// Step is one dependent select in the chain. Its option list is rebuilt from
// the previous answer: only catalog entries whose filter key equals that
// answer are offered, and the entry matching InitialValue starts selected.
type Step struct {
	Name           string
	Label          string
	Catalog        catalog.Catalog
	InitialValue   string
	IncludeBlank   bool
	CollapseSpaces bool
}

// Chain describes a linear cascade: the root field, then each dependent step
// filtering on the answer before it. Fan-out graphs belong to the page
// binder; a terminal walkthrough follows one path.
type Chain struct {
	Root  RootField
	Steps []Step
}

func (c Chain) validate() error {
	if strings.TrimSpace(c.Root.Name) == "" {
		return fmt.Errorf("tui: chain root needs a name")
	}
	seen := map[string]struct{}{c.Root.Name: {}}
	for _, step := range c.Steps {
		name := strings.TrimSpace(step.Name)
		if name == "" {
			return fmt.Errorf("tui: every step needs a name")
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("tui: step %q appears twice in the chain", name)
		}
		seen[name] = struct{}{}
	}
	return nil
}

// Session prompts through chains with a swappable driver. Each run builds an
// in-memory page and binds the chain onto it, so the walkthrough goes through
// the same rebuild engine a browser page does: filtering, blank options,
// space conversion, and selection restoration all come out of the bindings
// rather than a parallel reimplementation.
type Session struct {
	driver   PromptDriver
	pageSize int
}

// NewSession creates a session backed by an interactive terminal driver.
func NewSession(opts ...Option) *Session {
	s := &Session{driver: &surveyDriver{}}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Run walks the chain and returns the answer for every field by name. An
// empty filter result is not an error: the step records an empty value and
// the walk continues, mirroring how an empty select behaves in the page.
func (s *Session) Run(ctx context.Context, chain Chain) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := chain.validate(); err != nil {
		return nil, err
	}

	page, err := newChainPage(chain)
	if err != nil {
		return nil, err
	}

	if err := s.promptRoot(ctx, page, chain.Root); err != nil {
		return nil, err
	}

	observed := chain.Root.Name
	for _, step := range chain.Steps {
		if err := s.promptStep(ctx, page, step, observed); err != nil {
			return nil, err
		}
		observed = step.Name
	}

	return page.values(chain)
}

func (s *Session) promptRoot(ctx context.Context, page *chainPage, root RootField) error {
	label := root.Label
	if label == "" {
		label = root.Name
	}

	if len(root.Options) == 0 {
		value, err := s.driver.Input(ctx, InputConfig{Message: label, Default: root.Default})
		if err != nil {
			return err
		}
		input, err := page.doc.Input(root.Name)
		if err != nil {
			return err
		}
		input.ChangeValue(value)
		return page.syncErr
	}

	sel, err := page.doc.Select(root.Name)
	if err != nil {
		return err
	}
	idx, err := s.driver.Select(ctx, SelectConfig{
		Message:      label,
		Options:      root.Options,
		DefaultIndex: selectedIndex(sel.Options()),
		PageSize:     s.pageSize,
	})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(root.Options) {
		return fmt.Errorf("tui: selection for %s out of range", root.Name)
	}
	sel.ChangeValue(root.Options[idx])
	return page.syncErr
}

// promptStep reads the step's live options off the page and applies the
// answer as a user edit, so downstream selects rebuild before their turn.
func (s *Session) promptStep(ctx context.Context, page *chainPage, step Step, observed string) error {
	label := step.Label
	if label == "" {
		label = step.Name
	}

	sel, err := page.doc.Select(step.Name)
	if err != nil {
		return err
	}
	options := sel.Options()
	if len(options) == 0 {
		key, err := page.fieldValue(observed)
		if err != nil {
			return err
		}
		return s.driver.Info(ctx, fmt.Sprintf("%s: no options match %q", label, key))
	}

	texts := make([]string, len(options))
	for i, opt := range options {
		texts[i] = opt.Text
		if texts[i] == "" {
			texts[i] = blankChoice
		}
	}

	idx, err := s.driver.Select(ctx, SelectConfig{
		Message:      label,
		Options:      texts,
		DefaultIndex: selectedIndex(options),
		PageSize:     s.pageSize,
	})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(options) {
		return fmt.Errorf("tui: selection for %s out of range", step.Name)
	}
	sel.ChangeValue(options[idx].Value)
	return page.syncErr
}

// chainPage is the in-memory page a walk runs against: the root control, one
// empty select per step, and the bindings between them. First-run
// synchronization happens at construction, exactly as it would on page load.
type chainPage struct {
	doc     *dom.Document
	syncErr error
}

func newChainPage(chain Chain) (*chainPage, error) {
	doc, err := dom.ParseString("<body></body>")
	if err != nil {
		return nil, err
	}
	page := &chainPage{doc: doc}

	if len(chain.Root.Options) > 0 {
		root, err := doc.CreateSelect(chain.Root.Name)
		if err != nil {
			return nil, err
		}
		for _, option := range chain.Root.Options {
			root.AppendOption(depselect.Option{
				Text:     option,
				Value:    option,
				Selected: option == chain.Root.Default,
			})
		}
	} else if _, err := doc.CreateInput(chain.Root.Name, chain.Root.Default); err != nil {
		return nil, err
	}

	for _, step := range chain.Steps {
		if _, err := doc.CreateSelect(step.Name); err != nil {
			return nil, err
		}
	}

	binder, err := depselect.NewBinder(doc, depselect.WithErrorHandler(func(_ depselect.Binding, err error) {
		if page.syncErr == nil {
			page.syncErr = err
		}
	}))
	if err != nil {
		return nil, err
	}

	observed := chain.Root.Name
	bindings := make([]depselect.Binding, 0, len(chain.Steps))
	for _, step := range chain.Steps {
		bindings = append(bindings, depselect.Binding{
			DependentID:    step.Name,
			ObservedID:     observed,
			Catalog:        step.Catalog,
			InitialValue:   step.InitialValue,
			IncludeBlank:   step.IncludeBlank,
			CollapseSpaces: step.CollapseSpaces,
		})
		observed = step.Name
	}
	if err := binder.BindAll(bindings...); err != nil {
		return nil, err
	}
	if page.syncErr != nil {
		return nil, page.syncErr
	}
	return page, nil
}

func (p *chainPage) fieldValue(id string) (string, error) {
	field, err := p.doc.Field(id)
	if err != nil {
		return "", err
	}
	return field.Value(), nil
}

func (p *chainPage) values(chain Chain) (map[string]string, error) {
	out := make(map[string]string, len(chain.Steps)+1)
	names := make([]string, 0, len(chain.Steps)+1)
	names = append(names, chain.Root.Name)
	for _, step := range chain.Steps {
		names = append(names, step.Name)
	}
	for _, name := range names {
		value, err := p.fieldValue(name)
		if err != nil {
			return nil, err
		}
		out[name] = value
	}
	return out, nil
}

// selectedIndex mirrors how the page reads a select: the last explicit mark
// wins, and an unmarked control sits on its first option.
func selectedIndex(options []depselect.Option) int {
	for i := len(options) - 1; i >= 0; i-- {
		if options[i].Selected {
			return i
		}
	}
	return 0
}
