package dom

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	depselect "github.com/goliatone/go-depselect"
)

// Select wraps a <select> element with single-select semantics: at most one
// explicit selection mark, first-option fallback when no mark is set.
type Select struct {
	doc  *Document
	node *html.Node
	id   string
}

// ID returns the element id.
func (s *Select) ID() string { return s.id }

// Value returns the control's current value: the last explicitly selected
// option, the first option when none is marked, or "" for an empty control.
func (s *Select) Value() string {
	options := optionNodes(s.node)
	if len(options) == 0 {
		return ""
	}
	for i := len(options) - 1; i >= 0; i-- {
		if hasAttr(options[i], "selected") {
			return optionValue(options[i])
		}
	}
	return optionValue(options[0])
}

// Options returns the control's options in document order. Selected reflects
// the explicit selection marks as they sit in the markup.
func (s *Select) Options() []depselect.Option {
	var opts []depselect.Option
	for _, node := range optionNodes(s.node) {
		opts = append(opts, depselect.Option{
			Text:     optionText(node),
			Value:    optionValue(node),
			Selected: hasAttr(node, "selected"),
		})
	}
	return opts
}

// ClearOptions removes everything under the select, option groups included.
func (s *Select) ClearOptions() {
	for c := s.node.FirstChild; c != nil; {
		next := c.NextSibling
		s.node.RemoveChild(c)
		c = next
	}
}

// AppendOption adds one option at the end of the control. Appending an option
// with Selected set removes every existing selection mark first, so the last
// selected append wins.
func (s *Select) AppendOption(opt depselect.Option) {
	if opt.Selected {
		for _, existing := range optionNodes(s.node) {
			removeAttr(existing, "selected")
		}
	}

	node := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Option,
		Data:     "option",
		Attr:     []html.Attribute{{Key: "value", Val: opt.Value}},
	}
	if opt.Selected {
		node.Attr = append(node.Attr, html.Attribute{Key: "selected", Val: "selected"})
	}
	if opt.Text != "" {
		node.AppendChild(&html.Node{Type: html.TextNode, Data: opt.Text})
	}
	s.node.AppendChild(node)
}

// SetValue moves the selection mark to the option whose value is v without
// firing any event. When no option carries v, every mark is cleared and the
// control reads as its first option again.
func (s *Select) SetValue(v string) {
	for _, node := range optionNodes(s.node) {
		if optionValue(node) == v {
			setAttr(node, "selected", "selected")
		} else {
			removeAttr(node, "selected")
		}
	}
}

// ChangeValue sets the value the way a user edit would: the selection mark
// moves, then the native change event fires.
func (s *Select) ChangeValue(v string) {
	s.SetValue(v)
	s.doc.Dispatch(s.id, depselect.EventChange)
}

// DispatchCascade fires the cascade event on this control.
func (s *Select) DispatchCascade() {
	s.doc.Dispatch(s.id, depselect.EventCascade)
}

// On registers an event handler on this control.
func (s *Select) On(event string, handler func()) error {
	return s.doc.On(s.id, event, handler)
}

// Input wraps a value-bearing control: <input> or <textarea>.
type Input struct {
	doc  *Document
	node *html.Node
	id   string
}

// ID returns the element id.
func (i *Input) ID() string { return i.id }

// Value returns the input's value attribute, or the text content for a
// textarea.
func (i *Input) Value() string {
	if i.node.DataAtom == atom.Textarea {
		return textContent(i.node)
	}
	return attrValue(i.node, "value")
}

// SetValue updates the input's value without firing any event.
func (i *Input) SetValue(v string) {
	if i.node.DataAtom == atom.Textarea {
		for c := i.node.FirstChild; c != nil; {
			next := c.NextSibling
			i.node.RemoveChild(c)
			c = next
		}
		i.node.AppendChild(&html.Node{Type: html.TextNode, Data: v})
		return
	}
	setAttr(i.node, "value", v)
}

// ChangeValue sets the value the way a user edit would: the value updates,
// then the native change event fires.
func (i *Input) ChangeValue(v string) {
	i.SetValue(v)
	i.doc.Dispatch(i.id, depselect.EventChange)
}

// On registers an event handler on this control.
func (i *Input) On(event string, handler func()) error {
	return i.doc.On(i.id, event, handler)
}

// optionNodes collects the select's options in document order, descending
// into option groups.
func optionNodes(n *html.Node) []*html.Node {
	var opts []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && c.DataAtom == atom.Option {
				opts = append(opts, c)
				continue
			}
			walk(c)
		}
	}
	walk(n)
	return opts
}

// optionValue honors the value attribute even when empty; only a missing
// attribute falls back to the option's text.
func optionValue(n *html.Node) string {
	for _, attr := range n.Attr {
		if attr.Key == "value" {
			return attr.Val
		}
	}
	return optionText(n)
}

// optionText trims ASCII whitespace the way browsers expose option labels.
// No-break spaces are not ASCII whitespace and pass through untouched.
func optionText(n *html.Node) string {
	return strings.Trim(textContent(n), " \t\n\f\r")
}

func attrValue(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, key string) bool {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return true
		}
	}
	return false
}

func setAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func removeAttr(n *html.Node, key string) {
	out := n.Attr[:0]
	for _, attr := range n.Attr {
		if attr.Key != key {
			out = append(out, attr)
		}
	}
	n.Attr = out
}
