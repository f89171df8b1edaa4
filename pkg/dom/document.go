package dom

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	depselect "github.com/goliatone/go-depselect"
)

// Document is a parsed HTML page plus a synchronous event loop. It implements
// depselect.Page.
//
// A document is single-owner state, like the html.Node tree underneath: it is
// not safe for concurrent use. Event handlers run on the caller's goroutine,
// each to completion before the next starts.
type Document struct {
	root      *html.Node
	listeners map[listenerKey][]func()
}

// Parse reads an HTML page into a document.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("dom: parse html: %w", err)
	}
	return &Document{
		root:      root,
		listeners: make(map[listenerKey][]func()),
	}, nil
}

// ParseString reads an HTML page from a string. Fragments are fine; the
// parser wraps them in a full document.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// Field resolves a form control by element id for reading. Selects report
// their selected option's value, inputs their value attribute, textareas
// their text content.
func (d *Document) Field(id string) (depselect.Field, error) {
	node := d.findByID(id)
	if node == nil {
		return nil, fmt.Errorf("dom: element %q not found", id)
	}
	switch node.DataAtom {
	case atom.Select:
		return &Select{doc: d, node: node, id: id}, nil
	case atom.Input, atom.Textarea:
		return &Input{doc: d, node: node, id: id}, nil
	default:
		return nil, fmt.Errorf("dom: element %q is a %s, not a form control", id, node.Data)
	}
}

// SelectField resolves a select control by element id.
func (d *Document) SelectField(id string) (depselect.SelectField, error) {
	sel, err := d.Select(id)
	if err != nil {
		return nil, err
	}
	return sel, nil
}

// Select resolves a select control by element id as its concrete type, which
// adds SetValue, ChangeValue, and Options on top of the capability surface.
func (d *Document) Select(id string) (*Select, error) {
	node := d.findByID(id)
	if node == nil {
		return nil, fmt.Errorf("dom: element %q not found", id)
	}
	if node.DataAtom != atom.Select {
		return nil, fmt.Errorf("dom: element %q is a %s, not a select", id, node.Data)
	}
	return &Select{doc: d, node: node, id: id}, nil
}

// Input resolves an input or textarea by element id as its concrete type.
func (d *Document) Input(id string) (*Input, error) {
	node := d.findByID(id)
	if node == nil {
		return nil, fmt.Errorf("dom: element %q not found", id)
	}
	if node.DataAtom != atom.Input && node.DataAtom != atom.Textarea {
		return nil, fmt.Errorf("dom: element %q is a %s, not an input", id, node.Data)
	}
	return &Input{doc: d, node: node, id: id}, nil
}

// CreateSelect appends an empty select with the given id to the document
// body.
func (d *Document) CreateSelect(id string) (*Select, error) {
	if id == "" {
		return nil, fmt.Errorf("dom: select id is required")
	}
	if d.findByID(id) != nil {
		return nil, fmt.Errorf("dom: element %q already exists", id)
	}
	body := findBody(d.root)
	if body == nil {
		return nil, fmt.Errorf("dom: document has no body")
	}

	node := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Select,
		Data:     "select",
		Attr:     []html.Attribute{{Key: "id", Val: id}},
	}
	body.AppendChild(node)
	return &Select{doc: d, node: node, id: id}, nil
}

// CreateInput appends a text input with the given id and starting value to
// the document body.
func (d *Document) CreateInput(id, value string) (*Input, error) {
	if id == "" {
		return nil, fmt.Errorf("dom: input id is required")
	}
	if d.findByID(id) != nil {
		return nil, fmt.Errorf("dom: element %q already exists", id)
	}
	body := findBody(d.root)
	if body == nil {
		return nil, fmt.Errorf("dom: document has no body")
	}

	node := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Input,
		Data:     "input",
		Attr: []html.Attribute{
			{Key: "id", Val: id},
			{Key: "type", Val: "text"},
			{Key: "value", Val: value},
		},
	}
	body.AppendChild(node)
	return &Input{doc: d, node: node, id: id}, nil
}

// Render serializes the document, rebuilt selects included.
func (d *Document) Render(w io.Writer) error {
	if err := html.Render(w, d.root); err != nil {
		return fmt.Errorf("dom: render: %w", err)
	}
	return nil
}

// HTML returns the serialized document.
func (d *Document) HTML() (string, error) {
	var sb strings.Builder
	if err := d.Render(&sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (d *Document) findByID(id string) *html.Node {
	if id == "" {
		return nil
	}
	return findByID(d.root, id)
}

func findByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode {
		for _, attr := range n.Attr {
			if attr.Key == "id" && attr.Val == id {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == atom.Body {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return buf.String()
}
