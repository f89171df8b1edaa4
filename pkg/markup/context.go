package markup

import "fmt"

// Context tracks what one page render has already emitted: control ids,
// catalog payloads by name, and whether the runtime and theme assets are in
// place. Create one context per page and pass it to every generator call for
// that page; contexts are not safe for concurrent use. A render error leaves
// the context partially updated, so discard it together with the failed page.
type Context struct {
	controls map[string]struct{}
	catalogs map[string]string
	runtime  bool
	themed   bool
}

// NewContext creates an empty per-page render context.
func NewContext() *Context {
	return &Context{
		controls: make(map[string]struct{}),
		catalogs: make(map[string]string),
	}
}

// claimControl reserves a control id for this page. Rendering the same id
// twice is always a bug in the caller's form definition.
func (c *Context) claimControl(id string) error {
	if _, exists := c.controls[id]; exists {
		return fmt.Errorf("markup: control %q already rendered on this page", id)
	}
	c.controls[id] = struct{}{}
	return nil
}

// registerCatalog records a named catalog payload. The first registration
// reports emit=true so the caller writes the data into the page; later
// registrations with the same payload share it silently, while a different
// payload under an established name is an error rather than a silent clobber.
func (c *Context) registerCatalog(name, payload string) (emit bool, err error) {
	existing, exists := c.catalogs[name]
	if !exists {
		c.catalogs[name] = payload
		return true, nil
	}
	if existing != payload {
		return false, fmt.Errorf("markup: catalog %q already rendered with different contents", name)
	}
	return false, nil
}

// claimRuntime reports whether the runtime script still needs to be emitted,
// flipping the flag on first use.
func (c *Context) claimRuntime() bool {
	if c.runtime {
		return false
	}
	c.runtime = true
	return true
}

// claimTheme works like claimRuntime for the theme asset block.
func (c *Context) claimTheme() bool {
	if c.themed {
		return false
	}
	c.themed = true
	return true
}
