package markup

// ChromeClass is a typed identifier for the semantic CSS classes emitted
// around generated controls.
type ChromeClass string

const (
	ClassField       ChromeClass = "depselect-field"
	ClassLabel       ChromeClass = "depselect-label"
	ClassControl     ChromeClass = "depselect-control"
	ClassDescription ChromeClass = "depselect-description"
)
