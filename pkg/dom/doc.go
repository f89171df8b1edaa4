// Package dom hosts dependent selects in a parsed HTML page. It is the
// concrete implementation of the depselect capability surfaces: controls
// resolve by element id, selects carry browser single-select semantics, and
// events dispatch synchronously on the caller's goroutine. A Binder wired onto
// a Document runs the exact cascade a browser would, and the result serializes
// back out as pre-synchronized markup.
package dom
