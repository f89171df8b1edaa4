// Package preview serves a self-contained demo page for dependent selects:
// the generated markup, the browser runtime, and a small JSON API exposing
// the configured catalogs. It exists so catalog and binding changes can be
// exercised in a real browser without wiring the generator into a host
// application first.
package preview
