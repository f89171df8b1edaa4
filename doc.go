// Package depselect keeps dependent select controls synchronized with the
// fields they observe. A catalog of [text, value, filterKey] rows describes
// every possible option; whenever the observed field's value changes, the
// dependent select is rebuilt from the rows whose filter key matches, the
// previous selection is preserved when it survives the rebuild, and a
// synthetic cascade event fires so further dependents down the chain rebuild
// in turn.
//
// The synchronizer works against a small capability surface (SelectField)
// rather than a concrete page, so the same algorithm drives the in-memory
// document in pkg/dom, terminal sessions in pkg/tui, and the embedded browser
// runtime that pkg/markup wires into generated pages.
package depselect
