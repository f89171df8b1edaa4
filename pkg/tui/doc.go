// Package tui walks a dependent-select chain in the terminal. Each step
// rebuilds its option list from the previous answer the same way the page
// runtime does, so catalog authors can preview cascades, filter keys, and
// initial selections without loading a browser.
package tui
