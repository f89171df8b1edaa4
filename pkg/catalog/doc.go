// Package catalog models the data behind dependent selects: ordered
// [text, value, filterKey] triples, the filtering that derives one select's
// options from another field's value, the JSON wire form embedded in pages,
// and loaders plus a named store so several controls can share one data set.
package catalog
