// Package openapi extracts dependent-select bindings from OpenAPI documents.
// Request body properties opt in through the x-depselect extension, which
// names the observed sibling field and the catalog filtered against it. The
// extractor turns those annotations into Binding values ready to feed the
// markup generator.
package openapi
