// Package markup generates the server-side HTML for dependent selects: the
// control with its label and description chrome, the inline catalog data, and
// the script that binds the browser runtime to it. A render Context tracks
// what a page has already emitted so shared catalogs are written once and
// conflicting reuses fail at generation time instead of silently clobbering
// each other in the page.
package markup
