package depselect

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-depselect/pkg/catalog"
)

const nbsp = " "

// Synchronize rebuilds the dependent select's options from the catalog rows
// whose filter key equals the observed field's current value.
//
// The reference value decides which rebuilt option starts out selected: on the
// first run it is initialValue (typically the value persisted with the record
// being edited), on every later run it is whatever the dependent held just
// before the rebuild. When includeBlank is set a blank option is prepended
// ahead of the filtered rows and starts out selected when the reference value
// is empty. When collapseSpaces is false, each ASCII space in an option's
// text is replaced with a no-break space so multi-word labels keep their
// width; true leaves texts untouched.
//
// Matching nothing is a normal outcome: the dependent simply ends up with the
// blank option or with no options at all. The cascade event fires exactly once
// per call, after the rebuild, regardless of how many rows matched.
func Synchronize(fields FieldResolver, dependentID, observedID string, cat catalog.Catalog, initialValue string, includeBlank, collapseSpaces, firstRun bool) error {
	if fields == nil {
		return fmt.Errorf("depselect: field resolver is required")
	}

	dependent, err := fields.SelectField(dependentID)
	if err != nil {
		return fmt.Errorf("depselect: dependent field %q: %w", dependentID, err)
	}
	observed, err := fields.Field(observedID)
	if err != nil {
		return fmt.Errorf("depselect: observed field %q: %w", observedID, err)
	}

	reference := dependent.Value()
	if firstRun {
		reference = initialValue
	}

	dependent.ClearOptions()
	if includeBlank {
		dependent.AppendOption(Option{Selected: reference == ""})
	}
	for _, entry := range cat.FilterBy(observed.Value()) {
		text := entry.Text
		if !collapseSpaces {
			text = strings.ReplaceAll(text, " ", nbsp)
		}
		dependent.AppendOption(Option{
			Text:     text,
			Value:    entry.Value,
			Selected: entry.Value == reference,
		})
	}

	dependent.DispatchCascade()
	return nil
}
