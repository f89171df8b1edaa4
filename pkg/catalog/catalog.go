package catalog

// Entry is a single dependent-select option: the text shown to the user, the
// value submitted with the form, and the filter key that ties the entry to one
// value of the observed field. Entries are plain data; nothing here validates
// or deduplicates them.
type Entry struct {
	Text      string
	Value     string
	FilterKey string
}

// Catalog is an ordered collection of entries. Order is meaningful: filtered
// subsets and rendered option lists preserve it.
type Catalog []Entry

// FilterBy returns the entries whose FilterKey equals key, preserving catalog
// order. Comparison is exact string equality. An empty result is a normal
// outcome, not an error.
func (c Catalog) FilterBy(key string) Catalog {
	var out Catalog
	for _, entry := range c {
		if entry.FilterKey == key {
			out = append(out, entry)
		}
	}
	return out
}

// FilterKeys returns the distinct filter keys in first-appearance order.
func (c Catalog) FilterKeys() []string {
	seen := make(map[string]struct{}, len(c))
	var keys []string
	for _, entry := range c {
		if _, ok := seen[entry.FilterKey]; ok {
			continue
		}
		seen[entry.FilterKey] = struct{}{}
		keys = append(keys, entry.FilterKey)
	}
	return keys
}

// Find returns the first entry whose Value equals value.
func (c Catalog) Find(value string) (Entry, bool) {
	for _, entry := range c {
		if entry.Value == value {
			return entry, true
		}
	}
	return Entry{}, false
}

// Clone returns an independent copy of the catalog.
func (c Catalog) Clone() Catalog {
	if c == nil {
		return nil
	}
	out := make(Catalog, len(c))
	copy(out, c)
	return out
}
