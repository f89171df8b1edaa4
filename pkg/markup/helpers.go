package markup

import (
	"sort"
	"strings"
)

// catalogArrayName derives the page-level name for a control's inline rows.
// Store-backed controls share data under their catalog name instead; inline
// rows get a name of their own, derived from the control identity, so
// registration, dedup, and conflict checks work the same way on both paths.
func catalogArrayName(name string) string {
	var builder strings.Builder
	builder.Grow(len(name) + len("_catalog"))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			builder.WriteRune(r)
		default:
			builder.WriteByte('_')
		}
	}
	builder.WriteString("_catalog")
	return builder.String()
}

func sortedAttrKeys(attrs map[string]string) []string {
	if len(attrs) == 0 {
		return nil
	}
	keys := make([]string, 0, len(attrs))
	for key := range attrs {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// reservedAttr reports attributes the generator writes itself; caller values
// for these are ignored rather than duplicated into the element.
func reservedAttr(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "id", "name", "class", "data-observes", "data-catalog", "data-component":
		return true
	default:
		return false
	}
}

// cssVarsStyle renders theme CSS variables as a :root block with sorted keys
// so output stays stable across renders.
func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var builder strings.Builder
	builder.WriteString(":root {\n")
	for _, key := range keys {
		builder.WriteString("  ")
		builder.WriteString(key)
		builder.WriteString(": ")
		builder.WriteString(vars[key])
		builder.WriteString(";\n")
	}
	builder.WriteString("}\n")
	return builder.String()
}
