package analytics

import (
	"fmt"
	"strings"
)

// filterableFields is the allow-list of fields that may appear in a filter
// set, in the fixed order their clauses are emitted. Emission order follows
// this list, never map insertion order, so compiled fragments are
// deterministic.
var filterableFields = []Field{
	FieldPath,
	FieldReferrer,
	FieldBrowserName,
	FieldCountry,
	FieldDeviceModel,
}

// CompileFilters translates a filter set into a textual predicate fragment
// of exact-equality clauses, each prefixed with " AND". Keys outside the
// allow-list are ignored. Values are escaped before interpolation since the
// backend offers no parameter binding.
func CompileFilters(filters map[string]string) string {
	if len(filters) == 0 {
		return ""
	}

	var b strings.Builder
	for _, field := range filterableFields {
		value, ok := filters[string(field)]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, " AND %s = '%s'", columnFor[field], escapeLiteral(value))
	}

	return b.String()
}

// escapeLiteral makes a string safe for single-quoted interpolation.
func escapeLiteral(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}
