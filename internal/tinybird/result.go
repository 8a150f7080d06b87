package tinybird

import (
	"encoding/json"
	"strconv"
)

// Result is the JSON envelope returned by the SQL endpoint.
type Result struct {
	Meta                   []ColumnMeta `json:"meta"`
	Data                   []Row        `json:"data"`
	Rows                   int          `json:"rows"`
	RowsBeforeLimitAtLeast int          `json:"rows_before_limit_at_least"`
}

// ColumnMeta describes one column of the result set.
type ColumnMeta struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Row is a single result row keyed by column alias. Aggregates may arrive
// as JSON numbers or as strings (Tinybird serializes wide integers as
// strings), so accessors coerce both and default to zero instead of
// failing on missing or malformed fields.
type Row map[string]json.RawMessage

// Float returns the named column as a float64, or 0 when absent or
// non-numeric.
func (r Row) Float(key string) float64 {
	raw, ok := r[key]
	if !ok {
		return 0
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}

	return 0
}

// Int returns the named column as an int64, or 0 when absent or
// non-numeric.
func (r Row) Int(key string) int64 {
	return int64(r.Float(key))
}

// String returns the named column as a string, or "" when absent.
func (r Row) String(key string) string {
	raw, ok := r[key]
	if !ok {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	return string(raw)
}
