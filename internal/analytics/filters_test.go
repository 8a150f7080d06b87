package analytics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"vantage/internal/analytics"
)

func TestCompileFiltersDeterministicOrder(t *testing.T) {
	// Same keys, different insertion order: the compiled text must be
	// identical because clause order follows the allow-list.
	a := analytics.CompileFilters(map[string]string{"country": "US", "path": "/x"})
	b := analytics.CompileFilters(map[string]string{"path": "/x", "country": "US"})

	assert.Equal(t, a, b)
	assert.Equal(t, " AND pathname = '/x' AND country = 'US'", a)
}

func TestCompileFiltersAllowList(t *testing.T) {
	fragment := analytics.CompileFilters(map[string]string{
		"path":        "/pricing",
		"referrer":    "google.com",
		"browserName": "Chrome",
		"country":     "DE",
		"deviceModel": "mobile",
		"siteId":      "evil",
		"drop table":  "x",
	})

	assert.Equal(t,
		" AND pathname = '/pricing' AND referrer = 'google.com' AND browser = 'Chrome' AND country = 'DE' AND device = 'mobile'",
		fragment, "unknown keys must be ignored, known keys emitted in allow-list order")
}

func TestCompileFiltersEmpty(t *testing.T) {
	assert.Equal(t, "", analytics.CompileFilters(nil))
	assert.Equal(t, "", analytics.CompileFilters(map[string]string{"nope": "x"}))
}

func TestCompileFiltersEscapesLiterals(t *testing.T) {
	fragment := analytics.CompileFilters(map[string]string{"path": `/a'b\c`})

	assert.Equal(t, ` AND pathname = '/a\'b\\c'`, fragment)
}
