package analytics

import (
	"vantage/internal/timeframe"
)

// Defaults applied to pagination parameters.
const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// SiteScopedQueryParams contains common parameters for site-scoped queries.
type SiteScopedQueryParams struct {
	SiteID    string
	Dataset   string
	TimeFrame timeframe.TimeFrame
	Filters   map[string]string
	Page      int
	Limit     int
}

// NewSiteScopedQueryParams creates query params with the default dataset
// and sane pagination defaults.
func NewSiteScopedQueryParams(siteID string, tf timeframe.TimeFrame) SiteScopedQueryParams {
	return SiteScopedQueryParams{
		SiteID:    siteID,
		Dataset:   DefaultDataset,
		TimeFrame: tf,
		Filters:   make(map[string]string),
		Page:      DefaultPage,
		Limit:     DefaultLimit,
	}
}

// normalized returns a copy with an empty dataset and out-of-range
// pagination values clamped to the defaults.
func (p SiteScopedQueryParams) normalized() SiteScopedQueryParams {
	if p.Dataset == "" {
		p.Dataset = DefaultDataset
	}
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	return p
}

// withTimeFrame returns a copy of the params targeting another period.
func (p SiteScopedQueryParams) withTimeFrame(tf timeframe.TimeFrame) SiteScopedQueryParams {
	p.TimeFrame = tf
	return p
}
