// Package sites holds the registry of tracked sites. Metrics themselves
// live in the external analytics backend; this registry only maps a site
// identifier to its display name, domain and preferred timezone.
package sites

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// SiteNotFoundError represents an error when a site is not found
type SiteNotFoundError struct {
	SiteID string
}

func (e *SiteNotFoundError) Error() string {
	return fmt.Sprintf("site not found: %s", e.SiteID)
}

// NewSiteNotFoundError creates a new SiteNotFoundError
func NewSiteNotFoundError(siteID string) *SiteNotFoundError {
	return &SiteNotFoundError{SiteID: siteID}
}

// Site represents a tracked site
type Site struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	SiteID    string    `gorm:"uniqueIndex;not null" json:"site_id"` // Identifier used in the analytics dataset
	Name      string    `json:"name"`
	Domain    string    `gorm:"not null" json:"domain"` // Base domain, e.g., "example.com"
	Timezone  string    `gorm:"default:'UTC'" json:"timezone"`
	CreatedAt time.Time `json:"created_at"`
}

// GetSiteOrNotFound retrieves a Site by its analytics identifier.
func GetSiteOrNotFound(db *gorm.DB, siteID string) (*Site, error) {
	var site Site
	if err := db.Where("site_id = ?", siteID).First(&site).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, NewSiteNotFoundError(siteID)
		}
		return nil, fmt.Errorf("unexpected error querying site: %w", err)
	}
	return &site, nil
}

// ListSites returns all registered sites ordered by creation time.
func ListSites(db *gorm.DB) ([]Site, error) {
	var all []Site
	if err := db.Order("created_at ASC").Find(&all).Error; err != nil {
		return nil, fmt.Errorf("listing sites: %w", err)
	}
	return all, nil
}

// CreateSite validates and registers a new site.
func CreateSite(db *gorm.DB, site Site) (*Site, error) {
	site.SiteID = strings.TrimSpace(site.SiteID)
	site.Domain = strings.TrimSpace(strings.ToLower(site.Domain))

	if site.SiteID == "" {
		return nil, fmt.Errorf("site_id is required")
	}
	if site.Domain == "" {
		return nil, fmt.Errorf("domain is required")
	}

	if site.Timezone == "" {
		site.Timezone = "UTC"
	}
	if _, err := time.LoadLocation(site.Timezone); err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", site.Timezone, err)
	}

	if site.Name == "" {
		site.Name = site.Domain
	}

	if err := db.Create(&site).Error; err != nil {
		return nil, fmt.Errorf("creating site: %w", err)
	}

	return &site, nil
}
