package config

// SiteConfig holds per-site overrides for a single scanned website.
// Overrides take precedence over the CSV site-language mapping and the
// global defaults.
type SiteConfig struct {
	// Skip excludes this site from the scan entirely.
	Skip bool `yaml:"skip,omitempty"`

	// Country overrides the country resolved from the site-language
	// mapping. Compared case-insensitively against the profile table keys.
	Country string `yaml:"country,omitempty"`

	// HARFile overrides the capture file name for this site.
	HARFile string `yaml:"harFile,omitempty"`
}

// File represents the structure of the .leakscan configuration file.
type File struct {
	// Sites maps website identifiers (capture directory names) to their
	// overrides.
	Sites map[string]SiteConfig `yaml:"sites,omitempty"`

	// Defaults contains overrides applied to all sites unless a
	// site-specific entry replaces them.
	Defaults SiteConfig `yaml:"defaults,omitempty"`
}

// GetSiteConfig returns the configuration for a specific site,
// merging the site-specific entry over the defaults.
func (cf *File) GetSiteConfig(site string) SiteConfig {
	result := cf.Defaults

	if siteConfig, ok := cf.Sites[site]; ok {
		if siteConfig.Skip {
			result.Skip = true
		}
		if siteConfig.Country != "" {
			result.Country = siteConfig.Country
		}
		if siteConfig.HARFile != "" {
			result.HARFile = siteConfig.HARFile
		}
	}

	return result
}
