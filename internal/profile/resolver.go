package profile

import (
	"github.com/jlogtenberg/leakscan/internal/model"
)

// Resolver maps site identifiers to country profiles.
type Resolver struct {
	// siteCountry maps site identifiers to lowercase country names.
	siteCountry map[string]string

	// profiles maps lowercase country names to profile records.
	profiles map[string]model.Record

	// defaultCountry is used for sites absent from siteCountry.
	defaultCountry string
}

// NewResolver creates a Resolver over the given site-language mapping and
// profile table. defaultCountry is used when a site has no mapping entry.
func NewResolver(siteCountry map[string]string, profiles map[string]model.Record, defaultCountry string) *Resolver {
	if siteCountry == nil {
		siteCountry = make(map[string]string)
	}
	if profiles == nil {
		profiles = make(map[string]model.Record)
	}
	return &Resolver{
		siteCountry:    siteCountry,
		profiles:       profiles,
		defaultCountry: defaultCountry,
	}
}

// Country returns the country for the given site, falling back to the
// default country when the site is absent from the mapping.
func (r *Resolver) Country(site string) string {
	if country, ok := r.siteCountry[site]; ok {
		return country
	}
	return r.defaultCountry
}

// Profile returns the profile record for the given country, or an empty
// record when the country is absent from the profile table. No error is
// raised: detection proceeds with partial data, and the degenerate search
// strings that result are an accepted consequence.
func (r *Resolver) Profile(country string) model.Record {
	if p, ok := r.profiles[country]; ok {
		return p
	}
	return model.Record{}
}

// Resolve returns the country and profile record for the given site.
func (r *Resolver) Resolve(site string) (string, model.Record) {
	country := r.Country(site)
	return country, r.Profile(country)
}
