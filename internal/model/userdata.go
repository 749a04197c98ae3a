package model

import "sort"

// Record is one flat set of user-data fields, field name to value.
// Values are kept as any because the source JSON mixes strings with
// numeric fields; only string values participate in search-string
// generation.
type Record map[string]any

// UserData holds the PII that was submitted to sites during the crawl.
// General contains country-independent fields (name, email parts, card
// data); Profiles maps a country name to the country-specific fields
// (phone formats, address, zip code).
//
// UserData is loaded once per run and treated as immutable.
type UserData struct {
	// General contains the country-independent user fields.
	General Record `json:"general"`

	// Profiles maps lowercase country names to country-specific fields.
	Profiles map[string]Record `json:"profile"`
}

// String returns the string value of the named field, or the empty string
// when the field is absent or not a string. Missing fields degrading to ""
// is deliberate: downstream search-string generation proceeds with
// whatever partial data is available.
func (r Record) String(key string) string {
	if v, ok := r[key].(string); ok {
		return v
	}
	return ""
}

// StringKeys returns the names of all string-valued fields in r,
// sorted for deterministic iteration.
func (r Record) StringKeys() []string {
	keys := make([]string, 0, len(r))
	for k, v := range r {
		if _, ok := v.(string); ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}
