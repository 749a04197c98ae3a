// Package profile resolves the country profile to use for a scanned site.
//
// Resolution is two-staged: the site identifier maps to a country through
// the site-language mapping, and the country selects a profile record from
// the user-data file. Both stages degrade rather than fail: unknown sites
// fall back to the default country, and unknown countries yield an empty
// profile so detection proceeds with whatever data is available.
package profile
