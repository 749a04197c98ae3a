// Package search generates the search strings the leak detector looks for.
//
// The collection is derived from the general user data and the site's
// country profile, with mutations that cover how sites commonly reformat
// the raw fields (combined full name and address, stripped phone prefix,
// spaceless card number, site-tagged email). Duplicates and empty strings
// are kept: the collection mirrors what was actually submitted during the
// crawl, and filtering it would change detection parity with the recorded
// results.
//
// The collection is rebuilt per site because the site-tagged email variant
// embeds the site identifier and the profile fields differ per country.
package search
