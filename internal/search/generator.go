package search

import (
	"fmt"
	"strings"

	"github.com/jlogtenberg/leakscan/internal/model"
)

// generalExclusions are general fields left out of the catch-all pass.
// These hold short numeric values (dates, CVV, expiry parts) or email
// halves that occur in traffic far too often outside of leaks to be
// distinctive search strings.
var generalExclusions = map[string]bool{
	"date_of_birth":            true,
	"credit_card_expiry_month": true,
	"credit_card_expiry_year":  true,
	"credit_card_cvv":          true,
	"email_prefix":             true,
	"email_suffix":             true,
}

// profileExclusions are profile fields left out of the catch-all pass.
// payment_options is configuration, not PII; the raw house number is
// already folded into the full-address variant.
var profileExclusions = map[string]bool{
	"payment_options": true,
	"house_number":    true,
}

// dutchCountryCode triggers the spaced zip-code variant: Dutch postal
// codes are written both as "1234AB" and "1234 AB".
const dutchCountryCode = "+31"

// Strings produces the ordered search-string collection for one site.
//
// The first part of the collection applies fixed mutation rules to the raw
// fields; the remainder appends every other string-valued field from the
// general data and the profile, minus the exclusions. Missing source
// fields default to the empty string, which can yield low-signal entries
// (a lone "@" email when no email data is present). Those entries stay in
// the collection; the detector decides what is searchable.
func Strings(general, profile model.Record, site string) []string {
	searchStrings := []string{}

	// Email, basic and site-tagged. The crawler registers with
	// prefix+site@suffix so leaks can be attributed to a single site.
	emailPrefix := general.String("email_prefix")
	emailSuffix := general.String("email_suffix")
	searchStrings = append(searchStrings,
		fmt.Sprintf("%s@%s", emailPrefix, emailSuffix),
		fmt.Sprintf("%s+%s@%s", emailPrefix, site, emailSuffix),
	)

	// Full name, instead of only first and last name separately.
	fullName := strings.TrimSpace(general.String("first_name") + " " + general.String("last_name"))
	searchStrings = append(searchStrings, fullName)

	// Phone number in local format, international format, and
	// international format without the leading '+'.
	phoneNumber := profile.String("local_format")
	international := profile.String("international_format")
	searchStrings = append(searchStrings,
		phoneNumber,
		international,
		strings.TrimPrefix(international, "+"),
	)

	// Dutch zip codes also appear with a space between digits and letters.
	if profile.String("country_code") == dutchCountryCode {
		zipCode := profile.String("zip_code")
		searchStrings = append(searchStrings, spacedZip(zipCode))
	}

	// Full address, instead of only street and house number separately.
	fullAddress := fmt.Sprintf("%s %s", profile.String("street"), profile.String("house_number"))
	searchStrings = append(searchStrings, fullAddress)

	// Card expiry as submitted in the single MM/YY form field.
	expiry := fmt.Sprintf("%s/%s", general.String("credit_card_expiry_month"), general.String("credit_card_expiry_year"))
	searchStrings = append(searchStrings, expiry)

	// Card number without the grouping spaces.
	ccNoSpaces := strings.ReplaceAll(general.String("credit_card_number"), " ", "")
	searchStrings = append(searchStrings, ccNoSpaces)

	// Every remaining string-valued field, minus the exclusions.
	// Field names are iterated in sorted order so the collection is
	// deterministic across runs.
	for _, key := range general.StringKeys() {
		if generalExclusions[key] {
			continue
		}
		searchStrings = append(searchStrings, general.String(key))
	}

	for _, key := range profile.StringKeys() {
		if profileExclusions[key] {
			continue
		}
		searchStrings = append(searchStrings, profile.String(key))
	}

	return searchStrings
}

// spacedZip reformats a zip code as "{first 4 chars} {rest}".
// Zip codes shorter than four characters gain a trailing space; that
// degenerate entry is kept like every other low-signal string.
func spacedZip(zipCode string) string {
	if len(zipCode) < 4 {
		return zipCode + " "
	}
	return zipCode[:4] + " " + zipCode[4:]
}
