package config

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jlogtenberg/leakscan/internal/model"
)

// countryCaser lowercases country names. Country names in the CSV come
// from a hand-maintained sheet and occasionally carry mixed case or
// non-ASCII characters, so Unicode-aware case folding is used instead of
// byte-wise lowering.
var countryCaser = cases.Lower(language.Und)

// LoadSiteCountryMap loads the website→country mapping from a
// semicolon-delimited CSV file. The header row is skipped; rows with fewer
// than two columns are ignored. Country names are normalized to lowercase
// so they match the profile table keys.
func LoadSiteCountryMap(path string) (map[string]string, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided mapping path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to open site-language file: %w", err)
	}
	defer f.Close() //nolint:errcheck // Read-only file

	reader := csv.NewReader(f)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1 // Rows vary in width; validated per row below

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse site-language file: %w", err)
	}

	siteCountry := make(map[string]string)
	for i, row := range rows {
		if i == 0 {
			// Header row
			continue
		}
		if len(row) < 2 {
			continue
		}
		site := strings.TrimSpace(row[0])
		country := countryCaser.String(strings.TrimSpace(row[1]))
		siteCountry[site] = country
	}

	return siteCountry, nil
}

// LoadUserData loads the user-data file with the general record and the
// per-country profile records. Malformed JSON is fatal: partial user data
// would silently cripple detection recall, so the error propagates.
func LoadUserData(path string) (*model.UserData, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided data path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to read user-data file: %w", err)
	}

	var ud model.UserData
	if err := json.Unmarshal(data, &ud); err != nil {
		return nil, fmt.Errorf("failed to parse user-data file: %w", err)
	}

	if ud.General == nil {
		ud.General = model.Record{}
	}
	if ud.Profiles == nil {
		ud.Profiles = make(map[string]model.Record)
	}

	return &ud, nil
}
