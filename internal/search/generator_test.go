package search

import (
	"testing"

	"github.com/jlogtenberg/leakscan/internal/model"
)

// testGeneral returns a representative general record.
func testGeneral() model.Record {
	return model.Record{
		"email_prefix":             "leaktest",
		"email_suffix":             "example.com",
		"first_name":               "Ann",
		"last_name":                "Lee",
		"date_of_birth":            "01-02-1990",
		"credit_card_number":       "4111 1111 1111 1111",
		"credit_card_expiry_month": "12",
		"credit_card_expiry_year":  "27",
		"credit_card_cvv":          "123",
	}
}

// testProfile returns a representative Dutch profile record.
func testProfile() model.Record {
	return model.Record{
		"country_code":         "+31",
		"local_format":         "0612345678",
		"international_format": "+31612345678",
		"zip_code":             "1234AB",
		"street":               "Hoofdstraat",
		"house_number":         "12",
		"city":                 "Amsterdam",
		"payment_options":      "ideal",
	}
}

// TestStrings tests the search-string mutation rules.
func TestStrings(t *testing.T) {
	t.Parallel()

	got := Strings(testGeneral(), testProfile(), "shop.example.nl")

	contains := func(t *testing.T, want string) {
		t.Helper()
		for _, s := range got {
			if s == want {
				return
			}
		}
		t.Errorf("expected collection to contain %q, got %v", want, got)
	}

	excludes := func(t *testing.T, unwanted string) {
		t.Helper()
		for _, s := range got {
			if s == unwanted {
				t.Errorf("expected collection to exclude %q", unwanted)
			}
		}
	}

	t.Run("basic email", func(t *testing.T) {
		t.Parallel()
		contains(t, "leaktest@example.com")
	})

	t.Run("site-tagged email", func(t *testing.T) {
		t.Parallel()
		contains(t, "leaktest+shop.example.nl@example.com")
	})

	t.Run("full name", func(t *testing.T) {
		t.Parallel()
		contains(t, "Ann Lee")
	})

	t.Run("phone variants", func(t *testing.T) {
		t.Parallel()
		contains(t, "0612345678")
		contains(t, "+31612345678")
		contains(t, "31612345678")
	})

	t.Run("spaced dutch zip code", func(t *testing.T) {
		t.Parallel()
		contains(t, "1234 AB")
	})

	t.Run("full address", func(t *testing.T) {
		t.Parallel()
		contains(t, "Hoofdstraat 12")
	})

	t.Run("card expiry", func(t *testing.T) {
		t.Parallel()
		contains(t, "12/27")
	})

	t.Run("card number without spaces", func(t *testing.T) {
		t.Parallel()
		contains(t, "4111111111111111")
	})

	t.Run("catch-all keeps remaining fields", func(t *testing.T) {
		t.Parallel()
		contains(t, "Amsterdam")
		contains(t, "1234AB")
		contains(t, "Hoofdstraat")
	})

	t.Run("general exclusions", func(t *testing.T) {
		t.Parallel()
		excludes(t, "01-02-1990")
		excludes(t, "123")
	})

	t.Run("profile exclusions", func(t *testing.T) {
		t.Parallel()
		excludes(t, "ideal")
		// The raw house number is excluded; it survives only inside the
		// full-address variant.
		excludes(t, "12")
	})

	t.Run("mutation order is fixed", func(t *testing.T) {
		t.Parallel()
		if got[0] != "leaktest@example.com" {
			t.Errorf("expected basic email first, got %q", got[0])
		}
		if got[1] != "leaktest+shop.example.nl@example.com" {
			t.Errorf("expected site-tagged email second, got %q", got[1])
		}
		if got[2] != "Ann Lee" {
			t.Errorf("expected full name third, got %q", got[2])
		}
	})
}

// TestStringsNonDutchProfile tests that the spaced zip variant only
// applies to the Dutch country code.
func TestStringsNonDutchProfile(t *testing.T) {
	t.Parallel()

	profile := testProfile()
	profile["country_code"] = "+49"
	profile["zip_code"] = "10115"

	got := Strings(testGeneral(), profile, "example.de")

	for _, s := range got {
		if s == "1011 5" {
			t.Error("expected no spaced zip variant for non-Dutch profile")
		}
	}
}

// TestStringsMissingFields tests degradation with empty records.
func TestStringsMissingFields(t *testing.T) {
	t.Parallel()

	got := Strings(model.Record{}, model.Record{}, "example.com")

	if len(got) == 0 {
		t.Fatal("expected degenerate entries, got empty collection")
	}

	// Missing email halves still yield the malformed "@" entry.
	if got[0] != "@" {
		t.Errorf("expected degenerate email %q, got %q", "@", got[0])
	}
	if got[1] != "+example.com@" {
		t.Errorf("expected degenerate site-tagged email, got %q", got[1])
	}

	// Full name trims to empty instead of a lone space.
	if got[2] != "" {
		t.Errorf("expected empty full name, got %q", got[2])
	}
}

// TestStringsDeterministic tests that two invocations with identical
// inputs return identical collections.
func TestStringsDeterministic(t *testing.T) {
	t.Parallel()

	first := Strings(testGeneral(), testProfile(), "shop.example.nl")
	second := Strings(testGeneral(), testProfile(), "shop.example.nl")

	if len(first) != len(second) {
		t.Fatalf("expected equal lengths, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("position %d: %q vs %q", i, first[i], second[i])
		}
	}
}

// TestSpacedZip tests the zip-code reformatting helper.
func TestSpacedZip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		zip  string
		want string
	}{
		{name: "standard dutch zip", zip: "1234AB", want: "1234 AB"},
		{name: "exactly four chars", zip: "1234", want: "1234 "},
		{name: "short zip", zip: "12", want: "12 "},
		{name: "empty zip", zip: "", want: " "},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := spacedZip(tt.zip); got != tt.want {
				t.Errorf("spacedZip(%q) = %q, want %q", tt.zip, got, tt.want)
			}
		})
	}
}
