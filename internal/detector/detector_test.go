package detector

import (
	"crypto/md5" //nolint:gosec // Test fixtures for digest matching
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"strings"
	"testing"
)

// TestNew tests detector construction.
func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("skips terms below minimum length", func(t *testing.T) {
		t.Parallel()

		d := New([]string{"@", "ab", "abc"}, DefaultConfig())
		if len(d.variants) != 0 {
			t.Errorf("expected no variants for short terms, got %d", len(d.variants))
		}
	})

	t.Run("indexes plain form first", func(t *testing.T) {
		t.Parallel()

		d := New([]string{"leaktest@example.com"}, DefaultConfig())
		if len(d.variants) == 0 {
			t.Fatal("expected variants")
		}
		first := d.variants[0]
		if first.value != "leaktest@example.com" || len(first.chain) != 0 {
			t.Errorf("expected plain variant first, got %+v", first)
		}
	})

	t.Run("empty collection yields empty index", func(t *testing.T) {
		t.Parallel()

		d := New(nil, DefaultConfig())
		if len(d.variants) != 0 {
			t.Errorf("expected empty index, got %d variants", len(d.variants))
		}
	})
}

// TestDetectorDirectMatch tests plain-text detection.
func TestDetectorDirectMatch(t *testing.T) {
	t.Parallel()

	d := New([]string{"leaktest@example.com"}, DefaultConfig())

	t.Run("finds value in URL", func(t *testing.T) {
		t.Parallel()

		matches := d.CheckURL("https://tracker.example.com/collect?email=leaktest@example.com")
		if len(matches) != 1 {
			t.Fatalf("expected 1 match, got %d", len(matches))
		}
		if matches[0].Value != "leaktest@example.com" {
			t.Errorf("unexpected value %q", matches[0].Value)
		}
		if len(matches[0].Chain) != 0 {
			t.Errorf("expected empty chain for direct match, got %v", matches[0].Chain)
		}
	})

	t.Run("no match in clean field", func(t *testing.T) {
		t.Parallel()

		if matches := d.CheckURL("https://tracker.example.com/collect?v=1"); len(matches) != 0 {
			t.Errorf("expected no matches, got %v", matches)
		}
	})

	t.Run("empty field yields no matches", func(t *testing.T) {
		t.Parallel()

		if matches := d.CheckPostData(""); matches != nil {
			t.Errorf("expected nil matches, got %v", matches)
		}
	})
}

// TestDetectorEncodedMatch tests detection behind single transforms.
func TestDetectorEncodedMatch(t *testing.T) {
	t.Parallel()

	const term = "leaktest@example.com"
	d := New([]string{term}, DefaultConfig())

	t.Run("base64", func(t *testing.T) {
		t.Parallel()

		encoded := base64.StdEncoding.EncodeToString([]byte(term))
		matches := d.CheckPostData(`{"e":"` + encoded + `"}`)

		found := false
		for _, m := range matches {
			if len(m.Chain) == 1 && m.Chain[0] == "base64" && m.Value == term {
				found = true
			}
		}
		if !found {
			t.Errorf("expected base64 match, got %v", matches)
		}
	})

	t.Run("md5 digest", func(t *testing.T) {
		t.Parallel()

		sum := md5.Sum([]byte(term)) //nolint:gosec // Test fixture
		digest := hex.EncodeToString(sum[:])
		matches := d.CheckURL("https://sync.example.com/p?uid=" + digest)

		found := false
		for _, m := range matches {
			if len(m.Chain) == 1 && m.Chain[0] == "md5" && m.Value == term {
				found = true
			}
		}
		if !found {
			t.Errorf("expected md5 match, got %v", matches)
		}
	})

	t.Run("uppercase digest matches case-insensitively", func(t *testing.T) {
		t.Parallel()

		sum := sha256.Sum256([]byte(term))
		digest := strings.ToUpper(hex.EncodeToString(sum[:]))
		matches := d.CheckURL("https://sync.example.com/p?uid=" + digest)

		found := false
		for _, m := range matches {
			if len(m.Chain) == 1 && m.Chain[0] == "sha256" {
				found = true
			}
		}
		if !found {
			t.Errorf("expected uppercase sha256 match, got %v", matches)
		}
	})
}

// TestDetectorLayeredMatch tests detection behind transform chains.
func TestDetectorLayeredMatch(t *testing.T) {
	t.Parallel()

	const term = "leaktest@example.com"
	d := New([]string{term}, DefaultConfig())

	t.Run("base64 over md5", func(t *testing.T) {
		t.Parallel()

		sum := md5.Sum([]byte(term)) //nolint:gosec // Test fixture
		digest := hex.EncodeToString(sum[:])
		wrapped := base64.StdEncoding.EncodeToString([]byte(digest))

		matches := d.CheckCookieString("uid=" + wrapped)

		found := false
		for _, m := range matches {
			if strings.Join(m.Chain, "-") == "base64-md5" && m.Value == term {
				found = true
			}
		}
		if !found {
			t.Errorf("expected base64-md5 chain, got %v", matches)
		}
	})

	t.Run("chain is outermost first", func(t *testing.T) {
		t.Parallel()

		// hex(base64(term)): hex must be decoded first.
		encoded := hex.EncodeToString([]byte(base64.StdEncoding.EncodeToString([]byte(term))))
		matches := d.CheckPostData(encoded)

		found := false
		for _, m := range matches {
			if strings.Join(m.Chain, "-") == "hex-base64" {
				found = true
			}
		}
		if !found {
			t.Errorf("expected hex-base64 chain, got %v", matches)
		}
	})
}

// TestDetectorLayerBudget tests the composition depth limits.
func TestDetectorLayerBudget(t *testing.T) {
	t.Parallel()

	const term = "leaktest@example.com"

	t.Run("chains beyond the budget are not indexed", func(t *testing.T) {
		t.Parallel()

		cfg := Config{
			Encodings:      LikelyEncodings,
			Hashes:         nil,
			EncodingLayers: 1,
			HashLayers:     1,
		}
		d := New([]string{term}, cfg)

		double := base64.StdEncoding.EncodeToString(
			[]byte(base64.StdEncoding.EncodeToString([]byte(term))))
		if matches := d.CheckPostData(double); len(matches) != 0 {
			t.Errorf("expected no match beyond layer budget, got %v", matches)
		}
	})

	t.Run("single layer within budget still matches", func(t *testing.T) {
		t.Parallel()

		cfg := Config{
			Encodings:      LikelyEncodings,
			Hashes:         nil,
			EncodingLayers: 1,
			HashLayers:     1,
		}
		d := New([]string{term}, cfg)

		single := base64.StdEncoding.EncodeToString([]byte(term))
		if matches := d.CheckPostData(single); len(matches) == 0 {
			t.Error("expected single-layer match within budget")
		}
	})
}

// TestDetectorPercentDecodedView tests matching in percent-encoded fields.
func TestDetectorPercentDecodedView(t *testing.T) {
	t.Parallel()

	d := New([]string{"leaktest@example.com"}, DefaultConfig())

	matches := d.CheckURL("https://tracker.example.com/c?e=leaktest%40example.com")

	found := false
	for _, m := range matches {
		if m.Value == "leaktest@example.com" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected match in percent-decoded view, got %v", matches)
	}
}

// TestDetectorDeduplicatesMatches tests that the same transform chain
// for the same value is reported once per field.
func TestDetectorDeduplicatesMatches(t *testing.T) {
	t.Parallel()

	d := New([]string{"leaktest@example.com"}, DefaultConfig())

	matches := d.CheckPostData("leaktest@example.com leaktest@example.com")

	direct := 0
	for _, m := range matches {
		if len(m.Chain) == 0 {
			direct++
		}
	}
	if direct != 1 {
		t.Errorf("expected 1 direct match, got %d", direct)
	}
}

// TestTransformNames tests the names recorded in leak chains.
func TestTransformNames(t *testing.T) {
	t.Parallel()

	wantEncodings := []string{"base64", "urlencode", "hex"}
	for i, want := range wantEncodings {
		if LikelyEncodings[i].Name != want {
			t.Errorf("encoding %d: expected %q, got %q", i, want, LikelyEncodings[i].Name)
		}
		if LikelyEncodings[i].Kind != KindEncoding {
			t.Errorf("encoding %q: wrong kind", want)
		}
	}

	wantHashes := []string{"md5", "sha1", "sha256", "sha3-256"}
	for i, want := range wantHashes {
		if LikelyHashes[i].Name != want {
			t.Errorf("hash %d: expected %q, got %q", i, want, LikelyHashes[i].Name)
		}
		if LikelyHashes[i].Kind != KindHash {
			t.Errorf("hash %q: wrong kind", want)
		}
	}
}

// TestIsLowerHex tests the hex digest classifier.
func TestIsLowerHex(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
		want  bool
	}{
		{name: "md5 digest", value: "d41d8cd98f00b204e9800998ecf8427e", want: true},
		{name: "uppercase hex", value: "D41D8CD9", want: false},
		{name: "plain text", value: "leaktest", want: false},
		{name: "digits only", value: "1234567890", want: true},
		{name: "empty", value: "", want: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := isLowerHex(tt.value); got != tt.want {
				t.Errorf("isLowerHex(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}
