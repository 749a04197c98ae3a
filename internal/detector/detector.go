package detector

import (
	"net/url"
	"strings"
)

// MinTermLength is the shortest search string the detector will index.
// Shorter terms (a lone "@" from missing email data, single digits) match
// virtually every field and would drown real leaks in false positives.
// The collection itself keeps such terms; they are simply not searchable.
const MinTermLength = 4

// Match is one detected occurrence of a search string in a field.
type Match struct {
	// Chain is the ordered list of transform names that were applied to
	// the value before it appeared in the field, outermost first: Chain[0]
	// is the first decode step needed to recover the literal value. Empty
	// for a direct plain-text match.
	Chain []string

	// Value is the literal search string that was found.
	Value string
}

// Detector is the leak-detection contract the pipeline depends on.
// Five field-specific check operations exist; cookies and the Set-Cookie
// header share the cookie-string operation.
type Detector interface {
	CheckURL(s string) []Match
	CheckReferrer(s string) []Match
	CheckPostData(s string) []Match
	CheckLocationHeader(s string) []Match
	CheckCookieString(s string) []Match
}

// Config fixes the candidate transform sets and composition depths for a
// LayeredDetector. The same configuration is used for every site in a run.
type Config struct {
	// Encodings is the candidate encoding set.
	Encodings []Transform

	// Hashes is the candidate hash set.
	Hashes []Transform

	// EncodingLayers is the maximum number of encodings in one chain.
	EncodingLayers int

	// HashLayers is the maximum number of hashes in one chain.
	HashLayers int
}

// DefaultConfig returns the fixed configuration used by the scan pipeline:
// likely encodings and hashes, three layers each.
func DefaultConfig() Config {
	return Config{
		Encodings:      LikelyEncodings,
		Hashes:         LikelyHashes,
		EncodingLayers: 3,
		HashLayers:     3,
	}
}

// variant is one precomputed transformed form of a search string.
type variant struct {
	// value is the transformed form searched for in fields.
	value string

	// chain is the transform names, outermost first.
	chain []string

	// original is the literal search string the variant derives from.
	original string

	// hexDigest marks values that are lowercase hex, which are also
	// matched against a lowercased view of the field so uppercase digests
	// in traffic are not missed.
	hexDigest bool
}

// LayeredDetector finds search strings behind compositions of encodings
// and hashes. It implements Detector.
type LayeredDetector struct {
	// variants is the precomputed index in deterministic order:
	// per search string, plain form first, then by composition depth.
	variants []variant
}

// New builds a LayeredDetector for one site's search-string collection.
//
// Every search string of at least MinTermLength is indexed in plain form
// and under every transform composition within the layer budget: at most
// cfg.EncodingLayers encodings and cfg.HashLayers hashes per chain, and no
// chain longer than the larger of the two budgets. A transformed value
// already present in the index keeps its first (shortest) chain.
func New(searchStrings []string, cfg Config) *LayeredDetector {
	d := &LayeredDetector{}

	maxChain := cfg.EncodingLayers
	if cfg.HashLayers > maxChain {
		maxChain = cfg.HashLayers
	}

	transforms := make([]Transform, 0, len(cfg.Encodings)+len(cfg.Hashes))
	transforms = append(transforms, cfg.Encodings...)
	transforms = append(transforms, cfg.Hashes...)

	seen := make(map[string]bool)
	add := func(v variant) bool {
		if seen[v.value] {
			return false
		}
		seen[v.value] = true
		v.hexDigest = isLowerHex(v.value)
		d.variants = append(d.variants, v)
		return true
	}

	for _, s := range searchStrings {
		if len(s) < MinTermLength {
			continue
		}

		// state tracks one BFS node with its per-kind budget usage.
		type state struct {
			variant
			encodings int
			hashes    int
		}

		frontier := []state{{variant: variant{value: s, original: s}}}
		add(frontier[0].variant)

		for depth := 0; depth < maxChain; depth++ {
			next := make([]state, 0, len(frontier)*len(transforms))
			for _, st := range frontier {
				for _, t := range transforms {
					if t.Kind == KindEncoding && st.encodings >= cfg.EncodingLayers {
						continue
					}
					if t.Kind == KindHash && st.hashes >= cfg.HashLayers {
						continue
					}

					chain := make([]string, 0, len(st.chain)+1)
					chain = append(chain, t.Name)
					chain = append(chain, st.chain...)

					ns := state{
						variant: variant{
							value:    t.Apply(st.value),
							chain:    chain,
							original: st.original,
						},
						encodings: st.encodings,
						hashes:    st.hashes,
					}
					if t.Kind == KindEncoding {
						ns.encodings++
					} else {
						ns.hashes++
					}

					if add(ns.variant) {
						next = append(next, ns)
					}
				}
			}
			frontier = next
		}
	}

	return d
}

// CheckURL checks a request URL for leaks.
func (d *LayeredDetector) CheckURL(s string) []Match { return d.search(s) }

// CheckReferrer checks a Referer header value for leaks.
func (d *LayeredDetector) CheckReferrer(s string) []Match { return d.search(s) }

// CheckPostData checks a request body for leaks.
func (d *LayeredDetector) CheckPostData(s string) []Match { return d.search(s) }

// CheckLocationHeader checks a Location header value for leaks.
func (d *LayeredDetector) CheckLocationHeader(s string) []Match { return d.search(s) }

// CheckCookieString checks a "name=value" cookie string or a Set-Cookie
// header value for leaks.
func (d *LayeredDetector) CheckCookieString(s string) []Match { return d.search(s) }

// search scans the haystack against the variant index. The raw field and
// a percent-decoded view are both searched: URLs, bodies and cookie values
// routinely arrive percent-encoded, and the decoded view catches variants
// whose own encoding the percent layer merely wraps.
func (d *LayeredDetector) search(haystack string) []Match {
	if haystack == "" {
		return nil
	}

	views := []string{haystack}
	if decoded, err := url.QueryUnescape(haystack); err == nil && decoded != haystack {
		views = append(views, decoded)
	}
	lowered := strings.ToLower(haystack)

	var matches []Match
	reported := make(map[string]bool)

	for _, v := range d.variants {
		found := false
		for _, view := range views {
			if strings.Contains(view, v.value) {
				found = true
				break
			}
		}
		// Hex digests also match case-insensitively: trackers emit both
		// cases and the digest identity is unchanged.
		if !found && v.hexDigest {
			found = strings.Contains(lowered, v.value)
		}
		if !found {
			continue
		}

		key := strings.Join(v.chain, "-") + "\x00" + v.original
		if reported[key] {
			continue
		}
		reported[key] = true
		matches = append(matches, Match{Chain: v.chain, Value: v.original})
	}

	return matches
}

// isLowerHex reports whether s is entirely lowercase hex digits.
func isLowerHex(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}
	return true
}
