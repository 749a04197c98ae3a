package detector

import (
	"crypto/md5"  //nolint:gosec // Matching leaked digests, not protecting data
	"crypto/sha1" //nolint:gosec // Matching leaked digests, not protecting data
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"net/url"

	"golang.org/x/crypto/sha3"
)

// TransformKind distinguishes encodings from hashes: the two sets carry
// separate composition-depth budgets.
type TransformKind int

const (
	// KindEncoding is a reversible encoding (base64, urlencode, hex).
	KindEncoding TransformKind = iota
	// KindHash is a one-way hash; the variant is the lowercase hex digest.
	KindHash
)

// Transform is one named transformation applied to a search string when
// building the variant index. The name appears in leak chains exactly as
// written here.
type Transform struct {
	// Name identifies the transform in reported leak chains.
	Name string

	// Kind is the budget the transform counts against.
	Kind TransformKind

	// Apply produces the transformed form of a value.
	Apply func(string) string
}

// LikelyEncodings are the encodings sites and trackers actually use when
// they reformat values before sending them: base64, percent-encoding and
// hex. Exotic encodings multiply the index without measurable recall.
var LikelyEncodings = []Transform{
	{
		Name: "base64",
		Kind: KindEncoding,
		Apply: func(s string) string {
			return base64.StdEncoding.EncodeToString([]byte(s))
		},
	},
	{
		Name: "urlencode",
		Kind: KindEncoding,
		Apply: func(s string) string {
			return url.QueryEscape(s)
		},
	},
	{
		Name: "hex",
		Kind: KindEncoding,
		Apply: func(s string) string {
			return hex.EncodeToString([]byte(s))
		},
	},
}

// LikelyHashes are the digests observed in tracking pixels and identity
// syncing: md5, sha1, sha256 and sha3-256. Digests index as lowercase hex.
var LikelyHashes = []Transform{
	{
		Name: "md5",
		Kind: KindHash,
		Apply: func(s string) string {
			sum := md5.Sum([]byte(s)) //nolint:gosec // Matching leaked digests
			return hex.EncodeToString(sum[:])
		},
	},
	{
		Name: "sha1",
		Kind: KindHash,
		Apply: func(s string) string {
			sum := sha1.Sum([]byte(s)) //nolint:gosec // Matching leaked digests
			return hex.EncodeToString(sum[:])
		},
	},
	{
		Name: "sha256",
		Kind: KindHash,
		Apply: func(s string) string {
			sum := sha256.Sum256([]byte(s))
			return hex.EncodeToString(sum[:])
		},
	},
	{
		Name: "sha3-256",
		Kind: KindHash,
		Apply: func(s string) string {
			sum := sha3.Sum256([]byte(s))
			return hex.EncodeToString(sum[:])
		},
	},
}
