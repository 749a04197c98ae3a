package model

// BlobDomain is the sentinel domain key used for requests with blob: URLs.
// Blob URLs have no resolvable host, so their leaks are grouped under this
// literal value instead of a registrable domain.
const BlobDomain = "blob-url"

// LeakRecord is one detected leak of a search string in a traffic field.
//
// The JSON field names are fixed: they match the results format that the
// downstream analysis notebooks consume.
type LeakRecord struct {
	// LeakedValue is the literal search string that was found.
	LeakedValue string `json:"leaked_value"`

	// EncodingOrHash is the hyphen-joined chain of transform names that
	// were applied to the value before it appeared in the traffic,
	// outermost transform first. Empty for a direct (plain-text) match.
	EncodingOrHash string `json:"encoding_or_hash"`

	// LeakMethod is the name of the traffic field the leak was found in
	// (url, referrer, postData, location, setCookie, Cookies). It reflects
	// the field passed to the detection call, not a property of the match.
	LeakMethod string `json:"leak_method"`

	// Timestamp is the startedDateTime of the traffic entry, as recorded
	// in the capture.
	Timestamp string `json:"timestamp"`
}

// DomainLeaks groups the leaks found in requests resolving to one
// third-party domain (eTLD+1, or BlobDomain).
type DomainLeaks struct {
	// Domain is the registrable domain the leaking requests resolved to.
	Domain string `json:"domain"`

	// DataLeaked lists the leaks for this domain in encounter order.
	DataLeaked []LeakRecord `json:"data_leaked"`
}

// SiteResult is the persisted result for one scanned site. Sites with no
// leaks never produce a SiteResult.
type SiteResult struct {
	// Website is the site identifier (the capture directory name).
	Website string `json:"website"`

	// Leaks lists the per-domain leak groups in accumulation order.
	Leaks []DomainLeaks `json:"leaks"`
}

// TotalLeaks returns the number of leak records across all domains.
func (s SiteResult) TotalLeaks() int {
	total := 0
	for _, d := range s.Leaks {
		total += len(d.DataLeaked)
	}
	return total
}
