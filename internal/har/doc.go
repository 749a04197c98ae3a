// Package har parses recorded HAR captures and extracts the per-entry
// fields that are eligible for leak checking.
//
// Only the slice of the HAR format the pipeline needs is modeled: request
// URL and headers, optional POST body text, response headers, attached
// cookies, and the entry start timestamp. Everything else in the capture
// is ignored during decoding.
package har
