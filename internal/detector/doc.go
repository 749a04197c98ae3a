// Package detector implements layered leak detection: finding search
// strings in traffic fields in plain form or transformed by compositions
// of encodings and hashes.
//
// The orchestration pipeline only depends on the narrow Detector
// interface (five field-specific check operations returning tagged
// matches). The layered implementation behind it precomputes every
// transformed variant of each search string up to the configured layer
// budget at construction time, then substring-searches fields against the
// variant index. Construction cost scales with the product of search
// string count and transform compositions; checking a field is a linear
// scan over the index.
//
// One detector instance serves one site: the search-string collection
// embeds the site-tagged email variant, so instances are never shared.
package detector
