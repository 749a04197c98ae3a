// Package pipeline orchestrates the per-site leak detection flow.
//
// Each site is processed by a Pipeline of ordered Steps operating on a
// shared SiteScan value: resolve the country profile, build the
// search-string collection and its detector, then walk the capture
// entry by entry, checking every extracted field and accumulating leaks
// under the resolving third-party domain.
//
// Sites are independent: each gets its own SiteScan, search strings and
// detector instance, so pipelines can run concurrently. BatchProcessor
// provides that concurrency with a bounded errgroup; the default remains
// strictly sequential processing.
package pipeline
