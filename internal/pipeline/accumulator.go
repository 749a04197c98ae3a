package pipeline

import (
	"github.com/jlogtenberg/leakscan/internal/model"
)

// Accumulator groups leak records by the third-party domain the leaking
// requests resolved to. It is an explicit value owned by one SiteScan
// rather than ambient state mutated across the entry loop: each per-entry
// step appends into it, and the final result is formatted once.
//
// Domain groups keep first-seen order, and records within a group keep
// encounter order, so results are stable across runs of the same capture.
type Accumulator struct {
	// order lists domains in first-seen order.
	order []string

	// records maps a domain to its leak records.
	records map[string][]model.LeakRecord
}

// NewAccumulator creates an empty accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{
		records: make(map[string][]model.LeakRecord),
	}
}

// Add appends leak records under the given domain key.
// Adding an empty slice is a no-op: a domain group exists only for domains
// that produced at least one match.
func (a *Accumulator) Add(domain string, leaks []model.LeakRecord) {
	if len(leaks) == 0 {
		return
	}
	if _, ok := a.records[domain]; !ok {
		a.order = append(a.order, domain)
	}
	a.records[domain] = append(a.records[domain], leaks...)
}

// Empty reports whether no leaks were accumulated.
func (a *Accumulator) Empty() bool {
	return len(a.order) == 0
}

// Domains returns the domain keys in first-seen order.
func (a *Accumulator) Domains() []string {
	return a.order
}

// Result formats the accumulated leaks into the persisted site result,
// iterating domain groups in accumulation order. ok is false when the
// accumulator is empty: sites with zero matches never appear in the
// final output.
func (a *Accumulator) Result(website string) (result model.SiteResult, ok bool) {
	if a.Empty() {
		return model.SiteResult{}, false
	}

	result = model.SiteResult{
		Website: website,
		Leaks:   make([]model.DomainLeaks, 0, len(a.order)),
	}
	for _, domain := range a.order {
		result.Leaks = append(result.Leaks, model.DomainLeaks{
			Domain:     domain,
			DataLeaked: a.records[domain],
		})
	}
	return result, true
}
