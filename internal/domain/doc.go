// Package domain resolves request URLs to their registrable domain
// (eTLD+1), the unit leaks are aggregated under.
package domain
