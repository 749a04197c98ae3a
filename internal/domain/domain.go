package domain

import (
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"

	"github.com/jlogtenberg/leakscan/internal/model"
)

// Resolve maps a request URL to the domain key leaks are grouped under.
//
// blob: URLs carry no resolvable host and map to the literal sentinel
// model.BlobDomain. Every other URL resolves to its eTLD+1 via the public
// suffix list; when the host has no registrable unit (IP addresses,
// localhost, single-label hosts), the host itself is used so the leak is
// still attributed somewhere visible rather than dropped.
func Resolve(rawURL string) string {
	if strings.HasPrefix(rawURL, "blob:") {
		return model.BlobDomain
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	host := u.Hostname()
	if host == "" {
		return rawURL
	}

	etldPlusOne, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host
	}
	return etldPlusOne
}
