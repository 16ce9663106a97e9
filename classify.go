package nexus

import (
	"net/url"
	"strings"
)

// Classification is the result of classifying a URL.
type Classification struct {
	// Technical reports whether the URL's host or path matches the
	// marker set for documentation and code-hosting sites.
	Technical bool

	// SuggestedFocus is FocusCode for technical URLs, FocusGeneral otherwise.
	SuggestedFocus FocusMode
}

// MarkerSet holds the substrings that identify technical documentation
// URLs. It is passed explicitly wherever classification happens so tests
// can supply synthetic domain sets without touching global state.
type MarkerSet struct {
	// Hosts are matched case-insensitively against the URL host.
	Hosts []string

	// Paths are matched case-insensitively against the URL path.
	Paths []string
}

// DefaultMarkers returns the curated marker set for well-known
// documentation and code-hosting sites.
func DefaultMarkers() MarkerSet {
	return MarkerSet{
		Hosts: []string{
			"readthedocs",
			"github",
			"gitlab",
			"stackoverflow",
			"docs.",
			"developer.",
			"devdocs",
			"wiki.",
		},
		Paths: []string{
			"/docs",
			"/api/",
			"/reference",
			"/documentation",
			"/guide",
			"/manual",
		},
	}
}

// IsZero reports whether the marker set carries no markers at all.
func (m MarkerSet) IsZero() bool {
	return len(m.Hosts) == 0 && len(m.Paths) == 0
}

// Classify decides whether rawURL points at a technical domain and which
// focus mode suits it. The decision is a case-insensitive substring test
// over the URL's host and path only; the query string is ignored.
// Malformed URLs (no host) classify as non-technical, never error.
func (m MarkerSet) Classify(rawURL string) Classification {
	general := Classification{Technical: false, SuggestedFocus: FocusGeneral}

	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Host == "" {
		return general
	}

	host := strings.ToLower(u.Host)
	for _, marker := range m.Hosts {
		if strings.Contains(host, strings.ToLower(marker)) {
			return Classification{Technical: true, SuggestedFocus: FocusCode}
		}
	}

	path := strings.ToLower(u.Path)
	for _, marker := range m.Paths {
		if strings.Contains(path, strings.ToLower(marker)) {
			return Classification{Technical: true, SuggestedFocus: FocusCode}
		}
	}

	return general
}
