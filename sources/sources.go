// Package sources maps article URLs to extraction hints for known news
// sites: boilerplate-removal patterns and a request identity to present
// when fetching.
package sources

import (
	"net/url"
	"regexp"
	"strings"
)

// Profile holds the extraction hints for a single source. RemovalPatterns
// are applied in order during text normalization.
type Profile struct {
	Domain          string
	RemovalPatterns []*regexp.Regexp
	UserAgent       string
}

// DefaultUserAgent is the request identity used for sources without a
// registered profile.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// Registry resolves a URL's host to a source profile. Matching is ordered:
// the first registered profile whose domain is contained in the host wins,
// so insertion order is significant and must stay deterministic.
type Registry struct {
	profiles []Profile
}

// NewRegistry returns a registry preloaded with the built-in source table.
func NewRegistry() *Registry {
	return &Registry{profiles: defaultProfiles()}
}

// Add registers an additional source profile at the end of the table.
// Patterns are compiled case-insensitive and multiline, matching from the
// boilerplate phrase to the end of its line.
func (r *Registry) Add(domain, userAgent string, patterns ...string) error {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile("(?im)" + p)
		if err != nil {
			return err
		}
		compiled = append(compiled, re)
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	r.profiles = append(r.profiles, Profile{
		Domain:          domain,
		RemovalPatterns: compiled,
		UserAgent:       userAgent,
	})
	return nil
}

// ProfileFor returns the profile for the URL's host, or the default profile
// (no removal patterns, generic user agent) if the host is unknown. It
// never fails: unparseable URLs get the default profile.
func (r *Registry) ProfileFor(rawURL string) Profile {
	host := ""
	if u, err := url.Parse(rawURL); err == nil {
		host = strings.ToLower(u.Host)
	}

	for _, p := range r.profiles {
		if strings.Contains(host, p.Domain) {
			return p
		}
	}

	return Profile{UserAgent: DefaultUserAgent}
}

func mustPatterns(patterns ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		compiled = append(compiled, regexp.MustCompile("(?im)"+p))
	}
	return compiled
}

// defaultProfiles is the built-in table of known sources. Order matters:
// more specific domains should come before broader ones.
func defaultProfiles() []Profile {
	return []Profile{
		{
			Domain: "moneycontrol.com",
			RemovalPatterns: mustPatterns(
				`Follow us on.*$`,
				`Download The Economic Times News App.*$`,
				`Click here to download.*$`,
				`Disclaimer:.*$`,
				`Catch all the Business News.*$`,
				`Also Read:.*$`,
			),
			UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
		},
		{
			Domain: "economictimes.indiatimes.com",
			RemovalPatterns: mustPatterns(
				`Download The Economic Times News App.*$`,
				`\(This story originally appeared.*\)`,
				`Never miss a great news story!.*$`,
				`Click here to download.*$`,
				`Also Read:.*$`,
			),
			UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) Chrome/91.0",
		},
		{
			Domain: "livemint.com",
			RemovalPatterns: mustPatterns(
				`Download the Mint app.*$`,
				`Click here to read.*$`,
				`Also read:.*$`,
				`Catch all the Business News.*$`,
				`Subscribe to Mint Newsletters.*$`,
			),
			UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) Firefox/89.0",
		},
		{
			Domain: "business-standard.com",
			RemovalPatterns: mustPatterns(
				`Dear Reader,.*$`,
				`Business Standard has always.*$`,
				`Key stories on business-standard.*$`,
				`Subscribe to Business Standard Premium.*$`,
			),
			UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) Edge/91.0",
		},
		{
			Domain: "financialexpress.com",
			RemovalPatterns: mustPatterns(
				`Get live Share Market updates.*$`,
				`Also read:.*$`,
				`For all the latest.*$`,
				`Subscribe to FE Daily Newsletter.*$`,
			),
			UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) Safari/537.36",
		},
		{
			Domain: "nseindia.com",
			RemovalPatterns: mustPatterns(
				`Copyright © National Stock Exchange.*$`,
				`Disclaimer:.*$`,
			),
			UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) Chrome/91.0",
		},
		{
			Domain: "bseindia.com",
			RemovalPatterns: mustPatterns(
				`Copyright © BSE.*$`,
				`Disclaimer:.*$`,
			),
			UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) Firefox/89.0",
		},
		{
			Domain: "zeebiz.com",
			RemovalPatterns: mustPatterns(
				`Click here to read.*$`,
				`WATCH ZEE BUSINESS LIVE TV.*$`,
				`Download the Zee Business App.*$`,
			),
			UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) Edge/91.0",
		},
		{
			Domain: "reuters.com",
			RemovalPatterns: mustPatterns(
				`Reporting by.*$`,
				`Our Standards:.*$`,
				`Register now for.*$`,
			),
			UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) Chrome/91.0",
		},
		{
			Domain: "bloombergquint.com",
			RemovalPatterns: mustPatterns(
				`BQ Prime is now available.*$`,
				`Subscribe to BQ Prime.*$`,
				`Also Read:.*$`,
			),
			UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) Firefox/89.0",
		},
		{
			Domain: "thehindubusinessline.com",
			RemovalPatterns: mustPatterns(
				`Published on.*$`,
				`Subscribe to The Hindu BusinessLine.*$`,
				`Follow us on .*$`,
			),
			UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) Edge/91.0",
		},
		{
			Domain: "equitymaster.com",
			RemovalPatterns: mustPatterns(
				`This article is from.*$`,
				`Subscribe to Equitymaster.*$`,
				`Equitymaster Agora Research.*$`,
			),
			UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) Safari/537.36",
		},
		{
			Domain: "tickertape.in",
			RemovalPatterns: mustPatterns(
				`Download the Tickertape App.*$`,
				`Subscribe to our newsletter.*$`,
			),
			UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) Chrome/91.0",
		},
		{
			Domain: "cnbctv18.com",
			RemovalPatterns: mustPatterns(
				`ALSO READ:.*$`,
				`Follow our live blog.*$`,
				`Disclaimer:.*$`,
				`First Published:.*$`,
			),
			UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) Firefox/89.0",
		},
	}
}
