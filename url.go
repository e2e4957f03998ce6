package showreel

import (
	"net/url"
	"strings"
)

// DomainOf returns the registrable host of a URL, lowercased and with any
// leading "www." stripped. Returns "" for unparseable URLs.
func DomainOf(rawurl string) string {
	u, err := url.Parse(rawurl)
	if err != nil {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	return strings.TrimPrefix(host, "www.")
}
