package seo

import (
	"fmt"
	"strings"
)

// Robots renders the crawler policy for siteURL
func Robots(siteURL string) string {
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Allow: /\n")
	b.WriteString("Disallow: /api/\n")
	b.WriteString("Disallow: /studio/\n")
	fmt.Fprintf(&b, "\nSitemap: %s/sitemap.xml\n", strings.TrimRight(siteURL, "/"))
	return b.String()
}
