package seo

import (
	"encoding/xml"
	"time"
)

// SitemapEntry is one URL in the sitemap. URL is site-relative; the
// base URL is prepended at render time.
type SitemapEntry struct {
	URL        string
	LastMod    time.Time // zero value means "now" at render time
	ChangeFreq string    // default monthly
	Priority   float64   // default 0.5
}

type urlset struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string  `xml:"loc"`
	LastMod    string  `xml:"lastmod"`
	ChangeFreq string  `xml:"changefreq"`
	Priority   float64 `xml:"priority"`
}

// Sitemap renders the XML sitemap for the given entries. now supplies
// the lastmod for entries without one, keeping the output a pure
// function of its arguments.
func Sitemap(base string, entries []SitemapEntry, now time.Time) string {
	set := urlset{XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	for _, e := range entries {
		u := sitemapURL{
			Loc:        base + e.URL,
			ChangeFreq: e.ChangeFreq,
			Priority:   e.Priority,
		}
		mod := e.LastMod
		if mod.IsZero() {
			mod = now
		}
		u.LastMod = mod.UTC().Format(time.RFC3339)
		if u.ChangeFreq == "" {
			u.ChangeFreq = "monthly"
		}
		if u.Priority == 0 {
			u.Priority = 0.5
		}
		set.URLs = append(set.URLs, u)
	}
	b, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return xml.Header
	}
	return xml.Header + string(b)
}

// RobotsTxt allows everything and points crawlers at the sitemap.
func RobotsTxt(base string) string {
	return "User-agent: *\nAllow: /\n\nSitemap: " + base + "/sitemap.xml\n"
}
