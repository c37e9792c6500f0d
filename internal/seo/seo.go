// Package seo assembles page metadata, schema.org JSON-LD payloads and
// the sitemap/robots documents. Everything here is a pure function of
// its input: same input, byte-identical output.
package seo

import (
	"encoding/json"
	"strings"
)

// Config is the per-page input to Build.
type Config struct {
	Title       string
	Description string
	Image       string // absolute or site-relative; rendered as a 1200x630 OG image
	URL         string // site-relative canonical path
	Type        string // website | article; empty means website
	Locale      string // OG locale, e.g. tr_TR; empty means tr_TR
	SiteName    string
}

// Meta is the resolved metadata handed to the base layout.
type Meta struct {
	Title        string
	Description  string
	Canonical    string
	SiteName     string
	OGType       string
	OGLocale     string
	Image        string
	ImageWidth   int
	ImageHeight  int
	TwitterCard  string
	TwitterSite  string
	Robots       string
	Verification string
	AlternateTR  string
	AlternateEN  string
}

// Defaults used when a page does not override them.
const (
	DefaultSiteName = "Tenpak Ambalaj"
	TwitterHandle   = "@tenpak"
)

// Build resolves a page metadata config into the full Meta set.
func Build(cfg Config) Meta {
	m := Meta{
		Title:       cfg.Title,
		Description: cfg.Description,
		Canonical:   cfg.URL,
		SiteName:    cfg.SiteName,
		OGType:      cfg.Type,
		OGLocale:    cfg.Locale,
		TwitterCard: "summary_large_image",
		TwitterSite: TwitterHandle,
		Robots:      "index, follow",
		AlternateTR: langVariant(cfg.URL, "tr"),
		AlternateEN: langVariant(cfg.URL, "en"),
	}
	if m.SiteName == "" {
		m.SiteName = DefaultSiteName
	}
	if m.OGType == "" {
		m.OGType = "website"
	}
	if m.OGLocale == "" {
		m.OGLocale = "tr_TR"
	}
	if cfg.Image != "" {
		m.Image = cfg.Image
		m.ImageWidth = 1200
		m.ImageHeight = 630
	}
	return m
}

// langVariant is the hreflang alternate for a page: the same path with
// the language pinned by query, the way the header switcher links it.
func langVariant(path, lang string) string {
	if path == "" {
		path = "/"
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "lang=" + lang
}

// Absolutize prefixes the canonical and hreflang alternates with the
// site base when they are still site-relative.
func (m Meta) Absolutize(base string) Meta {
	base = strings.TrimSuffix(base, "/")
	if base == "" {
		return m
	}
	abs := func(s string) string {
		if strings.HasPrefix(s, "/") {
			return base + s
		}
		return s
	}
	m.Canonical = abs(m.Canonical)
	m.AlternateTR = abs(m.AlternateTR)
	m.AlternateEN = abs(m.AlternateEN)
	return m
}

// PostalAddress is the schema.org address block.
type PostalAddress struct {
	Street     string
	Locality   string
	Region     string
	PostalCode string
	Country    string
}

// ContactPoint is the schema.org contact block.
type ContactPoint struct {
	Telephone   string
	ContactType string
	Email       string
}

// Organization describes the company for the Organization schema.
type Organization struct {
	Name        string
	URL         string
	Logo        string
	Description string
	Address     *PostalAddress
	Contact     *ContactPoint
	SameAs      []string
}

type jsonLD map[string]any

func marshal(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(b)
}

// OrganizationSchema renders the Organization JSON-LD string.
func OrganizationSchema(org Organization) string {
	s := jsonLD{
		"@context":    "https://schema.org",
		"@type":       "Organization",
		"name":        org.Name,
		"url":         org.URL,
		"logo":        org.Logo,
		"description": org.Description,
	}
	if org.Address != nil {
		s["address"] = jsonLD{
			"@type":           "PostalAddress",
			"streetAddress":   org.Address.Street,
			"addressLocality": org.Address.Locality,
			"addressRegion":   org.Address.Region,
			"postalCode":      org.Address.PostalCode,
			"addressCountry":  org.Address.Country,
		}
	}
	if org.Contact != nil {
		s["contactPoint"] = jsonLD{
			"@type":       "ContactPoint",
			"telephone":   org.Contact.Telephone,
			"contactType": org.Contact.ContactType,
			"email":       org.Contact.Email,
		}
	}
	if len(org.SameAs) > 0 {
		s["sameAs"] = org.SameAs
	}
	return marshal(s)
}

// WebSiteSchema renders the WebSite JSON-LD string with a search action
// pointing at the site search page.
func WebSiteSchema(name, url string) string {
	return marshal(jsonLD{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     name,
		"url":      url,
		"potentialAction": jsonLD{
			"@type": "SearchAction",
			"target": jsonLD{
				"@type":       "EntryPoint",
				"urlTemplate": url + "/search?q={search_term_string}",
			},
			"query-input": "required name=search_term_string",
		},
	})
}

// Product describes a product family for the Product schema.
type Product struct {
	Name        string
	Description string
	Images      []string
	Brand       string
	Category    string
	URL         string
}

// ProductSchema renders the Product JSON-LD string.
func ProductSchema(p Product) string {
	s := jsonLD{
		"@context":    "https://schema.org",
		"@type":       "Product",
		"name":        p.Name,
		"description": p.Description,
		"brand":       jsonLD{"@type": "Brand", "name": p.Brand},
	}
	if len(p.Images) > 0 {
		s["image"] = p.Images
	}
	if p.Category != "" {
		s["category"] = p.Category
	}
	if p.URL != "" {
		s["url"] = p.URL
	}
	return marshal(s)
}

// Breadcrumb is one element of a BreadcrumbList.
type Breadcrumb struct {
	Name string
	URL  string
}

// BreadcrumbSchema renders the BreadcrumbList JSON-LD string.
func BreadcrumbSchema(items []Breadcrumb) string {
	elems := make([]jsonLD, 0, len(items))
	for i, it := range items {
		elems = append(elems, jsonLD{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     it.Name,
			"item":     it.URL,
		})
	}
	return marshal(jsonLD{
		"@context":        "https://schema.org",
		"@type":           "BreadcrumbList",
		"itemListElement": elems,
	})
}
