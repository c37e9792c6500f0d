package handlers

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"

	"tenpak/internal/cms"
	"tenpak/internal/config"
	applog "tenpak/internal/log"
	"tenpak/internal/seo"
)

type SEOHandler struct {
	Content *cms.Client
	Cfg     config.Config
}

// staticRoutes are the fixed pages every sitemap carries. Dynamic
// slugs are appended from the CMS at request time.
var staticRoutes = []seo.SitemapEntry{
	{URL: "/", ChangeFreq: "weekly", Priority: 1.0},
	{URL: "/products", ChangeFreq: "weekly", Priority: 0.9},
	{URL: "/sectors", ChangeFreq: "monthly", Priority: 0.8},
	{URL: "/case-studies", ChangeFreq: "monthly", Priority: 0.6},
	{URL: "/about", Priority: 0.6},
	{URL: "/sustainability", Priority: 0.6},
	{URL: "/downloads", Priority: 0.6},
	{URL: "/contact", Priority: 0.7},
}

// Sitemap serves /sitemap.xml. The four slug listings are fetched
// concurrently; a failed listing drops its section rather than failing
// the whole document.
func (h *SEOHandler) Sitemap(c *fiber.Ctx) error {
	ctx := c.UserContext()
	entries := append([]seo.SitemapEntry(nil), staticRoutes...)

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	add := func(url, updatedAt string, prio float64) {
		e := seo.SitemapEntry{URL: url, Priority: prio}
		if t, err := time.Parse(time.RFC3339, updatedAt); err == nil {
			e.LastMod = t
		}
		mu.Lock()
		entries = append(entries, e)
		mu.Unlock()
	}

	wg.Add(4)
	go func() {
		defer wg.Done()
		families, err := h.Content.ProductFamilies(ctx)
		if err != nil {
			applog.Error(c, "sitemap.families.fail", err, nil)
			return
		}
		for _, f := range families {
			add("/products/"+f.Slug.Current, f.UpdatedAt, 0.8)
		}
	}()
	go func() {
		defer wg.Done()
		solutions, err := h.Content.SectorSolutions(ctx)
		if err != nil {
			applog.Error(c, "sitemap.sectors.fail", err, nil)
			return
		}
		for _, s := range solutions {
			add("/sectors/"+s.Slug.Current, s.UpdatedAt, 0.7)
		}
	}()
	go func() {
		defer wg.Done()
		stories, err := h.Content.CaseStudies(ctx)
		if err != nil {
			applog.Error(c, "sitemap.stories.fail", err, nil)
			return
		}
		for _, cs := range stories {
			add("/case-studies/"+cs.Slug.Current, cs.UpdatedAt, 0.5)
		}
	}()
	go func() {
		defer wg.Done()
		pages, err := h.Content.Pages(ctx)
		if err != nil {
			applog.Error(c, "sitemap.pages.fail", err, nil)
			return
		}
		for _, p := range pages {
			switch p.Slug.Current {
			case "about", "sustainability": // already in the static set
			default:
				add("/pages/"+p.Slug.Current, p.UpdatedAt, 0.5)
			}
		}
	}()
	wg.Wait()

	c.Set(fiber.HeaderContentType, "application/xml; charset=utf-8")
	return c.SendString(seo.Sitemap(h.Cfg.SiteURL, dedupe(entries), time.Now()))
}

// dedupe collapses duplicate URLs, keeping the newest lastmod.
func dedupe(entries []seo.SitemapEntry) []seo.SitemapEntry {
	seen := map[string]int{}
	out := entries[:0]
	for _, e := range entries {
		if i, ok := seen[e.URL]; ok {
			if e.LastMod.After(out[i].LastMod) {
				out[i].LastMod = e.LastMod
			}
			continue
		}
		seen[e.URL] = len(out)
		out = append(out, e)
	}
	return out
}

// Robots serves /robots.txt.
func (h *SEOHandler) Robots(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")
	return c.SendString(seo.RobotsTxt(h.Cfg.SiteURL))
}
