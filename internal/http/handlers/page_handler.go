package handlers

import (
	"github.com/gofiber/fiber/v2"

	"tenpak/internal/cms"
	"tenpak/internal/domain"
	applog "tenpak/internal/log"
	"tenpak/internal/seo"
	"tenpak/internal/validate"
)

type PageHandler struct {
	Content *cms.Client
}

// About serves the fixed "about" CMS page.
func (h *PageHandler) About(c *fiber.Ctx) error {
	return h.serve(c, "about", "page")
}

// Sustainability serves the fixed "sustainability" CMS page with its
// own template. Missing CMS content degrades to dictionary copy
// instead of a 404, since the page is a fixed navigation target.
func (h *PageHandler) Sustainability(c *fiber.Ctx) error {
	loc := locale(c)
	page, err := h.Content.PageBySlug(c.UserContext(), "sustainability")
	if err != nil {
		applog.Error(c, "pages.fetch.fail", err, map[string]any{"slug": "sustainability"})
	}
	data := fiber.Map{"HasContent": false}
	if page != nil {
		data["HasContent"] = true
		data["Title"] = page.Title.Localized(loc)
		data["Content"] = h.Content.RenderBlocks(page.Content.Localized(loc))
		data["Meta"] = h.meta(c, page, loc, "/sustainability")
	}
	return render(c, "sustainability", data)
}

// Show serves any other CMS page by slug.
func (h *PageHandler) Show(c *fiber.Ctx) error {
	slug, ok := validate.Slug(c.Params("slug"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "slug"})
		return notFound(c, "common.notFound")
	}
	return h.serve(c, slug, "page")
}

func (h *PageHandler) serve(c *fiber.Ctx, slug, tmpl string) error {
	loc := locale(c)
	page, err := h.Content.PageBySlug(c.UserContext(), slug)
	if err != nil {
		applog.Error(c, "pages.fetch.fail", err, map[string]any{"slug": slug})
		return notFound(c, "common.notFound")
	}
	if page == nil {
		return notFound(c, "common.notFound")
	}
	return render(c, tmpl, fiber.Map{
		"Title":   page.Title.Localized(loc),
		"Content": h.Content.RenderBlocks(page.Content.Localized(loc)),
		"Meta":    h.meta(c, page, loc, "/pages/"+slug),
	})
}

// meta applies the page's SEO overrides when present, falling back to
// its title and an empty description.
func (h *PageHandler) meta(c *fiber.Ctx, page *domain.Page, loc domain.Locale, path string) seo.Meta {
	cfg := seo.Config{
		Title:  page.Title.Localized(loc),
		URL:    path,
		Locale: ogLocale(loc),
	}
	if page.SEO != nil {
		if t := page.SEO.MetaTitle.Localized(loc); t != "" {
			cfg.Title = t
		}
		cfg.Description = page.SEO.MetaDescription.Localized(loc)
	}
	if cfg.Description == "" {
		cfg.Description = dict(c).T("meta.defaultDescription")
	}
	return seo.Build(cfg)
}
