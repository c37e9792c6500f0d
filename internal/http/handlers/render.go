package handlers

import (
	"github.com/gofiber/fiber/v2"

	"tenpak/internal/analytics"
	"tenpak/internal/domain"
	"tenpak/internal/i18n"
	"tenpak/internal/seo"
)

// Locale resolves the request language (?lang > cookie > Accept-Language
// > default) and stashes the locale plus its dictionary in Locals for
// handlers and templates. Also decodes the consent cookie so every view
// knows whether to show the banner.
func Locale() fiber.Handler {
	return func(c *fiber.Ctx) error {
		code := c.Query("lang")
		if !i18n.Valid(code) {
			code = c.Cookies("lang")
		}
		if !i18n.Valid(code) {
			code = string(i18n.Detect(c.Get("Accept-Language")))
		}
		if c.Query("lang") != "" && i18n.Valid(c.Query("lang")) {
			c.Cookie(&fiber.Cookie{Name: "lang", Value: code, Path: "/", SameSite: "Lax"})
		}
		loc := domain.Locale(code)
		c.Locals("locale", code)
		c.Locals("dict", i18n.Load(loc))
		c.Locals("consent", analytics.DecodeRecord(c.Cookies(analytics.CookieName)))
		return c.Next()
	}
}

func locale(c *fiber.Ctx) domain.Locale {
	if code, ok := c.Locals("locale").(string); ok && i18n.Valid(code) {
		return domain.Locale(code)
	}
	return domain.DefaultLocale
}

func dict(c *fiber.Ctx) i18n.Dictionary {
	if d, ok := c.Locals("dict").(i18n.Dictionary); ok {
		return d
	}
	return i18n.Load(domain.DefaultLocale)
}

func consent(c *fiber.Ctx) analytics.Record {
	if r, ok := c.Locals("consent").(analytics.Record); ok {
		return r
	}
	return analytics.Record{Consent: analytics.Default(), Mode: analytics.ModeNecessary}
}

// render injects the per-request locale, dictionary, consent state and
// a default Meta before handing off to the template engine.
func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	d := dict(c)
	data["Lang"] = string(locale(c))
	data["Dict"] = d
	data["Consent"] = consent(c)
	if tok, ok := c.Locals("CSRFToken").(string); ok {
		data["CSRFToken"] = tok
	}
	if id, ok := c.Locals("GTMID").(string); ok {
		data["GTMID"] = id
	}
	if _, ok := data["Meta"]; !ok {
		data["Meta"] = seo.Build(seo.Config{
			Title:       d.T("meta.defaultTitle"),
			Description: d.T("meta.defaultDescription"),
			URL:         c.Path(),
			SiteName:    d.T("meta.siteName"),
		})
	}
	// The search-engine verification token and the absolute URL base
	// apply to every page.
	if m, ok := data["Meta"].(seo.Meta); ok {
		if v, ok := c.Locals("SiteVerification").(string); ok && m.Verification == "" {
			m.Verification = v
		}
		if base, ok := c.Locals("SiteURL").(string); ok {
			m = m.Absolutize(base)
		}
		data["Meta"] = m
	}
	return c.Render(tmpl, data)
}

// notFound renders the friendly 404 page with a localized message.
func notFound(c *fiber.Ctx, messageKey string) error {
	m := seo.Build(seo.Config{
		Title:       dict(c).T("common.notFound"),
		Description: dict(c).T("meta.defaultDescription"),
	})
	if base, ok := c.Locals("SiteURL").(string); ok {
		m = m.Absolutize(base)
	}
	return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{
		"Lang":    string(locale(c)),
		"Dict":    dict(c),
		"Consent": consent(c),
		"Message": dict(c).T(messageKey),
		"Meta":    m,
	})
}
