package handlers

import (
	"fmt"
	"html/template"

	"github.com/gofiber/fiber/v2"

	"tenpak/internal/analytics"
	"tenpak/internal/cms"
	"tenpak/internal/domain"
	applog "tenpak/internal/log"
	"tenpak/internal/seo"
	"tenpak/internal/validate"
)

type ProductHandler struct {
	Content *cms.Client
	Tracker *analytics.Tracker
	SiteURL string
}

type familyCard struct {
	Title       string
	Description string
	ImageURL    string
	Slug        string
	Sectors     []string
}

func (h *ProductHandler) familyCards(families []domain.ProductFamily, loc domain.Locale) []familyCard {
	cards := make([]familyCard, 0, len(families))
	for _, f := range families {
		sectors := make([]string, 0, len(f.Sectors))
		for _, s := range f.Sectors {
			sectors = append(sectors, string(s))
		}
		cards = append(cards, familyCard{
			Title:       f.Title.Localized(loc),
			Description: f.Description.Localized(loc),
			ImageURL:    h.Content.ImageURL(f.CoverImage, 600, 400),
			Slug:        f.Slug.Current,
			Sectors:     sectors,
		})
	}
	return cards
}

// Index lists all product families, optionally narrowed by ?sector=.
func (h *ProductHandler) Index(c *fiber.Ctx) error {
	loc := locale(c)
	var (
		families []domain.ProductFamily
		err      error
	)
	if sector, ok := validate.Sector(c.Query("sector")); ok {
		families, err = h.Content.ProductFamiliesBySector(c.UserContext(), domain.Sector(sector))
	} else {
		families, err = h.Content.ProductFamilies(c.UserContext())
	}
	if err != nil {
		applog.Error(c, "products.list.fail", err, nil)
	}
	return render(c, "products", fiber.Map{
		"Families": h.familyCards(families, loc),
		"Sector":   c.Query("sector"),
		"LoadErr":  err != nil,
	})
}

// variantRow is the flattened spec-sheet row shown on the detail page.
type variantRow struct {
	Title      string
	Dimensions string
	Capacity   string
	Material   string
	LidType    string
	ImageURL   string
	PDFURL     string
}

func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	slug, ok := validate.Slug(c.Params("slug"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "slug"})
		return notFound(c, "products.notFound")
	}
	loc := locale(c)
	family, err := h.Content.ProductFamilyBySlug(c.UserContext(), slug)
	if err != nil {
		applog.Error(c, "products.detail.fail", err, map[string]any{"slug": slug})
		return notFound(c, "products.notFound")
	}
	if family == nil {
		return notFound(c, "products.notFound")
	}
	variants, err := h.Content.ProductVariantsByFamily(c.UserContext(), family.ID)
	if err != nil {
		applog.Error(c, "products.variants.fail", err, map[string]any{"slug": slug})
	}

	rows := make([]variantRow, 0, len(variants))
	for _, v := range variants {
		row := variantRow{
			Title:    v.Title.Localized(loc),
			Material: v.Material.Localized(loc),
			LidType:  v.LidType.Localized(loc),
		}
		if d := v.Dims; d != nil {
			row.Dimensions = fmt.Sprintf("%g x %g x %g mm", d.Length, d.Width, d.Height)
		}
		if v.Capacity != nil && v.Capacity.Value > 0 {
			row.Capacity = fmt.Sprintf("%g %s", v.Capacity.Value, v.Capacity.Unit)
		}
		if len(v.Images) > 0 {
			row.ImageURL = h.Content.ImageURL(v.Images[0], 300, 300)
		}
		if v.PDF != nil {
			row.PDFURL = h.Content.FileURL(*v.PDF)
		}
		rows = append(rows, row)
	}

	title := family.Title.Localized(loc)
	h.Tracker.Track(consent(c).Consent, analytics.ProductView(slug, title))

	pagePath := "/products/" + slug
	cover := h.Content.ImageURL(family.CoverImage, 1200, 630)
	schemas := []template.HTML{
		template.HTML(seo.ProductSchema(seo.Product{
			Name:        title,
			Description: family.Description.Localized(loc),
			Images:      []string{cover},
			Brand:       seo.DefaultSiteName,
			URL:         h.SiteURL + pagePath,
		})),
		template.HTML(seo.BreadcrumbSchema([]seo.Breadcrumb{
			{Name: dict(c).T("nav.home"), URL: h.SiteURL + "/"},
			{Name: dict(c).T("nav.products"), URL: h.SiteURL + "/products"},
			{Name: title, URL: h.SiteURL + pagePath},
		})),
	}

	return render(c, "product", fiber.Map{
		"Family": fiber.Map{
			"Title":       title,
			"Description": family.Description.Localized(loc),
			"ImageURL":    cover,
			"Slug":        family.Slug.Current,
		},
		"Variants": rows,
		"Meta": seo.Build(seo.Config{
			Title:       title,
			Description: family.Description.Localized(loc),
			Image:       cover,
			URL:         pagePath,
			Locale:      ogLocale(loc),
		}),
		"Schemas": schemas,
	})
}

func ogLocale(loc domain.Locale) string {
	if loc == domain.LocaleEN {
		return "en_US"
	}
	return "tr_TR"
}
