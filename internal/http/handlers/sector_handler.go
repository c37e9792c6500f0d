package handlers

import (
	"github.com/gofiber/fiber/v2"

	"tenpak/internal/cms"
	"tenpak/internal/domain"
	applog "tenpak/internal/log"
	"tenpak/internal/seo"
	"tenpak/internal/validate"
)

type SectorHandler struct {
	Content *cms.Client
}

// Index lists the sector solution landing cards.
func (h *SectorHandler) Index(c *fiber.Ctx) error {
	loc := locale(c)
	solutions, err := h.Content.SectorSolutions(c.UserContext())
	if err != nil {
		applog.Error(c, "sectors.list.fail", err, nil)
	}

	type card struct {
		Name        string
		Description string
		Slug        string
	}
	cards := make([]card, 0, len(solutions))
	for _, s := range solutions {
		cards = append(cards, card{
			Name:        s.SectorName.Localized(loc),
			Description: s.Description.Localized(loc),
			Slug:        s.Slug.Current,
		})
	}
	return render(c, "sectors", fiber.Map{
		"Sectors": cards,
		"LoadErr": err != nil,
	})
}

// Detail shows one sector solution with its related product families
// and the case studies tagged with the same sector.
func (h *SectorHandler) Detail(c *fiber.Ctx) error {
	slug, ok := validate.Slug(c.Params("slug"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "slug"})
		return notFound(c, "sectors.notFound")
	}
	loc := locale(c)
	solution, err := h.Content.SectorSolutionBySlug(c.UserContext(), slug)
	if err != nil {
		applog.Error(c, "sectors.detail.fail", err, map[string]any{"slug": slug})
		return notFound(c, "sectors.notFound")
	}
	if solution == nil {
		return notFound(c, "sectors.notFound")
	}

	// Sector solution slugs double as the sector enum values.
	stories, err := h.Content.CaseStudiesBySector(c.UserContext(), domain.Sector(slug))
	if err != nil {
		applog.Error(c, "sectors.stories.fail", err, map[string]any{"slug": slug})
	}

	type familyLink struct {
		Title    string
		ImageURL string
		Slug     string
	}
	families := make([]familyLink, 0, len(solution.Families))
	for _, f := range solution.Families {
		families = append(families, familyLink{
			Title:    f.Title.Localized(loc),
			ImageURL: h.Content.ImageURL(f.CoverImage, 600, 400),
			Slug:     f.Slug.Current,
		})
	}

	type storyCard struct {
		Title   string
		Problem string
		Result  string
		Slug    string
	}
	cases := make([]storyCard, 0, len(stories))
	for _, cs := range stories {
		cases = append(cases, storyCard{
			Title:   cs.Title.Localized(loc),
			Problem: cs.Problem.Localized(loc),
			Result:  cs.Result.Localized(loc),
			Slug:    cs.Slug.Current,
		})
	}

	name := solution.SectorName.Localized(loc)
	return render(c, "sector", fiber.Map{
		"Sector": fiber.Map{
			"Name":        name,
			"Description": solution.Description.Localized(loc),
		},
		"Families":    families,
		"CaseStudies": cases,
		"Meta": seo.Build(seo.Config{
			Title:       name,
			Description: solution.Description.Localized(loc),
			URL:         "/sectors/" + slug,
			Locale:      ogLocale(loc),
		}),
	})
}
