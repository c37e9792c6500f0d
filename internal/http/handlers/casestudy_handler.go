package handlers

import (
	"github.com/gofiber/fiber/v2"

	"tenpak/internal/cms"
	applog "tenpak/internal/log"
	"tenpak/internal/seo"
	"tenpak/internal/validate"
)

type CaseStudyHandler struct {
	Content *cms.Client
}

// Index lists all customer stories.
func (h *CaseStudyHandler) Index(c *fiber.Ctx) error {
	loc := locale(c)
	stories, err := h.Content.CaseStudies(c.UserContext())
	if err != nil {
		applog.Error(c, "casestudies.list.fail", err, nil)
	}

	type card struct {
		Title  string
		Sector string
		Slug   string
	}
	cards := make([]card, 0, len(stories))
	for _, cs := range stories {
		cards = append(cards, card{
			Title:  cs.Title.Localized(loc),
			Sector: string(cs.Sector),
			Slug:   cs.Slug.Current,
		})
	}
	return render(c, "casestudies", fiber.Map{
		"CaseStudies": cards,
		"LoadErr":     err != nil,
	})
}

// Detail shows one story's problem/solution/result narrative.
func (h *CaseStudyHandler) Detail(c *fiber.Ctx) error {
	slug, ok := validate.Slug(c.Params("slug"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "slug"})
		return notFound(c, "common.notFound")
	}
	loc := locale(c)
	story, err := h.Content.CaseStudyBySlug(c.UserContext(), slug)
	if err != nil {
		applog.Error(c, "casestudies.detail.fail", err, map[string]any{"slug": slug})
		return notFound(c, "common.notFound")
	}
	if story == nil {
		return notFound(c, "common.notFound")
	}

	gallery := make([]string, 0, len(story.Gallery))
	for _, img := range story.Gallery {
		gallery = append(gallery, h.Content.ImageURL(img, 800, 600))
	}

	title := story.Title.Localized(loc)
	return render(c, "casestudy", fiber.Map{
		"Story": fiber.Map{
			"Title":    title,
			"Sector":   string(story.Sector),
			"Problem":  story.Problem.Localized(loc),
			"Solution": story.Solution.Localized(loc),
			"Result":   story.Result.Localized(loc),
		},
		"Gallery": gallery,
		"Meta": seo.Build(seo.Config{
			Title:       title,
			Description: story.Problem.Localized(loc),
			URL:         "/case-studies/" + slug,
			Type:        "article",
			Locale:      ogLocale(loc),
		}),
	})
}
