package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"tenpak/internal/analytics"
	"tenpak/internal/cms"
	applog "tenpak/internal/log"
	"tenpak/internal/validate"
)

type SearchHandler struct {
	Content *cms.Client
	Tracker *analytics.Tracker
}

func (h *SearchHandler) Search(c *fiber.Ctx) error {
	rawQ := c.Query("q")
	if strings.TrimSpace(rawQ) == "" {
		// Initial page load: show empty search without errors
		return render(c, "search", fiber.Map{"Q": "", "Groups": []any{}, "Count": 0})
	}
	q, ok := validate.Q(rawQ)
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "q", "value": rawQ})
		return c.Status(fiber.StatusBadRequest).Render("search", fiber.Map{
			"Lang": string(locale(c)), "Dict": dict(c), "Consent": consent(c),
			"Q": "", "Groups": []any{}, "Count": 0, "Err": dict(c).T("search.invalid"),
		})
	}

	loc := locale(c)
	hits, err := h.Content.Search(c.UserContext(), q, loc)
	if err != nil {
		applog.Error(c, "search.fail", err, map[string]any{"q": q})
		return render(c, "search", fiber.Map{
			"Q": q, "Groups": []any{}, "Count": 0, "Err": dict(c).T("common.loadError"),
		})
	}

	type hitRow struct {
		Label string
		Path  string
	}
	type group struct {
		Kind string
		Hits []hitRow
	}
	order := []string{"productFamily", "sectorSolution", "caseStudy", "page"}
	byKind := map[string][]hitRow{}
	for _, hit := range hits {
		byKind[hit.Type] = append(byKind[hit.Type], hitRow{Label: hit.Label(loc), Path: hit.Path()})
	}
	groups := make([]group, 0, len(order))
	for _, kind := range order {
		if rows := byKind[kind]; len(rows) > 0 {
			groups = append(groups, group{Kind: kind, Hits: rows})
		}
	}

	h.Tracker.Track(consent(c).Consent, analytics.Search(q, len(hits)))
	return render(c, "search", fiber.Map{
		"Q": q, "Groups": groups, "Count": len(hits),
	})
}
