package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"tenpak/internal/cms"
	applog "tenpak/internal/log"
)

type HomeHandler struct {
	Content *cms.Client
}

// Home renders the landing page from three independent reads; a failed
// read degrades its own section to the empty state and the rest still
// render.
func (h *HomeHandler) Home(c *fiber.Ctx) error {
	data := h.Content.Homepage(c.UserContext(), time.Now())
	for _, err := range data.Errors() {
		applog.Error(c, "home.fetch.partial", err, nil)
	}
	loc := locale(c)

	type familyCard struct {
		Title       string
		Description string
		ImageURL    string
		Slug        string
	}
	cards := make([]familyCard, 0, len(data.Families))
	for _, f := range data.Families {
		cards = append(cards, familyCard{
			Title:       f.Title.Localized(loc),
			Description: f.Description.Localized(loc),
			ImageURL:    h.Content.ImageURL(f.CoverImage, 600, 400),
			Slug:        f.Slug.Current,
		})
	}

	type certCard struct {
		Title string
		URL   string
	}
	certs := make([]certCard, 0, len(data.Certificates))
	for _, cert := range data.Certificates {
		certs = append(certs, certCard{
			Title: cert.Title.Localized(loc),
			URL:   h.Content.FileURL(cert.PDF),
		})
	}

	type storyCard struct {
		Title  string
		Sector string
		Slug   string
	}
	stories := make([]storyCard, 0, len(data.CaseStudies))
	for _, cs := range data.CaseStudies {
		stories = append(stories, storyCard{
			Title:  cs.Title.Localized(loc),
			Sector: string(cs.Sector),
			Slug:   cs.Slug.Current,
		})
	}

	return render(c, "home", fiber.Map{
		"Families":        cards,
		"FamiliesErr":     data.FamiliesErr != nil,
		"Certificates":    certs,
		"CertificatesErr": data.CertificatesErr != nil,
		"CaseStudies":     stories,
		"CaseStudiesErr":  data.CaseStudiesErr != nil,
	})
}
