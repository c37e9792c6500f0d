package handlers

import (
	"path"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"tenpak/internal/analytics"
	"tenpak/internal/cms"
	"tenpak/internal/domain"
	applog "tenpak/internal/log"
	"tenpak/internal/validate"
)

type DownloadsHandler struct {
	Content *cms.Client
	Tracker *analytics.Tracker
}

// Index renders the documents library: media assets narrowed by
// ?type=, ?tag= and ?q=, plus the strip of currently valid
// certificates.
func (h *DownloadsHandler) Index(c *fiber.Ctx) error {
	loc := locale(c)
	ctx := c.UserContext()

	var (
		files []domain.Media
		err   error
	)
	switch {
	case c.Query("type") != "":
		if ft, ok := validate.FileType(c.Query("type")); ok {
			files, err = h.Content.MediaFilesByType(ctx, ft)
		} else {
			files, err = h.Content.MediaFiles(ctx)
		}
	case c.Query("tag") != "":
		files, err = h.Content.MediaFilesByTag(ctx, c.Query("tag"))
	default:
		files, err = h.Content.MediaFiles(ctx)
	}
	if err != nil {
		applog.Error(c, "downloads.list.fail", err, nil)
	}
	if q, ok := validate.Q(c.Query("q")); ok {
		files = filterMedia(files, q)
	}

	certs, certErr := h.Content.ActiveCertificates(ctx, time.Now())
	if certErr != nil {
		applog.Error(c, "downloads.certificates.fail", certErr, nil)
	}

	type fileRow struct {
		Title       string
		Description string
		Type        string
		Tags        []string
		URL         string
		Ext         string
	}
	rows := make([]fileRow, 0, len(files))
	for _, f := range files {
		url := h.Content.FileURL(f.File)
		rows = append(rows, fileRow{
			Title:       f.Title,
			Description: f.Description,
			Type:        f.FileType,
			Tags:        f.Tags,
			URL:         url,
			Ext:         strings.TrimPrefix(path.Ext(url), "."),
		})
	}

	type certRow struct {
		Title      string
		URL        string
		IssueDate  string
		ExpiryDate string
	}
	certRows := make([]certRow, 0, len(certs))
	for _, cert := range certs {
		certRows = append(certRows, certRow{
			Title:      cert.Title.Localized(loc),
			URL:        h.Content.FileURL(cert.PDF),
			IssueDate:  cert.IssueDate,
			ExpiryDate: cert.ExpiryDate,
		})
	}

	return render(c, "downloads", fiber.Map{
		"Files":        rows,
		"Certificates": certRows,
		"Type":         c.Query("type"),
		"Tag":          c.Query("tag"),
		"Query":        c.Query("q"),
		"LoadErr":      err != nil,
	})
}

// Track records a file download event and redirects to the asset.
func (h *DownloadsHandler) Track(c *fiber.Ctx) error {
	url := c.Query("url")
	if !strings.HasPrefix(url, h.Content.CDNBase()) {
		return notFound(c, "common.notFound")
	}
	name := path.Base(url)
	h.Tracker.Track(consent(c).Consent, analytics.FileDownload(name, strings.TrimPrefix(path.Ext(name), ".")))
	return c.Redirect(url, fiber.StatusFound)
}

// filterMedia keeps files whose title, description or tags contain the
// term, case-insensitively.
func filterMedia(files []domain.Media, term string) []domain.Media {
	term = strings.ToLower(term)
	out := make([]domain.Media, 0, len(files))
	for _, f := range files {
		if strings.Contains(strings.ToLower(f.Title), term) ||
			strings.Contains(strings.ToLower(f.Description), term) {
			out = append(out, f)
			continue
		}
		for _, t := range f.Tags {
			if strings.Contains(strings.ToLower(t), term) {
				out = append(out, f)
				break
			}
		}
	}
	return out
}
