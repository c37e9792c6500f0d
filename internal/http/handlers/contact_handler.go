package handlers

import (
	"errors"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"tenpak/internal/analytics"
	"tenpak/internal/cms"
	"tenpak/internal/config"
	applog "tenpak/internal/log"
	"tenpak/internal/mailer"
	"tenpak/internal/validate"
	"tenpak/internal/verify"
)

type ContactHandler struct {
	Mailer   mailer.Sender
	Verifier verify.Verifier
	Tracker  *analytics.Tracker
	Content  *cms.Client
	Cfg      config.Config
}

// Form renders the contact page with the sector and product family
// choices for the selects. Either list failing to load leaves its
// select empty; the form itself still works.
func (h *ContactHandler) Form(c *fiber.Ctx) error {
	loc := locale(c)
	ctx := c.UserContext()

	solutions, err := h.Content.SectorSolutions(ctx)
	if err != nil {
		applog.Error(c, "contact.sectors.fail", err, nil)
	}
	families, err := h.Content.ProductFamilies(ctx)
	if err != nil {
		applog.Error(c, "contact.families.fail", err, nil)
	}

	type option struct{ Value, Label string }
	sectorOpts := make([]option, 0, len(solutions))
	for _, s := range solutions {
		sectorOpts = append(sectorOpts, option{Value: s.Slug.Current, Label: s.SectorName.Localized(loc)})
	}
	familyOpts := make([]option, 0, len(families))
	for _, f := range families {
		familyOpts = append(familyOpts, option{Value: f.Slug.Current, Label: f.Title.Localized(loc)})
	}

	return render(c, "contact", fiber.Map{
		"Sectors":  sectorOpts,
		"Families": familyOpts,
	})
}

// submission is the parsed multipart payload of one contact request.
type submission struct {
	Name    string
	Company string
	Email   string
	Phone   string
	Sector  string
	Family  string
	Message string
}

// Submit handles POST /api/contact. Validation runs in a fixed order
// and stops at the first failure; every rejection carries a localized
// message. A valid submission becomes exactly one email dispatch.
func (h *ContactHandler) Submit(c *fiber.Ctx) error {
	d := dict(c)
	ref := uuid.NewString()
	fail := func(status int, key string, field string) error {
		applog.Security(c, "contact.reject", map[string]any{"ref": ref, "field": field})
		return c.Status(status).JSON(fiber.Map{"message": d.T(key)})
	}

	sub := submission{
		Name:    strings.TrimSpace(c.FormValue("name")),
		Company: strings.TrimSpace(c.FormValue("company")),
		Email:   strings.TrimSpace(c.FormValue("email")),
		Phone:   strings.TrimSpace(c.FormValue("phone")),
		Sector:  strings.TrimSpace(c.FormValue("sector")),
		Family:  strings.TrimSpace(c.FormValue("productFamily")),
		Message: strings.TrimSpace(c.FormValue("message")),
	}

	for _, f := range []struct{ name, value string }{
		{"name", sub.Name}, {"company", sub.Company}, {"email", sub.Email},
		{"phone", sub.Phone}, {"message", sub.Message},
	} {
		if f.value == "" {
			return fail(fiber.StatusBadRequest, "contact.errors.required", f.name)
		}
	}
	email, ok := validate.Email(sub.Email)
	if !ok {
		return fail(fiber.StatusBadRequest, "contact.errors.email", "email")
	}
	phone, ok := validate.PhoneTR(sub.Phone)
	if !ok {
		return fail(fiber.StatusBadRequest, "contact.errors.phone", "phone")
	}
	if c.FormValue("consent") != "true" && c.FormValue("consent") != "on" {
		return fail(fiber.StatusBadRequest, "contact.errors.consent", "consent")
	}
	if !h.Verifier.Verify(c.UserContext(), c.FormValue("recaptchaToken")) {
		return fail(fiber.StatusBadRequest, "contact.errors.verify", "recaptchaToken")
	}

	var attachments []mailer.Attachment
	if fh, err := c.FormFile("file"); err == nil && fh != nil {
		desc := validate.FileDescriptor{Name: fh.Filename, Size: fh.Size, MIME: fh.Header.Get("Content-Type")}
		if !validate.Upload(desc) {
			return fail(fiber.StatusBadRequest, "contact.errors.file", "file")
		}
		src, err := fh.Open()
		if err != nil {
			applog.Error(c, "contact.file.open", err, map[string]any{"ref": ref})
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": d.T("contact.errors.server")})
		}
		content, err := io.ReadAll(io.LimitReader(src, validate.MaxUploadSize+1))
		src.Close()
		if err != nil || int64(len(content)) > validate.MaxUploadSize {
			return fail(fiber.StatusBadRequest, "contact.errors.file", "file")
		}
		attachments = append(attachments, mailer.Attachment{Filename: fh.Filename, Content: content})
	}

	msg := mailer.Message{
		From:        h.Cfg.MailFrom,
		To:          h.Cfg.MailTo,
		Subject:     fmt.Sprintf("Web form: %s (%s)", sub.Name, sub.Company),
		HTML:        notificationHTML(sub),
		ReplyTo:     email,
		Attachments: attachments,
	}
	id, err := h.Mailer.Send(c.UserContext(), msg)
	if err != nil {
		if errors.Is(err, mailer.ErrNotConfigured) {
			applog.Error(c, "contact.mail.unconfigured", err, map[string]any{"ref": ref})
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": d.T("contact.errors.mailConfig")})
		}
		applog.Error(c, "contact.mail.send", err, map[string]any{"ref": ref})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": d.T("contact.errors.mailSend")})
	}

	applog.Audit(c, "contact.submit", map[string]any{"ref": ref, "id": id, "phone_ok": phone != ""})
	h.Tracker.Track(consent(c).Consent, analytics.FormSubmit("contact"))
	return c.JSON(fiber.Map{"message": d.T("contact.success"), "id": id})
}

// MethodNotAllowed answers the contact endpoint's non-POST verbs.
func (h *ContactHandler) MethodNotAllowed(c *fiber.Ctx) error {
	return c.Status(fiber.StatusMethodNotAllowed).JSON(fiber.Map{"message": "Method not allowed"})
}

// notificationHTML formats the submission for the recipient inbox.
// Every field is escaped; newlines in the free-text message become
// line breaks.
func notificationHTML(s submission) string {
	esc := html.EscapeString
	row := func(label, value string) string {
		return fmt.Sprintf("<p><strong>%s:</strong> %s</p>", label, esc(value))
	}
	var b strings.Builder
	b.WriteString("<h2>Yeni iletişim formu mesajı</h2>")
	b.WriteString(row("Ad Soyad", s.Name))
	b.WriteString(row("Firma", s.Company))
	b.WriteString(row("E-posta", s.Email))
	b.WriteString(row("Telefon", s.Phone))
	if s.Sector != "" {
		b.WriteString(row("Sektör", s.Sector))
	}
	if s.Family != "" {
		b.WriteString(row("Ürün Grubu", s.Family))
	}
	message := strings.ReplaceAll(esc(s.Message), "\n", "<br>")
	b.WriteString(fmt.Sprintf("<p><strong>Mesaj:</strong><br>%s</p>", message))
	return b.String()
}
