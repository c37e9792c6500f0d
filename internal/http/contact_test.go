package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	html "github.com/gofiber/template/html/v2"

	"tenpak/internal/analytics"
	"tenpak/internal/cms"
	"tenpak/internal/config"
	"tenpak/internal/http/handlers"
	"tenpak/internal/mailer"
	"tenpak/internal/verify"
)

// countSender records every dispatch attempt.
type countSender struct {
	sends []mailer.Message
	err   error
}

func (s *countSender) Send(_ context.Context, m mailer.Message) (string, error) {
	s.sends = append(s.sends, m)
	if s.err != nil {
		return "", s.err
	}
	return "msg-123", nil
}

// emptyCMS answers every query with an empty result set.
func emptyCMS(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result":[]}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

// Minimal app wired like the real entrypoint, minus rate limits.
func newContactApp(t *testing.T, sender mailer.Sender) *fiber.App {
	t.Helper()
	cfg := config.Config{
		MailFrom:          "noreply@tenpak.com",
		MailTo:            "info@tenpak.com",
		SiteURL:           "https://tenpak.com",
		VerifyTokenPrefix: "mock-recaptcha-token-",
	}
	content := cms.New("tenpak", "production", emptyCMS(t).URL)
	verifier := verify.PrefixVerifier{Prefix: cfg.VerifyTokenPrefix}
	tracker := &analytics.Tracker{}

	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})
	app.Use(handlers.Locale())

	deps := handlers.NewDeps(content, cfg, sender, verifier, tracker)
	app.Post("/api/contact", deps.ContactHandler.Submit)
	app.Get("/api/contact", deps.ContactHandler.MethodNotAllowed)
	app.Put("/api/contact", deps.ContactHandler.MethodNotAllowed)
	app.Delete("/api/contact", deps.ContactHandler.MethodNotAllowed)
	return app
}

func validFields() map[string]string {
	return map[string]string{
		"name":           "Ayşe Yılmaz",
		"company":        "Örnek Gıda",
		"email":          "ayse@example.com",
		"phone":          "05321234567",
		"message":        "Fiyat teklifi rica ederim.\nTeşekkürler.",
		"consent":        "true",
		"recaptchaToken": "mock-recaptcha-token-abc",
	}
}

func multipartBody(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf, w.FormDataContentType()
}

func postContact(t *testing.T, app *fiber.App, fields map[string]string) *http.Response {
	t.Helper()
	body, ctype := multipartBody(t, fields)
	req := httptest.NewRequest("POST", "/api/contact", body)
	req.Header.Set("Content-Type", ctype)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func decodeMessage(t *testing.T, resp *http.Response) map[string]string {
	t.Helper()
	var out map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return out
}

func TestContactHappyPath(t *testing.T) {
	sender := &countSender{}
	app := newContactApp(t, sender)

	resp := postContact(t, app, validFields())
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	out := decodeMessage(t, resp)
	if out["id"] != "msg-123" {
		t.Errorf("id = %q", out["id"])
	}
	if out["message"] == "" {
		t.Error("success message empty")
	}
	if len(sender.sends) != 1 {
		t.Fatalf("sends = %d, want exactly 1", len(sender.sends))
	}

	m := sender.sends[0]
	if m.From != "noreply@tenpak.com" || m.To != "info@tenpak.com" {
		t.Errorf("fixed addressing wrong: %s -> %s", m.From, m.To)
	}
	if m.ReplyTo != "ayse@example.com" {
		t.Errorf("reply-to = %q", m.ReplyTo)
	}
	if !strings.Contains(m.HTML, "rica ederim.<br>") {
		t.Errorf("newline not converted:\n%s", m.HTML)
	}
}

func TestContactValidationOrder(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(map[string]string)
	}{
		{"missing name", func(f map[string]string) { f["name"] = "" }},
		{"missing company", func(f map[string]string) { f["company"] = "" }},
		{"missing message", func(f map[string]string) { f["message"] = "" }},
		{"bad email", func(f map[string]string) { f["email"] = "not-an-email" }},
		{"bad phone", func(f map[string]string) { f["phone"] = "02121234567" }},
		{"no consent", func(f map[string]string) { delete(f, "consent") }},
		{"bad token", func(f map[string]string) { f["recaptchaToken"] = "wrong" }},
		{"missing token", func(f map[string]string) { delete(f, "recaptchaToken") }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sender := &countSender{}
			app := newContactApp(t, sender)
			fields := validFields()
			tc.mutate(fields)

			resp := postContact(t, app, fields)
			if resp.StatusCode != 400 {
				t.Fatalf("status = %d, want 400", resp.StatusCode)
			}
			if out := decodeMessage(t, resp); out["message"] == "" {
				t.Error("rejection carries no message")
			}
			if len(sender.sends) != 0 {
				t.Errorf("send attempted on invalid input")
			}
		})
	}
}

func TestContactEscapesSubmitterHTML(t *testing.T) {
	sender := &countSender{}
	app := newContactApp(t, sender)
	fields := validFields()
	fields["name"] = `<img src=x onerror=alert(1)>`

	if resp := postContact(t, app, fields); resp.StatusCode != 200 {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if len(sender.sends) != 1 {
		t.Fatal("no send recorded")
	}
	if strings.Contains(sender.sends[0].HTML, "<img src=x") {
		t.Errorf("submitter markup not escaped:\n%s", sender.sends[0].HTML)
	}
}

func TestContactAttachment(t *testing.T) {
	sender := &countSender{}
	app := newContactApp(t, sender)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range validFields() {
		w.WriteField(k, v)
	}
	part, err := w.CreatePart(textproto.MIMEHeader{
		"Content-Disposition": {`form-data; name="file"; filename="rfq.pdf"`},
		"Content-Type":        {"application/pdf"},
	})
	if err != nil {
		t.Fatal(err)
	}
	part.Write([]byte("%PDF-1.4 fake"))
	w.Close()

	req := httptest.NewRequest("POST", "/api/contact", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if len(sender.sends) != 1 || len(sender.sends[0].Attachments) != 1 {
		t.Fatalf("attachment not forwarded: %+v", sender.sends)
	}
	if a := sender.sends[0].Attachments[0]; a.Filename != "rfq.pdf" || len(a.Content) == 0 {
		t.Errorf("attachment = %+v", a)
	}
}

func TestContactAttachmentBadType(t *testing.T) {
	sender := &countSender{}
	app := newContactApp(t, sender)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range validFields() {
		w.WriteField(k, v)
	}
	part, _ := w.CreatePart(textproto.MIMEHeader{
		"Content-Disposition": {`form-data; name="file"; filename="evil.exe"`},
		"Content-Type":        {"application/x-msdownload"},
	})
	part.Write([]byte("MZ"))
	w.Close()

	req := httptest.NewRequest("POST", "/api/contact", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 400 {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if len(sender.sends) != 0 {
		t.Error("send attempted with rejected attachment")
	}
}

func TestContactMailerNotConfigured(t *testing.T) {
	app := newContactApp(t, mailer.Disabled())
	resp := postContact(t, app, validFields())
	if resp.StatusCode != 500 {
		t.Fatalf("status = %d, want 500", resp.StatusCode)
	}
}

func TestContactDeliveryFailure(t *testing.T) {
	sender := &countSender{err: errors.New("provider down")}
	app := newContactApp(t, sender)
	resp := postContact(t, app, validFields())
	if resp.StatusCode != 500 {
		t.Fatalf("status = %d, want 500", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if strings.Contains(string(body), "provider down") {
		t.Error("provider error leaked to the client")
	}
}

func TestContactMethodNotAllowed(t *testing.T) {
	app := newContactApp(t, &countSender{})
	for _, method := range []string{"GET", "PUT", "DELETE"} {
		req := httptest.NewRequest(method, "/api/contact", nil)
		resp, err := app.Test(req, -1)
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != 405 {
			t.Errorf("%s status = %d, want 405", method, resp.StatusCode)
		}
		if out := decodeMessage(t, resp); out["message"] != "Method not allowed" {
			t.Errorf("%s message = %q", method, out["message"])
		}
	}
}

func TestContactLocalizedRejection(t *testing.T) {
	sender := &countSender{}
	app := newContactApp(t, sender)
	fields := validFields()
	fields["email"] = "broken"

	body, ctype := multipartBody(t, fields)
	req := httptest.NewRequest("POST", "/api/contact?lang=en", body)
	req.Header.Set("Content-Type", ctype)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	enMsg := decodeMessage(t, resp)["message"]

	resp2 := postContact(t, app, fields)
	trMsg := decodeMessage(t, resp2)["message"]

	if enMsg == "" || trMsg == "" || enMsg == trMsg {
		t.Errorf("rejection not localized: en=%q tr=%q", enMsg, trMsg)
	}
}
