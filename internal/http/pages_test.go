package handlers_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	html "github.com/gofiber/template/html/v2"

	"tenpak/internal/analytics"
	"tenpak/internal/cms"
	"tenpak/internal/config"
	"tenpak/internal/http/handlers"
	"tenpak/internal/mailer"
	"tenpak/internal/verify"
)

// cmsFixture answers queries by substring match against the GROQ text.
func cmsFixture(t *testing.T, routes map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("query")
		for needle, body := range routes {
			if strings.Contains(query, needle) {
				w.Write([]byte(body))
				return
			}
		}
		w.Write([]byte(`{"result":[]}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newSiteApp(t *testing.T, backend *httptest.Server) *fiber.App {
	t.Helper()
	cfg := config.Config{SiteURL: "https://tenpak.com", VerifyTokenPrefix: "mock-recaptcha-token-"}
	content := cms.New("tenpak", "production", backend.URL)
	deps := handlers.NewDeps(content, cfg, mailer.Disabled(), verify.PrefixVerifier{Prefix: cfg.VerifyTokenPrefix}, &analytics.Tracker{})

	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})
	app.Use(handlers.Locale())
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("SiteURL", cfg.SiteURL)
		return c.Next()
	})

	app.Get("/", deps.HomeHandler.Home)
	app.Get("/products", deps.ProductHandler.Index)
	app.Get("/products/:slug", deps.ProductHandler.Detail)
	app.Get("/sectors", deps.SectorHandler.Index)
	app.Get("/search", deps.SearchHandler.Search)
	app.Post("/api/consent", deps.ConsentHandler.Update)
	app.Post("/api/consent/reset", deps.ConsentHandler.Reset)
	app.Get("/sitemap.xml", deps.SEOHandler.Sitemap)
	app.Get("/robots.txt", deps.SEOHandler.Robots)
	return app
}

func get(t *testing.T, app *fiber.App, target string, headers map[string]string) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest("GET", target, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, string(body)
}

const familyFixture = `{"result":[
	{"_id":"f1","_type":"productFamily",
	 "title":{"tr":"Yuvarlak Kutular","en":"Round Cans"},
	 "description":{"tr":"Gıda sınıfı teneke","en":"Food grade tinplate"},
	 "coverImage":{"asset":{"_ref":"image-abc-800x600-jpg"}},
	 "slug":{"current":"round-cans"}}
]}`

func TestHomeRendersLocalized(t *testing.T) {
	app := newSiteApp(t, cmsFixture(t, map[string]string{`"productFamily"`: familyFixture}))

	_, body := get(t, app, "/", nil)
	if !strings.Contains(body, "Yuvarlak Kutular") {
		t.Error("tr family title missing from home")
	}

	_, body = get(t, app, "/?lang=en", nil)
	if !strings.Contains(body, "Round Cans") {
		t.Error("en family title missing from home")
	}
	if !strings.Contains(body, `lang="en"`) {
		t.Error("html lang not switched")
	}
}

func TestHomeShowsConsentBannerUntilDecision(t *testing.T) {
	app := newSiteApp(t, cmsFixture(t, nil))

	_, body := get(t, app, "/", nil)
	if !strings.Contains(body, "consent-banner") {
		t.Error("banner missing for first visit")
	}

	rec := analytics.Record{Consent: analytics.Default().AcceptAll(), Mode: analytics.ModeAccepted, At: time.Now()}
	_, body = get(t, app, "/", map[string]string{
		"Cookie": analytics.CookieName + "=" + analytics.EncodeRecord(rec),
	})
	if strings.Contains(body, "consent-banner") {
		t.Error("banner still shown after an accept decision")
	}
}

func TestLocaleDetectionFromHeader(t *testing.T) {
	app := newSiteApp(t, cmsFixture(t, nil))
	_, body := get(t, app, "/", map[string]string{"Accept-Language": "en-US,en;q=0.9"})
	if !strings.Contains(body, `lang="en"`) {
		t.Error("Accept-Language not honored")
	}
}

func TestProductDetailNotFound(t *testing.T) {
	app := newSiteApp(t, cmsFixture(t, map[string]string{`slug.current == $slug`: `{"result":null}`}))
	resp, _ := get(t, app, "/products/unknown-family", nil)
	if resp.StatusCode != 404 {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestProductDetailRendersVariants(t *testing.T) {
	app := newSiteApp(t, cmsFixture(t, map[string]string{
		`slug.current == $slug`: `{"result":
			{"_id":"f1","_type":"productFamily",
			 "title":{"tr":"Yuvarlak Kutular","en":"Round Cans"},
			 "description":{"tr":"a","en":"b"},
			 "slug":{"current":"round-cans"}}}`,
		`productFamily._ref == $familyId`: `{"result":[
			{"_id":"v1","_type":"productVariant",
			 "title":{"tr":"99x33 Kutu"},
			 "dimensions":{"length":99,"width":99,"height":33},
			 "capacity":{"value":250,"unit":"ml"},
			 "material":{"tr":"Teneke","en":"Tinplate"},
			 "lidType":{"tr":"Kolay açılır","en":"Easy open"},
			 "pdfFile":{"asset":{"_ref":"file-spec-pdf"}},
			 "images":[{"asset":{"_ref":"image-v1-300x300-jpg"}}]}
		]}`,
	}))

	resp, body := get(t, app, "/products/round-cans", nil)
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	for _, want := range []string{"99x33 Kutu", "99 x 99 x 33 mm", "250 ml", "Teneke", "spec.pdf", "application/ld+json"} {
		if !strings.Contains(body, want) {
			t.Errorf("detail page missing %q", want)
		}
	}
}

func TestMetaURLsAreAbsolute(t *testing.T) {
	app := newSiteApp(t, cmsFixture(t, map[string]string{
		`_type == "productFamily"`: `{"result":[]}`,
	}))

	resp, body := get(t, app, "/products", nil)
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if !strings.Contains(body, `<link rel="canonical" href="https://tenpak.com/products">`) {
		t.Error("canonical is not absolute")
	}
	if !strings.Contains(body, `hreflang="en" href="https://tenpak.com/products?lang=en"`) {
		t.Error("hreflang alternate is not absolute")
	}
}

func TestSearchRejectsMarkup(t *testing.T) {
	app := newSiteApp(t, cmsFixture(t, nil))
	resp, _ := get(t, app, "/search?q=%3Cscript%3E", nil)
	if resp.StatusCode != 400 {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestConsentEndpoints(t *testing.T) {
	app := newSiteApp(t, cmsFixture(t, nil))

	req := httptest.NewRequest("POST", "/api/consent", strings.NewReader(`{"mode":"accepted"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var cookie string
	for _, c := range resp.Cookies() {
		if c.Name == analytics.CookieName {
			cookie = c.Value
		}
	}
	if cookie == "" {
		t.Fatal("consent cookie not set")
	}
	rec := analytics.DecodeRecord(cookie)
	if rec.Mode != analytics.ModeAccepted || rec.Consent.AnalyticsStorage != analytics.Granted {
		t.Errorf("cookie record = %+v", rec)
	}

	req = httptest.NewRequest("POST", "/api/consent", strings.NewReader(`{"mode":"wat"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 400 {
		t.Errorf("bad mode status = %d", resp.StatusCode)
	}

	req = httptest.NewRequest("POST", "/api/consent/reset", nil)
	resp, err = app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("reset status = %d", resp.StatusCode)
	}
	cleared := false
	for _, ck := range resp.Cookies() {
		if ck.Name != analytics.CookieName {
			continue
		}
		cleared = ck.Value == "" && !ck.Expires.IsZero() && ck.Expires.Before(time.Now())
	}
	if !cleared {
		t.Error("reset did not expire the cookie")
	}
}

func TestSitemapAndRobots(t *testing.T) {
	app := newSiteApp(t, cmsFixture(t, map[string]string{
		`"productFamily"`: `{"result":[
			{"_id":"f1","_updatedAt":"2026-07-15T08:00:00Z","slug":{"current":"round-cans"}}
		]}`,
	}))

	resp, body := get(t, app, "/sitemap.xml", nil)
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "xml") {
		t.Errorf("content type = %q", ct)
	}
	for _, want := range []string{
		"<loc>https://tenpak.com/</loc>",
		"<loc>https://tenpak.com/products/round-cans</loc>",
		"2026-07-15",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("sitemap missing %q", want)
		}
	}

	resp, body = get(t, app, "/robots.txt", nil)
	if resp.StatusCode != 200 || !strings.Contains(body, "Sitemap: https://tenpak.com/sitemap.xml") {
		t.Errorf("robots.txt wrong: %d %q", resp.StatusCode, body)
	}
}
