package main

import (
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"tenpak/internal/analytics"
	"tenpak/internal/cms"
	"tenpak/internal/config"
	"tenpak/internal/http/handlers"
	applog "tenpak/internal/log"
	"tenpak/internal/mailer"
	"tenpak/internal/validate"
	"tenpak/internal/verify"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	// Collaborator wiring
	content := cms.New(cfg.CMSProjectID, cfg.CMSDataset, cfg.CMSBaseURL)
	sender := mailer.Disabled()
	if cfg.ResendAPIKey != "" {
		sender = mailer.NewResendSender(cfg.ResendAPIKey)
	}
	verifier := verify.PrefixVerifier{Prefix: cfg.VerifyTokenPrefix}
	tracker := &analytics.Tracker{Sink: analytics.LogSink{}}

	// Templates & app
	engine := html.New("./web/templates", ".html")
	engine.Reload(true)

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Log and show a friendly message
			applog.Error(c, "server.error", err, nil)
			// Avoid leaking internals; best-effort render
			if rerr := c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{
				"Message": "Something went wrong. Please try again.",
			}); rerr != nil {
				return c.Status(fiber.StatusInternalServerError).SendString("Something went wrong. Please try again.")
			}
			return nil
		},
	})
	// Body guard sized for the contact form's 10 MB attachment ceiling
	app.Server().MaxRequestBodySize = validate.MaxUploadSize + (1 << 20)

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(handlers.Locale())
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("GTMID", cfg.GTMID)
		c.Locals("SiteVerification", cfg.SiteVerification)
		c.Locals("SiteURL", cfg.SiteURL)
		return c.Next()
	})
	app.Use(limiter.New(limiter.Config{
		Max:        60,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			p := string(c.Request().URI().Path())
			return strings.HasPrefix(p, "/static/")
		},
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   false, // set true behind HTTPS
		Next: func(c *fiber.Ctx) bool {
			// Consent endpoints take JSON bodies from the banner script.
			return strings.HasPrefix(c.Path(), "/api/consent")
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			formTok := c.FormValue("csrf")
			applog.Security(c, "csrf.fail", map[string]any{"form": formTok})
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Security check failed. Please refresh and try again."})
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok := c.Locals("csrf"); tok != nil {
			c.Locals("CSRFToken", tok.(string))
		}
		return c.Next()
	})

	// ---------- Static assets ----------
	log.Printf("[static] /static -> ./web/static")
	app.Static("/static", "./web/static")

	// ---------- App handlers ----------
	deps := handlers.NewDeps(content, cfg, sender, verifier, tracker)

	// Public pages
	app.Get("/", deps.HomeHandler.Home)
	app.Get("/products", deps.ProductHandler.Index)
	app.Get("/products/:slug", deps.ProductHandler.Detail)
	app.Get("/sectors", deps.SectorHandler.Index)
	app.Get("/sectors/:slug", deps.SectorHandler.Detail)
	app.Get("/case-studies", deps.CaseStudyHandler.Index)
	app.Get("/case-studies/:slug", deps.CaseStudyHandler.Detail)
	app.Get("/about", deps.PageHandler.About)
	app.Get("/sustainability", deps.PageHandler.Sustainability)
	app.Get("/pages/:slug", deps.PageHandler.Show)
	app.Get("/downloads", deps.DownloadsHandler.Index)
	app.Get("/downloads/track", deps.DownloadsHandler.Track)
	app.Get("/search", limiter.New(limiter.Config{Max: 20, Expiration: time.Minute}), deps.SearchHandler.Search)
	app.Get("/contact", deps.ContactHandler.Form)

	// Contact API (throttled; non-POST verbs answered explicitly)
	app.Post("/api/contact", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.contact.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"message": "Too many submissions. Please try again later."})
		},
	}), deps.ContactHandler.Submit)
	app.Get("/api/contact", deps.ContactHandler.MethodNotAllowed)
	app.Put("/api/contact", deps.ContactHandler.MethodNotAllowed)
	app.Delete("/api/contact", deps.ContactHandler.MethodNotAllowed)

	// Consent
	app.Post("/api/consent", deps.ConsentHandler.Update)
	app.Post("/api/consent/reset", deps.ConsentHandler.Reset)

	// Crawlers
	app.Get("/sitemap.xml", deps.SEOHandler.Sitemap)
	app.Get("/robots.txt", deps.SEOHandler.Robots)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Page not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
