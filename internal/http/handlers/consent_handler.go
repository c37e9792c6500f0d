package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"tenpak/internal/analytics"
	applog "tenpak/internal/log"
)

type ConsentHandler struct{}

// Update handles POST /api/consent: either a mode shortcut
// ("accepted" / "necessary") or a custom per-category map.
func (h *ConsentHandler) Update(c *fiber.Ctx) error {
	var body struct {
		Mode    string            `json:"mode"`
		Consent analytics.Consent `json:"consent"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid body"})
	}

	current := consent(c)
	var rec analytics.Record
	switch body.Mode {
	case analytics.ModeAccepted:
		rec = analytics.Record{Consent: current.Consent.AcceptAll(), Mode: analytics.ModeAccepted, At: time.Now()}
	case analytics.ModeNecessary:
		rec = analytics.Record{Consent: current.Consent.AcceptNecessary(), Mode: analytics.ModeNecessary, At: time.Now()}
	case analytics.ModeCustom:
		rec = analytics.Record{Consent: current.Consent.Merge(body.Consent), Mode: analytics.ModeCustom, At: time.Now()}
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid mode"})
	}

	c.Cookie(&fiber.Cookie{
		Name:     analytics.CookieName,
		Value:    analytics.EncodeRecord(rec),
		Path:     "/",
		MaxAge:   int((180 * 24 * time.Hour).Seconds()),
		SameSite: "Lax",
	})
	applog.Info(c, "consent.update", map[string]any{"mode": rec.Mode})
	return c.JSON(rec)
}

// Reset handles POST /api/consent/reset: clears the cookie and reverts
// to the default record so the banner shows again.
func (h *ConsentHandler) Reset(c *fiber.Ctx) error {
	// fasthttp drops non-positive Max-Age, so expire by date instead.
	c.Cookie(&fiber.Cookie{
		Name:     analytics.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		SameSite: "Lax",
	})
	applog.Info(c, "consent.reset", nil)
	return c.JSON(analytics.Record{Consent: analytics.Default(), Mode: analytics.ModeNecessary})
}
