// Package analytics is the single chokepoint for tracking events and
// cookie-consent state. Consent is a plain value constructed per
// request; mutation methods return the new value instead of touching
// shared state, so concurrent requests never observe each other.
package analytics

import (
	"encoding/base64"
	"encoding/json"
	"time"
)

// Storage permission values mirror the tag manager's consent API.
const (
	Granted = "granted"
	Denied  = "denied"
)

// Consent holds the per-category storage permissions.
type Consent struct {
	AdStorage              string `json:"ad_storage"`
	AnalyticsStorage       string `json:"analytics_storage"`
	FunctionalityStorage   string `json:"functionality_storage"`
	PersonalizationStorage string `json:"personalization_storage"`
	SecurityStorage        string `json:"security_storage"`
}

// Default denies every non-essential category; functionality and
// security storage are always granted.
func Default() Consent {
	return Consent{
		AdStorage:              Denied,
		AnalyticsStorage:       Denied,
		FunctionalityStorage:   Granted,
		PersonalizationStorage: Denied,
		SecurityStorage:        Granted,
	}
}

// AcceptAll returns a consent value with every category granted.
func (Consent) AcceptAll() Consent {
	return Consent{
		AdStorage:              Granted,
		AnalyticsStorage:       Granted,
		FunctionalityStorage:   Granted,
		PersonalizationStorage: Granted,
		SecurityStorage:        Granted,
	}
}

// AcceptNecessary returns the default (essentials only) value.
func (Consent) AcceptNecessary() Consent {
	return Default()
}

// Merge overlays the non-empty fields of the partial update and
// returns the combined value.
func (c Consent) Merge(p Consent) Consent {
	if p.AdStorage != "" {
		c.AdStorage = p.AdStorage
	}
	if p.AnalyticsStorage != "" {
		c.AnalyticsStorage = p.AnalyticsStorage
	}
	if p.FunctionalityStorage != "" {
		c.FunctionalityStorage = p.FunctionalityStorage
	}
	if p.PersonalizationStorage != "" {
		c.PersonalizationStorage = p.PersonalizationStorage
	}
	if p.SecurityStorage != "" {
		c.SecurityStorage = p.SecurityStorage
	}
	return c
}

// Modes discriminate how the visitor answered the banner.
const (
	ModeAccepted  = "accepted"
	ModeNecessary = "necessary"
	ModeCustom    = "custom"
)

// Record is the persisted consent state: the settings, how they were
// chosen, and when.
type Record struct {
	Consent Consent   `json:"consent"`
	Mode    string    `json:"mode"`
	At      time.Time `json:"at"`
}

// CookieName is where the record persists on the client.
const CookieName = "cookie-consent"

// EncodeRecord serializes a record for the consent cookie.
func EncodeRecord(r Record) string {
	b, err := json.Marshal(r)
	if err != nil {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(b)
}

// DecodeRecord restores a record from its cookie form. Any damage
// (wrong or expired encoding, hand-edited cookie) falls back to the
// default record so a bad cookie can never break a page.
func DecodeRecord(s string) Record {
	fallback := Record{Consent: Default(), Mode: ModeNecessary}
	if s == "" {
		return fallback
	}
	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return fallback
	}
	var r Record
	if err := json.Unmarshal(b, &r); err != nil {
		return fallback
	}
	switch r.Mode {
	case ModeAccepted, ModeNecessary, ModeCustom:
	default:
		return fallback
	}
	return r
}
