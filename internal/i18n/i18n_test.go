package i18n

import (
	"testing"
	"time"

	"tenpak/internal/domain"
)

func TestTResolvesNestedKeys(t *testing.T) {
	tr := Load(domain.LocaleTR)
	en := Load(domain.LocaleEN)

	if got := tr.T("nav.products"); got == "" || got == "nav.products" {
		t.Fatalf("tr nav.products not resolved: %q", got)
	}
	if trV, enV := tr.T("contact.submit"), en.T("contact.submit"); trV == enV {
		t.Fatalf("tr and en should differ for contact.submit: %q", trV)
	}
}

func TestTMissingKeyReturnsKey(t *testing.T) {
	d := Load(domain.LocaleTR)
	for _, key := range []string{"nope", "nav.nope", "nav.products.deeper", "contact.errors.nope"} {
		if got := d.T(key); got != key {
			t.Errorf("T(%q) = %q, want key back", key, got)
		}
	}
}

func TestLoadUnknownLocaleFallsBack(t *testing.T) {
	d := Load(domain.Locale("de"))
	if d == nil {
		t.Fatal("fallback dictionary is nil")
	}
	if got := d.T("nav.home"); got == "nav.home" {
		t.Fatalf("fallback dictionary missing nav.home")
	}
}

func TestDetect(t *testing.T) {
	cases := []struct {
		header string
		want   domain.Locale
	}{
		{"", domain.LocaleTR},
		{"tr-TR,tr;q=0.9", domain.LocaleTR},
		{"en-US,en;q=0.9,tr;q=0.8", domain.LocaleEN},
		{"de-DE,fr;q=0.9", domain.LocaleTR},
		{"de-DE,en;q=0.5", domain.LocaleEN},
		{"EN", domain.LocaleEN},
	}
	for _, tc := range cases {
		if got := Detect(tc.header); got != tc.want {
			t.Errorf("Detect(%q) = %s, want %s", tc.header, got, tc.want)
		}
	}
}

func TestLocalePath(t *testing.T) {
	if got := LocalePath("/products", domain.LocaleTR); got != "/products" {
		t.Errorf("default locale path = %q", got)
	}
	if got := LocalePath("/products", domain.LocaleEN); got != "/en/products" {
		t.Errorf("en locale path = %q", got)
	}
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2026, time.February, 3, 0, 0, 0, 0, time.UTC)
	if got := FormatDate(d, domain.LocaleTR); got != "3 Şubat 2026" {
		t.Errorf("tr date = %q", got)
	}
	if got := FormatDate(d, domain.LocaleEN); got != "February 3, 2026" {
		t.Errorf("en date = %q", got)
	}
}
