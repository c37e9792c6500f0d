// Package i18n resolves locales and translation dictionaries for the
// two supported site languages.
package i18n

import (
	"embed"
	"encoding/json"
	"log"
	"strings"
	"sync"
	"time"

	"tenpak/internal/domain"
)

//go:embed dictionaries/*.json
var dictFS embed.FS

// Dictionary is a nested key-value translation map.
type Dictionary map[string]any

var (
	once  sync.Once
	dicts map[domain.Locale]Dictionary
)

func load() {
	dicts = make(map[domain.Locale]Dictionary, len(domain.Locales))
	for _, loc := range domain.Locales {
		b, err := dictFS.ReadFile("dictionaries/" + string(loc) + ".json")
		if err != nil {
			log.Printf("[i18n] missing dictionary for %s: %v", loc, err)
			continue
		}
		var d Dictionary
		if err := json.Unmarshal(b, &d); err != nil {
			log.Printf("[i18n] broken dictionary for %s: %v", loc, err)
			continue
		}
		dicts[loc] = d
	}
}

// Load returns the dictionary for a locale, falling back to the default
// locale when the requested one is unknown or failed to parse.
func Load(loc domain.Locale) Dictionary {
	once.Do(load)
	if d, ok := dicts[loc]; ok {
		return d
	}
	return dicts[domain.DefaultLocale]
}

// T walks a dot-separated key through the nested map. A missing key
// returns the key itself so untranslated strings stay visible.
func (d Dictionary) T(key string) string {
	var cur any = map[string]any(d)
	for _, part := range strings.Split(key, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return key
		}
		cur, ok = m[part]
		if !ok {
			return key
		}
	}
	if s, ok := cur.(string); ok {
		return s
	}
	return key
}

// Valid reports whether code is a supported locale.
func Valid(code string) bool {
	for _, loc := range domain.Locales {
		if string(loc) == code {
			return true
		}
	}
	return false
}

// Detect picks a supported locale from an Accept-Language header,
// defaulting to Turkish.
func Detect(acceptLanguage string) domain.Locale {
	for _, part := range strings.Split(acceptLanguage, ",") {
		lang := strings.ToLower(strings.TrimSpace(strings.SplitN(part, ";", 2)[0]))
		if lang == "" {
			continue
		}
		if Valid(lang) {
			return domain.Locale(lang)
		}
		if base, _, ok := strings.Cut(lang, "-"); ok && Valid(base) {
			return domain.Locale(base)
		}
	}
	return domain.DefaultLocale
}

// LocalePath prefixes a site path with the locale unless it is the
// default one, which owns the bare paths.
func LocalePath(path string, loc domain.Locale) string {
	if loc == domain.DefaultLocale {
		return path
	}
	return "/" + string(loc) + path
}

var monthsTR = [...]string{
	"Ocak", "Şubat", "Mart", "Nisan", "Mayıs", "Haziran",
	"Temmuz", "Ağustos", "Eylül", "Ekim", "Kasım", "Aralık",
}

// FormatDate renders a date the way each locale writes it:
// "2 Ocak 2026" for Turkish, "January 2, 2026" for English.
func FormatDate(t time.Time, loc domain.Locale) string {
	if loc == domain.LocaleEN {
		return t.Format("January 2, 2006")
	}
	return strings.Join([]string{
		t.Format("2"), monthsTR[t.Month()-1], t.Format("2006"),
	}, " ")
}
