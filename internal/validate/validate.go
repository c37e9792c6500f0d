package validate

import (
	"regexp"
	"strings"
)

var (
	reEmail = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// Turkish mobile numbers: optional +90 or 0 prefix, then 5XXXXXXXXX
	rePhone = regexp.MustCompile(`^(\+90|0)?[5][0-9]{9}$`)
	reQ     = regexp.MustCompile(`^[\p{L}\p{N} _'\-]{1,50}$`)
	reSlug  = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	reType  = regexp.MustCompile(`^(pdf|image|video|document)$`)
)

// MaxUploadSize caps contact form attachments at 10 MB.
const MaxUploadSize = 10 << 20

// allowedMIME is the attachment allow-list for the contact form.
var allowedMIME = map[string]bool{
	"application/pdf":    true,
	"image/jpeg":         true,
	"image/png":          true,
	"image/webp":         true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 100 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// PhoneTR validates a Turkish mobile number; spaces are ignored.
func PhoneTR(s string) (string, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	if s == "" || len(s) > 14 {
		return "", false
	}
	return s, rePhone.MatchString(s)
}

// Q validates a search term: trims, clamps length, letters/numbers only.
func Q(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if len(s) > 50 {
		s = s[:50]
	}
	return s, reQ.MatchString(s)
}

// Slug validates a lowercase dash-separated identifier (max 96 chars,
// the authoring-time slug limit).
func Slug(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 96 {
		return "", false
	}
	return s, reSlug.MatchString(s)
}

// Sector validates the sector enum used by solutions and case studies.
func Sector(s string) (string, bool) {
	switch s {
	case "food-beverage", "healthcare", "cosmetics", "industrial", "retail", "ecommerce":
		return s, true
	}
	return "", false
}

// FileType validates the media library file-type enum.
func FileType(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, reType.MatchString(s)
}

// FileDescriptor is the validated view of an uploaded file, independent
// of how the browser delivered it.
type FileDescriptor struct {
	Name string
	Size int64
	MIME string
}

// Upload checks a contact form attachment against the size cap and the
// MIME allow-list. Pure function: no I/O, safe to test in isolation.
func Upload(f FileDescriptor) bool {
	if f.Size <= 0 || f.Size > MaxUploadSize {
		return false
	}
	// Browsers may append a charset suffix.
	mime := strings.TrimSpace(strings.SplitN(f.MIME, ";", 2)[0])
	return allowedMIME[mime]
}
