package cms

import (
	"fmt"
	"strings"

	"tenpak/internal/domain"
)

// assetFilename converts an asset reference into its CDN filename:
// "image-abc123-800x600-jpg" -> "abc123-800x600.jpg",
// "file-abc123-pdf"          -> "abc123.pdf".
func assetFilename(ref, kind string) string {
	name := strings.TrimPrefix(ref, kind+"-")
	if i := strings.LastIndex(name, "-"); i >= 0 {
		name = name[:i] + "." + name[i+1:]
	}
	return name
}

// ImageURL builds the CDN URL for an image asset, optionally cropped
// to w x h.
func (c *Client) ImageURL(img domain.Image, w, h int) string {
	if img.Asset.Ref == "" {
		return ""
	}
	u := fmt.Sprintf("%s/images/%s/%s/%s", c.cdn, c.project, c.dataset, assetFilename(img.Asset.Ref, "image"))
	if w > 0 && h > 0 {
		u += fmt.Sprintf("?w=%d&h=%d&fit=crop", w, h)
	}
	return u
}

// FileURL builds the CDN URL for a file asset (PDFs, documents).
func (c *Client) FileURL(f domain.File) string {
	if f.Asset.Ref == "" {
		return ""
	}
	return fmt.Sprintf("%s/files/%s/%s/%s", c.cdn, c.project, c.dataset, assetFilename(f.Asset.Ref, "file"))
}
