package cms

import (
	"html"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"tenpak/internal/domain"
)

// richTextPolicy keeps CMS-authored markup to the tags the renderer
// below produces. Authoring happens outside this system, so the output
// is treated as user-generated content and sanitized anyway.
var richTextPolicy = func() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("src", "alt").OnElements("img")
	return p
}()

// RenderBlocks turns rich-text blocks into sanitized HTML ready for a
// template. Consecutive list items fold into one list; inline images
// resolve through the asset CDN.
func (c *Client) RenderBlocks(blocks []domain.Block) template.HTML {
	var b strings.Builder
	inList := false
	closeList := func() {
		if inList {
			b.WriteString("</ul>\n")
			inList = false
		}
	}

	for _, blk := range blocks {
		if blk.Type == "image" && blk.Image != nil {
			closeList()
			b.WriteString(`<img src="` + html.EscapeString(c.ImageURL(*blk.Image, 0, 0)) + `" alt="">` + "\n")
			continue
		}

		text := renderSpans(blk.Children)
		if blk.ListItem != "" {
			if !inList {
				b.WriteString("<ul>\n")
				inList = true
			}
			b.WriteString("<li>" + text + "</li>\n")
			continue
		}
		closeList()

		switch blk.Style {
		case "h2":
			b.WriteString("<h2>" + text + "</h2>\n")
		case "h3":
			b.WriteString("<h3>" + text + "</h3>\n")
		case "blockquote":
			b.WriteString("<blockquote>" + text + "</blockquote>\n")
		default:
			b.WriteString("<p>" + text + "</p>\n")
		}
	}
	closeList()

	return template.HTML(richTextPolicy.Sanitize(b.String()))
}

func renderSpans(spans []domain.Span) string {
	var b strings.Builder
	for _, s := range spans {
		open, close := "", ""
		for _, mark := range s.Marks {
			switch mark {
			case "strong":
				open, close = open+"<strong>", "</strong>"+close
			case "em":
				open, close = open+"<em>", "</em>"+close
			case "underline":
				open, close = open+"<u>", "</u>"+close
			}
		}
		b.WriteString(open + html.EscapeString(s.Text) + close)
	}
	return b.String()
}
