// Package parser pulls structured metadata out of raw product-page HTML.
// It backs the extractor's last-resort fallback when the live-DOM locators
// come up empty.
package parser

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PageMeta holds the Open Graph fields of a product page.
type PageMeta struct {
	Title string
	Image string
}

// ParseMeta extracts og:title and og:image from an HTML document. Missing
// tags leave the corresponding field empty.
func ParseMeta(html string) (*PageMeta, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page html: %w", err)
	}

	meta := &PageMeta{}
	if content, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok {
		meta.Title = strings.TrimSpace(content)
	}
	if content, ok := doc.Find(`meta[property="og:image"]`).Attr("content"); ok {
		meta.Image = strings.TrimSpace(content)
	}

	return meta, nil
}
