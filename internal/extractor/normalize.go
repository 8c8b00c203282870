package extractor

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

var nonPriceChars = regexp.MustCompile(`[^\d,]`)

// ParsePrice converts raw locale-formatted price text ("12 990,50 ₽") into a
// float. Everything that is not a digit or the comma decimal separator is
// stripped, so thousands separators, currency symbols and whitespace are
// tolerated. Unparsable input yields 0, never an error.
func ParsePrice(raw string) float64 {
	cleaned := nonPriceChars.ReplaceAllString(raw, "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	if cleaned == "" {
		return 0
	}

	price, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return price
}

// resolveURL makes a possibly relative image src absolute against the page
// URL. A src that does not parse is returned as-is.
func resolveURL(pageURL, src string) string {
	if src == "" {
		return ""
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return src
	}
	ref, err := url.Parse(src)
	if err != nil {
		return src
	}
	return base.ResolveReference(ref).String()
}
