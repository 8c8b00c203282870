package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected float64
	}{
		{
			name:     "thousands separator and currency symbol",
			raw:      "12 990,50 ₽",
			expected: 12990.50,
		},
		{
			name:     "price with trailing zeros",
			raw:      "1 990,00 ₽",
			expected: 1990.00,
		},
		{
			name:     "plain integer price",
			raw:      "590 ₽",
			expected: 590,
		},
		{
			name:     "dot thousands separator",
			raw:      "1.234,56 ₽",
			expected: 1234.56,
		},
		{
			name:     "surrounding whitespace",
			raw:      "  749,99 ₽  ",
			expected: 749.99,
		},
		{
			name:     "empty string",
			raw:      "",
			expected: 0,
		},
		{
			name:     "no digits at all",
			raw:      "цена по запросу",
			expected: 0,
		},
		{
			name:     "multiple commas are unparsable",
			raw:      "12,990,50",
			expected: 0,
		},
		{
			name:     "currency only",
			raw:      "₽",
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParsePrice(tt.raw))
		})
	}
}

func TestResolveURL(t *testing.T) {
	tests := []struct {
		name     string
		page     string
		src      string
		expected string
	}{
		{
			name:     "absolute src unchanged",
			page:     "https://example.com/product/123",
			src:      "https://cdn.example.com/img/1.jpg",
			expected: "https://cdn.example.com/img/1.jpg",
		},
		{
			name:     "relative src resolved against page",
			page:     "https://example.com/product/123",
			src:      "/img/1.jpg",
			expected: "https://example.com/img/1.jpg",
		},
		{
			name:     "protocol-relative src keeps page scheme",
			page:     "https://example.com/product/123",
			src:      "//cdn.example.com/img/1.jpg",
			expected: "https://cdn.example.com/img/1.jpg",
		},
		{
			name:     "empty src stays empty",
			page:     "https://example.com/product/123",
			src:      "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, resolveURL(tt.page, tt.src))
		})
	}
}
