package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMeta(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		expected PageMeta
	}{
		{
			name: "both tags present",
			html: `<html><head>
				<meta property="og:title" content="Wireless Mouse"/>
				<meta property="og:image" content="https://cdn.example.com/img/1.jpg"/>
			</head><body></body></html>`,
			expected: PageMeta{Title: "Wireless Mouse", Image: "https://cdn.example.com/img/1.jpg"},
		},
		{
			name: "title only",
			html: `<head><meta property="og:title" content="Wireless Mouse"/></head>`,
			expected: PageMeta{Title: "Wireless Mouse"},
		},
		{
			name:     "no metadata",
			html:     `<html><body><h1>Wireless Mouse</h1></body></html>`,
			expected: PageMeta{},
		},
		{
			name:     "empty document",
			html:     ``,
			expected: PageMeta{},
		},
		{
			name: "whitespace trimmed",
			html: `<head><meta property="og:title" content="  Wireless Mouse  "/></head>`,
			expected: PageMeta{Title: "Wireless Mouse"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta, err := ParseMeta(tt.html)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, *meta)
		})
	}
}
