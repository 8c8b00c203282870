package extractor

// Action is a corrective UI interaction attached to a strategy. When the
// owning strategy matches, the engine clicks Selector once and keeps
// evaluating the remaining strategies instead of accepting the match.
type Action struct {
	Name     string
	Selector string
}

// Strategy is one ordered extraction rule for a field: a locator plus an
// optional reveal action. Strategies for the same field are tried top to
// bottom; the first non-empty result without a Reveal action wins.
type Strategy struct {
	Name     string
	Selector string
	// Attr names the attribute to read; empty means visible text.
	Attr string
	// Reveal marks this strategy as a placeholder match (e.g. a video
	// cover standing in for the product photo). Its value is kept only as
	// a last-resort fallback.
	Reveal *Action
}

// Ozon renders the product gallery with generated data-lcp-name attributes
// that differ between layout revisions, hence the ordered fallbacks. The
// cover.jpg pattern matches the poster frame of a product video; clicking
// the second carousel thumb swaps the real photo back into the gallery.
var (
	titleStrategies = []Strategy{
		{Name: "heading", Selector: "h1"},
	}

	imageStrategies = []Strategy{
		{Name: "gallery-primary", Selector: `img[data-lcp-name="webGallery-3311626-default-1"]`, Attr: "src"},
		{Name: "gallery-fallback", Selector: `img[data-lcp-name="webGallery-3311629-default-1"]`, Attr: "src"},
		{
			Name:     "video-cover",
			Selector: `img[src*="cover.jpg"][loading="eager"]`,
			Attr:     "src",
			Reveal:   &Action{Name: "open-photo-slide", Selector: `div[data-widget="webGallery"] [data-index="1"]`},
		},
		{Name: "gallery-any", Selector: `img[data-lcp-name^="webGallery"]`, Attr: "src"},
	}

	priceStrategies = []Strategy{
		{Name: "price-button", Selector: `button[class*="a2020-a4"] span span`},
		{Name: "price-widget", Selector: `div[data-widget*="webPrice"] span`},
	}
)
