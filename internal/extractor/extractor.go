package extractor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/Nikcet/get-gifts-backend/internal/parser"
)

// Result holds whatever the cascade could pull off the product page. Empty
// or zero fields are a valid degraded outcome, not an error.
type Result struct {
	Title    string
	ImageURL string
	Price    float64
}

type Options struct {
	// RenderWait bounds the readiness gate on the page heading.
	RenderWait time.Duration
	// FieldWait bounds each individual locator attempt.
	FieldWait time.Duration
}

func DefaultOptions() *Options {
	return &Options{
		RenderWait: 3 * time.Second,
		FieldWait:  2 * time.Second,
	}
}

// Extractor drives one headless-browser session per call through the
// navigate / wait / cascade / normalize pipeline.
type Extractor struct {
	sessions   SessionFactory
	logger     *slog.Logger
	renderWait time.Duration
	fieldWait  time.Duration
}

func New(sessions SessionFactory, opts *Options, logger *slog.Logger) *Extractor {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &Extractor{
		sessions:   sessions,
		logger:     logger.With("component", "extractor"),
		renderWait: opts.RenderWait,
		fieldWait:  opts.FieldWait,
	}
}

// Extract navigates to a product page and returns its title, image URL and
// price. Individual fields degrade to empty/zero when no locator matches;
// only session and navigation faults propagate as errors. The session is
// released on every exit path.
func (e *Extractor) Extract(ctx context.Context, url string) (*Result, error) {
	log := e.logger.With("url", url)
	log.Info("extraction started")

	sess, err := e.sessions.NewSession()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire browser session: %w", err)
	}
	defer func() {
		if relErr := sess.Release(); relErr != nil {
			log.Error("failed to release session", "error", relErr)
		}
	}()

	if err := sess.Navigate(url); err != nil {
		return nil, &NavigationError{URL: url, Err: err}
	}

	// Readiness is a best-effort hint: a page that never shows its heading
	// may still expose some of the fields.
	if err := sess.WaitVisible("h1", e.renderWait); err != nil {
		log.Debug("heading never became visible, extracting anyway", "error", err)
	}

	// Scroll to a pseudo-random offset so the session looks less like an
	// idle automation run.
	if err := sess.Scroll(rand.Intn(100)+1, rand.Intn(900)+100); err != nil {
		log.Debug("scroll failed", "error", err)
	}

	title, err := e.runCascade(sess, "title", titleStrategies)
	if err != nil {
		return nil, &CascadeError{URL: url, Field: "title", Err: err}
	}

	image, err := e.runCascade(sess, "image", imageStrategies)
	if err != nil {
		return nil, &CascadeError{URL: url, Field: "image", Err: err}
	}

	rawPrice, err := e.runCascade(sess, "price", priceStrategies)
	if err != nil {
		return nil, &CascadeError{URL: url, Field: "price", Err: err}
	}

	if title == "" || image == "" {
		title, image = e.metaFallback(sess, title, image)
	}

	result := &Result{
		Title:    title,
		ImageURL: resolveURL(url, image),
		Price:    ParsePrice(rawPrice),
	}

	log.Info("extraction finished",
		"title", result.Title,
		"image", result.ImageURL != "",
		"price", result.Price,
	)
	return result, nil
}

// runCascade tries the field's strategies in order and returns the first
// non-empty value. Locator misses are recorded and skipped; a strategy that
// matched a placeholder triggers its reveal action and the cascade keeps
// going, keeping the placeholder value only if nothing better turns up.
func (e *Extractor) runCascade(sess Session, field string, strategies []Strategy) (string, error) {
	log := e.logger.With("field", field)
	fallback := ""

	for _, st := range strategies {
		value, err := e.tryStrategy(sess, st)
		if errors.Is(err, ErrNoMatch) {
			log.Debug("strategy missed", "strategy", st.Name)
			continue
		}
		if err != nil {
			return "", fmt.Errorf("strategy %s: %w", st.Name, err)
		}
		if value == "" {
			log.Debug("strategy matched empty value", "strategy", st.Name)
			continue
		}

		if st.Reveal != nil {
			log.Debug("placeholder matched, revealing", "strategy", st.Name, "action", st.Reveal.Name)
			if err := sess.Click(st.Reveal.Selector, e.fieldWait); err != nil {
				if !errors.Is(err, ErrNoMatch) {
					return "", fmt.Errorf("reveal action %s: %w", st.Reveal.Name, err)
				}
				log.Debug("reveal target missing", "action", st.Reveal.Name)
			}
			if fallback == "" {
				fallback = value
			}
			continue
		}

		log.Debug("strategy matched", "strategy", st.Name)
		return value, nil
	}

	return fallback, nil
}

func (e *Extractor) tryStrategy(sess Session, st Strategy) (string, error) {
	if st.Attr != "" {
		return sess.Attribute(st.Selector, st.Attr, e.fieldWait)
	}
	return sess.Text(st.Selector, e.fieldWait)
}

// metaFallback fills fields the DOM cascades left empty from the page's
// Open Graph metadata. Failures here never fail the extraction.
func (e *Extractor) metaFallback(sess Session, title, image string) (string, string) {
	html, err := sess.Content()
	if err != nil {
		e.logger.Debug("failed to read page content for metadata fallback", "error", err)
		return title, image
	}

	meta, err := parser.ParseMeta(html)
	if err != nil {
		e.logger.Debug("metadata fallback failed", "error", err)
		return title, image
	}

	if title == "" && meta.Title != "" {
		e.logger.Debug("title recovered from og:title")
		title = meta.Title
	}
	if image == "" && meta.Image != "" {
		e.logger.Debug("image recovered from og:image")
		image = meta.Image
	}
	return title, image
}
