package browser

import (
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/Nikcet/get-gifts-backend/internal/extractor"
)

// pollInterval is how often locator and visibility checks re-query the DOM
// while waiting out their budget.
const pollInterval = 500 * time.Millisecond

// NewSession opens a fresh page for a single extraction attempt. The page
// is exclusively owned by the caller and must be released exactly once.
func (b *Browser) NewSession() (extractor.Session, error) {
	page, err := b.context.NewPage()
	if err != nil {
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	return &session{page: page}, nil
}

// session adapts a playwright page to the extractor's Session contract.
type session struct {
	page playwright.Page
}

func (s *session) Navigate(url string) error {
	_, err := s.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(30000),
	})
	return err
}

func (s *session) WaitVisible(selector string, timeout time.Duration) error {
	loc := s.page.Locator(selector).First()
	deadline := time.Now().Add(timeout)
	for {
		visible, err := loc.IsVisible()
		if err == nil && visible {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("%s not visible after %s: %w", selector, timeout, extractor.ErrNoMatch)
		}
		time.Sleep(pollInterval)
	}
}

func (s *session) Scroll(x, y int) error {
	_, err := s.page.Evaluate(fmt.Sprintf("() => window.scrollTo(%d, %d)", x, y))
	return err
}

func (s *session) Text(selector string, timeout time.Duration) (string, error) {
	loc, err := s.locate(selector, timeout)
	if err != nil {
		return "", err
	}
	return loc.InnerText()
}

func (s *session) Attribute(selector, attr string, timeout time.Duration) (string, error) {
	loc, err := s.locate(selector, timeout)
	if err != nil {
		return "", err
	}
	return loc.GetAttribute(attr)
}

func (s *session) Click(selector string, timeout time.Duration) error {
	loc, err := s.locate(selector, timeout)
	if err != nil {
		return err
	}
	return loc.Click(playwright.LocatorClickOptions{
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
}

func (s *session) Content() (string, error) {
	return s.page.Content()
}

func (s *session) Release() error {
	return s.page.Close()
}

// locate polls for the first element matching selector within the budget.
// A miss maps to extractor.ErrNoMatch; a query failure (page gone) is a
// session fault and propagates as-is.
func (s *session) locate(selector string, timeout time.Duration) (playwright.Locator, error) {
	loc := s.page.Locator(selector).First()
	deadline := time.Now().Add(timeout)
	for {
		count, err := loc.Count()
		if err != nil {
			return nil, fmt.Errorf("locator %s: %w", selector, err)
		}
		if count > 0 {
			return loc, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("%s: %w", selector, extractor.ErrNoMatch)
		}
		time.Sleep(pollInterval)
	}
}
