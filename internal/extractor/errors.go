package extractor

import "fmt"

// NavigationError reports that the browser failed to start or the navigation
// itself failed. The extractor never retries these; the caller owns retry
// policy.
type NavigationError struct {
	URL string
	Err error
}

func (e *NavigationError) Error() string {
	return fmt.Sprintf("navigation to %s failed: %v", e.URL, e.Err)
}

func (e *NavigationError) Unwrap() error { return e.Err }

// CascadeError reports a session-level fault that occurred while a field
// cascade was running, e.g. the browser process dying mid-extraction.
// Locator misses never produce it.
type CascadeError struct {
	URL   string
	Field string
	Err   error
}

func (e *CascadeError) Error() string {
	return fmt.Sprintf("extracting %s from %s: %v", e.Field, e.URL, e.Err)
}

func (e *CascadeError) Unwrap() error { return e.Err }
