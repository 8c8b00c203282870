package extractor

import (
	"errors"
	"time"
)

// ErrNoMatch is returned by Session locator methods when the selector finds
// nothing within its wait budget. The cascade treats it as a silent miss;
// any other error is a session-level fault and aborts the attempt.
var ErrNoMatch = errors.New("no matching element")

// Session is one isolated headless-browser page bound to a single navigation.
// It is never shared across extraction attempts. Release must be called on
// every exit path and must not be called twice.
type Session interface {
	// Navigate loads the target page. A failure here (DNS, refused
	// connection, TLS) is fatal to the attempt.
	Navigate(url string) error

	// WaitVisible blocks until the selector matches a visible element or
	// the timeout elapses, returning ErrNoMatch on timeout.
	WaitVisible(selector string, timeout time.Duration) error

	// Scroll moves the viewport to an absolute offset.
	Scroll(x, y int) error

	// Text returns the visible text of the first element matching selector,
	// or ErrNoMatch if none appears within timeout.
	Text(selector string, timeout time.Duration) (string, error)

	// Attribute returns the named attribute of the first element matching
	// selector, or ErrNoMatch if none appears within timeout.
	Attribute(selector, attr string, timeout time.Duration) (string, error)

	// Click clicks the first element matching selector, or returns
	// ErrNoMatch if none appears within timeout.
	Click(selector string, timeout time.Duration) error

	// Content returns the current HTML of the page.
	Content() (string, error)

	// Release destroys the page and frees its OS-level resources.
	Release() error
}

// SessionFactory produces a fresh Session per extraction attempt.
type SessionFactory interface {
	NewSession() (Session, error)
}
