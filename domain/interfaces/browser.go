package interfaces

import (
	"context"
	"time"
)

// Element is an opaque handle to a UI element owned by the caller
type Element interface {
	// Describe returns the locator text used to identify the element in logs
	Describe() string

	// WaitVisible blocks until the element is visible or the timeout elapses
	WaitVisible(ctx context.Context, timeout time.Duration) error

	// Click clicks the element
	Click(ctx context.Context) error

	// Fill replaces the element's value with text
	Fill(ctx context.Context, text string) error

	// SelectOption selects the option whose value attribute matches value
	SelectOption(ctx context.Context, value string) error

	// Text returns the element's text content, or its value for form fields
	Text(ctx context.Context) (string, error)
}

// Session is a single browser page that resolves selectors into elements
type Session interface {
	// Element resolves a selector into an element reference
	Element(selector string) Element

	// Navigate opens a URL, relative paths are resolved against the base URL
	Navigate(ctx context.Context, url string) error

	// CurrentURL returns the current page URL
	CurrentURL(ctx context.Context) (string, error)

	// Screenshot captures the current page as PNG
	Screenshot(ctx context.Context) ([]byte, error)

	// Close closes the browser
	Close() error
}
