package core

import (
	"errors"
	"fmt"
	"net/http"
)

// DisallowedText is returned as page content when the page carries the
// "Disallow" marker.
const DisallowedText = "Scraping not permitted by website."

type FetchResult struct {
	Text string
	// Truncated is set when the body was cut at the configured size limit.
	Truncated bool
	// Disallowed is set when the page asked not to be scraped. Text then
	// holds DisallowedText.
	Disallowed bool
}

type FetchErrorKind string

const (
	FetchHTTPStatus FetchErrorKind = "http_status"
	FetchNetwork    FetchErrorKind = "network"
	FetchInternal   FetchErrorKind = "internal"
)

type FetchError struct {
	Kind       FetchErrorKind
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Kind == FetchHTTPStatus {
		text := http.StatusText(e.StatusCode)
		if text == "" {
			text = "Unknown Status"
		}
		return fmt.Sprintf("HTTP %d %s for url: %s", e.StatusCode, text, e.URL)
	}
	if e.Err == nil {
		return string(e.Kind) + " fetch error"
	}
	return e.Err.Error()
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// AsFetchError classifies err. Errors that are not a *FetchError are internal.
func AsFetchError(err error) *FetchError {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe
	}
	return &FetchError{Kind: FetchInternal, Err: err}
}
