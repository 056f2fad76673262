package news

import "errors"

var (
	// ErrMissingConfig indicates no API key is configured. No request is made.
	ErrMissingConfig = errors.New("missing news API configuration")

	// ErrNoHeadlines indicates the response held no usable headline lines.
	ErrNoHeadlines = errors.New("no headlines found")

	// ErrUnavailable wraps transport and upstream failures.
	ErrUnavailable = errors.New("news service unavailable")
)
