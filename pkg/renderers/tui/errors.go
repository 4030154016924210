package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrAttemptsExhausted is returned when every attempt ended invalid.
	ErrAttemptsExhausted = errors.New("tui: no valid submission")
	// ErrUnavailable is returned after the session's boundary tripped and the
	// fallback replaced the page.
	ErrUnavailable = errors.New("tui: page unavailable")
)
