package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Kind is the error taxonomy exposed to callers. Every failure leaving the
// engine maps to exactly one kind.
type Kind string

const (
	KindInvalidURL       Kind = "InvalidURL"
	KindGeoRestriction   Kind = "GeoRestriction"
	KindVideoUnavailable Kind = "VideoUnavailable"
	KindExtraction       Kind = "ExtractionError"
	KindSearch           Kind = "SearchError"
	KindBatch            Kind = "BatchError"
	KindSSH              Kind = "SSHError"
	KindUnexpected       Kind = "UnexpectedError"
)

// Error is a classified engine failure.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Errorf builds a classified error.
func Errorf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// IsKind reports whether err is a classified error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// ErrorInfo is the JSON-serializable error record returned by tools.
type ErrorInfo struct {
	ErrorType string `json:"error_type"`
	Message   string `json:"message"`
}

// Describe converts any error into a structured ErrorInfo. Unclassified
// errors map to UnexpectedError.
func Describe(err error) *ErrorInfo {
	var e *Error
	if errors.As(err, &e) {
		return &ErrorInfo{ErrorType: string(e.Kind), Message: e.Message}
	}
	return &ErrorInfo{ErrorType: string(KindUnexpected), Message: err.Error()}
}

// ClassifyToolFailure maps a failed extractor run to a taxonomy kind using
// pattern rules on the diagnostic text. A context deadline means the process
// was killed by the per-call timeout, not that the tool itself errored.
func ClassifyToolFailure(stderr string, runErr error) *Error {
	if errors.Is(runErr, context.DeadlineExceeded) {
		return Errorf(KindExtraction, "extraction timed out")
	}

	msg := strings.TrimSpace(stderr)
	if msg == "" && runErr != nil {
		msg = runErr.Error()
	}
	lower := strings.ToLower(msg)

	switch {
	case strings.Contains(lower, "geo"):
		return &Error{Kind: KindGeoRestriction, Message: msg}
	case strings.Contains(lower, "private"),
		strings.Contains(lower, "unavailable"),
		strings.Contains(lower, "sign in"):
		return &Error{Kind: KindVideoUnavailable, Message: msg}
	default:
		return &Error{Kind: KindExtraction, Message: msg}
	}
}
