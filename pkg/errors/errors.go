// Package errors provides error handling for peoplegraph.
//
// It re-exports github.com/cockroachdb/errors and defines the error
// taxonomy used across the query pipeline. Every error produced by the
// pipeline is marked with exactly one of the sentinels below, so callers
// classify failures with errors.Is regardless of how much context has been
// wrapped around them.
//
//	res, err := engine.Ask(ctx, text)
//	if errors.Is(err, errors.ErrUpstreamTimeout) {
//	    // let the user try again
//	}
package errors

import (
	"strings"

	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New         = crdb.New
	Newf        = crdb.Newf
	Wrap        = crdb.Wrap
	Wrapf       = crdb.Wrapf
	WithStack   = crdb.WithStack
	WithMessage = crdb.WithMessage
	Mark        = crdb.Mark
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is          = crdb.Is
	IsAny       = crdb.IsAny
	As          = crdb.As
	Unwrap      = crdb.Unwrap
	UnwrapAll   = crdb.UnwrapAll
	GetAllHints = crdb.GetAllHints
)

// Sentinels of the query pipeline. DataError is fatal at startup, all
// others are per-query and recoverable.
var (
	// ErrData indicates the dataset is missing, unreadable or lacks required columns
	ErrData = New("data error")

	// ErrInvalidFormat indicates conditions or query text failed structural validation
	ErrInvalidFormat = New("invalid format")

	// ErrDisallowedQuery indicates the query text looks like a statement of a query language
	ErrDisallowedQuery = New("disallowed query")

	// ErrUnsupportedQueryType indicates aggregate, negated or otherwise unsupported questions
	ErrUnsupportedQueryType = New("unsupported query type")

	// ErrUpstreamTimeout indicates the language model call exceeded its budget
	ErrUpstreamTimeout = New("upstream timeout")

	// ErrUpstream indicates the language model call failed for any other reason
	ErrUpstream = New("upstream error")
)

// DataErrorf creates an error marked as ErrData.
func DataErrorf(format string, args ...any) error {
	return Mark(Newf(format, args...), ErrData)
}

// WrapData marks a lower-level failure while loading the dataset as ErrData.
func WrapData(err error, msg string) error {
	return Mark(Wrap(err, msg), ErrData)
}

// InvalidFormatf creates an error marked as ErrInvalidFormat.
func InvalidFormatf(format string, args ...any) error {
	return WithHint(
		Mark(Newf(format, args...), ErrInvalidFormat),
		"conditions must be a non-empty list of (Person, RELATION, value) triples",
	)
}

// Disallowedf creates an error marked as ErrDisallowedQuery.
func Disallowedf(format string, args ...any) error {
	return WithHint(
		Mark(Newf(format, args...), ErrDisallowedQuery),
		"ask a question in plain language instead",
	)
}

// Unsupported creates an error marked as ErrUnsupportedQueryType. The
// message is kept verbatim so it can be shown to the user as-is.
func Unsupported(msg string) error {
	return Mark(New(msg), ErrUnsupportedQueryType)
}

// UpstreamTimeout marks err as ErrUpstreamTimeout.
func UpstreamTimeout(err error) error {
	return WithHint(
		Mark(Wrap(err, "language model did not answer in time"), ErrUpstreamTimeout),
		"try the query again",
	)
}

// Upstream marks err as ErrUpstream.
func Upstream(err error) error {
	return Mark(Wrap(err, "language model request failed"), ErrUpstream)
}

// Kind returns a short machine-readable name for the sentinel err is marked
// with, or "internal" when it carries none.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case Is(err, ErrData):
		return "data_error"
	case Is(err, ErrInvalidFormat):
		return "invalid_format"
	case Is(err, ErrDisallowedQuery):
		return "disallowed_query"
	case Is(err, ErrUnsupportedQueryType):
		return "unsupported_query_type"
	case Is(err, ErrUpstreamTimeout):
		return "upstream_timeout"
	case Is(err, ErrUpstream):
		return "upstream_error"
	default:
		return "internal"
	}
}

// UserMessage renders err for display, followed by any hints attached to it.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if hints := GetAllHints(err); len(hints) > 0 {
		msg += " (" + strings.Join(hints, "; ") + ")"
	}
	return msg
}
