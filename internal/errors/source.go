package errors

import (
	stdErrors "errors"
	"fmt"
)

// Source names used in SourceUnavailableError and failure markers.
const (
	SourceCatalog    = "catalog"
	SourceDiscussion = "discussion"
	SourceVideo      = "video"
)

// SourceUnavailableError means a collaborator failed at the transport or
// auth level while fetching data for one artist. Not-found results never
// produce this error.
type SourceUnavailableError struct {
	Source string
	Artist string
	Err    error
}

func (e *SourceUnavailableError) Error() string {
	if e.Artist == "" {
		return fmt.Sprintf("%s source unavailable: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("%s source unavailable for %q: %v", e.Source, e.Artist, e.Err)
}

func (e *SourceUnavailableError) Unwrap() error {
	return e.Err
}

// NewSourceUnavailableError wraps err as a failure of the named source
func NewSourceUnavailableError(source, artist string, err error) *SourceUnavailableError {
	return &SourceUnavailableError{Source: source, Artist: artist, Err: err}
}

// IsSourceUnavailable reports whether err is a SourceUnavailableError (even when wrapped).
func IsSourceUnavailable(err error) bool {
	var srcErr *SourceUnavailableError
	return stdErrors.As(err, &srcErr)
}

// FailedSource returns the source name carried by a SourceUnavailableError
// in err's chain, or "" when there is none.
func FailedSource(err error) string {
	var srcErr *SourceUnavailableError
	if stdErrors.As(err, &srcErr) {
		return srcErr.Source
	}
	return ""
}
