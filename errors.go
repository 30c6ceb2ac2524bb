package plotview

import (
	"errors"
	"fmt"
)

// ErrStaleResponse reports that a provider response was superseded by a more
// recently issued fetch before it could be applied. Stale responses are
// dropped silently; this sentinel is only ever logged, never surfaced to the
// host.
var ErrStaleResponse = errors.New("plotview: stale provider response")

// ErrFetchFailed wraps provider transport or status failures. The host is
// expected to surface it in its own error display; the currently displayed
// rasters are left untouched.
var ErrFetchFailed = errors.New("plotview: provider fetch failed")

// errNoRawImage reports a recolor-only load for an attribute with no decoded
// raw image cached.
var errNoRawImage = errors.New("no raw image cached")

// DecodeError reports that the raw raster for one attribute could not be
// decoded. The attribute is excluded from its axis composite for the current
// cycle; the error never aborts the rest of the axis.
type DecodeError struct {
	Attribute string
	Err       error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("plotview: decoding raster for %q: %v", e.Attribute, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
