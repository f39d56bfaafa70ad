package normalize

import (
	"fmt"

	"github.com/rohmanhakim/docs-crawler/pkg/failure"
)

// InvalidURLError is returned by Normalize when raw cannot be parsed as a
// URL reference. It is never retryable: the input itself is malformed.
type InvalidURLError struct {
	Raw   string
	Cause error
}

func (e *InvalidURLError) Error() string {
	return fmt.Sprintf("invalid url %q: %s", e.Raw, e.Cause)
}

func (e *InvalidURLError) Severity() failure.Severity {
	return failure.SeverityFatal
}

func (e *InvalidURLError) Unwrap() error {
	return e.Cause
}
