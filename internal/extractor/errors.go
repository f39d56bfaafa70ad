package extractor

import (
	"fmt"

	"github.com/rohmanhakim/docs-crawler/pkg/failure"
)

type ExtractionErrorCause string

const (
	ErrCauseNotHTML ExtractionErrorCause = "not html"
)

// ExtractionError reports why Extract failed to produce a Result. It is
// always fatal for the page at hand: a page that doesn't parse as HTML
// is discarded, not retried.
type ExtractionError struct {
	Message string
	Cause   ExtractionErrorCause
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction error: %s: %s", e.Cause, e.Message)
}

func (e *ExtractionError) Severity() failure.Severity {
	return failure.SeverityFatal
}
