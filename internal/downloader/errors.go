package downloader

import (
	"fmt"

	"github.com/rohmanhakim/docs-crawler/pkg/failure"
)

// FetchErrorCause classifies why a fetch attempt failed.
type FetchErrorCause string

const (
	ErrCauseInvalidRequest  FetchErrorCause = "invalid request"
	ErrCauseTimeout         FetchErrorCause = "timeout"
	ErrCauseNetworkFailure  FetchErrorCause = "network failure"
	ErrCauseReadBodyFailed  FetchErrorCause = "read body failed"
	ErrCause5xx             FetchErrorCause = "server error"
	ErrCauseTooManyRequests FetchErrorCause = "too many requests"
)

// FetchError reports why HTTPDownloader.Fetch failed for one attempt.
type FetchError struct {
	Message   string
	Cause     FetchErrorCause
	Retryable bool
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch error: %s: %s", e.Cause, e.Message)
}

func (e *FetchError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

func (e *FetchError) IsRetryable() bool {
	return e.Retryable
}
