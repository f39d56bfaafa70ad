package stats

import (
	"fmt"

	"github.com/rohmanhakim/docs-crawler/pkg/failure"
)

// StatsError reports a failure reading or writing the stats snapshot.
type StatsError struct {
	Message   string
	Cause     error
	Retryable bool
}

func (e *StatsError) Error() string {
	return fmt.Sprintf("stats error: %s: %s", e.Message, e.Cause)
}

func (e *StatsError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

func (e *StatsError) Unwrap() error {
	return e.Cause
}
