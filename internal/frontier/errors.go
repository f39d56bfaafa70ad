package frontier

import (
	"fmt"
	"os"

	"github.com/rohmanhakim/docs-crawler/pkg/failure"
)

// StoreError reports a failure opening, reading, or writing the frontier's
// backing database.
type StoreError struct {
	Message   string
	Cause     error
	Retryable bool
}

func (e *StoreError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("frontier error: %s: %s", e.Message, e.Cause)
	}
	return fmt.Sprintf("frontier error: %s", e.Message)
}

func (e *StoreError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

func (e *StoreError) Unwrap() error {
	return e.Cause
}

func removeFile(path string) error {
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
