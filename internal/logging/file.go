package logging

import (
	"os"
	"path/filepath"

	"github.com/rohmanhakim/docs-crawler/pkg/failure"
	"github.com/rohmanhakim/docs-crawler/pkg/fileutil"
)

func dirOf(path string) string {
	dir := filepath.Dir(path)
	if dir == "" {
		return "."
	}
	return dir
}

func openAppend(path string) (*os.File, failure.ClassifiedError) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, &fileutil.FileError{Message: err.Error(), Cause: fileutil.ErrCausePathError, Retryable: false}
	}
	return f, nil
}
