// Package downloader implements the crawler's only external collaborator
// for fetching page bytes over HTTP.
//
// Responsibilities:
//   - Downloader: an interface the engine depends on, so tests can swap in
//     a fake without touching the network
//   - HTTPDownloader: the default net/http-backed implementation, with
//     retry/backoff via pkg/retry
package downloader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rohmanhakim/docs-crawler/pkg/failure"
	"github.com/rohmanhakim/docs-crawler/pkg/retry"
)

// Response is the fixed record the engine consumes: a status, and
// optionally the page content when the fetch reached a body at all.
type Response struct {
	Status  int
	Headers http.Header
	Content []byte
	URL     string
}

// Downloader fetches a URL's bytes. It never returns a nil error and a
// zero-value Response together: either Fetch succeeds with a populated
// Response, or it returns a ClassifiedError describing why it didn't.
type Downloader interface {
	Fetch(ctx context.Context, url string) (Response, failure.ClassifiedError)
}

// HTTPDownloader is the default Downloader, built on net/http with a
// configurable timeout, user agent, and retry/backoff policy for
// transient failures.
type HTTPDownloader struct {
	client     *http.Client
	userAgent  string
	retryParam retry.RetryParam
}

// NewHTTPDownloader returns a Downloader using timeout as the per-request
// deadline and userAgent as the User-Agent header on every request.
// Transient failures (timeouts, connection errors, 5xx responses) are
// retried per retryParam.
func NewHTTPDownloader(timeout time.Duration, userAgent string, retryParam retry.RetryParam) *HTTPDownloader {
	return &HTTPDownloader{
		client:     &http.Client{Timeout: timeout},
		userAgent:  userAgent,
		retryParam: retryParam,
	}
}

// Fetch performs a single GET request for url, retrying transient failures
// according to the downloader's retry policy. A non-retryable failure is
// returned as its *FetchError; a retryable one that outlasts every attempt
// is returned as a *retry.RetryError.
func (d *HTTPDownloader) Fetch(ctx context.Context, url string) (Response, failure.ClassifiedError) {
	result := retry.Retry(d.retryParam, func() (Response, failure.ClassifiedError) {
		return d.fetchOnce(ctx, url)
	})

	if err := result.Err(); err != nil {
		return Response{}, err
	}
	return result.Value(), nil
}

func (d *HTTPDownloader) fetchOnce(ctx context.Context, rawURL string) (Response, failure.ClassifiedError) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return Response{}, &FetchError{Message: err.Error(), Cause: ErrCauseInvalidRequest, Retryable: false}
	}
	req.Header.Set("User-Agent", d.userAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return Response{}, &FetchError{Message: err.Error(), Cause: ErrCauseTimeout, Retryable: true}
		}
		return Response{}, &FetchError{Message: err.Error(), Cause: ErrCauseNetworkFailure, Retryable: true}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, &FetchError{Message: err.Error(), Cause: ErrCauseReadBodyFailed, Retryable: true}
	}

	if resp.StatusCode >= 500 {
		return Response{}, &FetchError{
			Message:   fmt.Sprintf("server error status %d", resp.StatusCode),
			Cause:     ErrCause5xx,
			Retryable: true,
		}
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		return Response{}, &FetchError{Message: "rate limited", Cause: ErrCauseTooManyRequests, Retryable: true}
	}

	return Response{
		Status:  resp.StatusCode,
		Headers: resp.Header,
		Content: body,
		URL:     rawURL,
	}, nil
}
