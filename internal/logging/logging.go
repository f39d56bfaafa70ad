// Package logging provides the crawler's two log sinks: a structured
// engine-event log and a plain-line filtered-URL log.
//
// Responsibilities:
//   - EngineLog: structured events for the crawl's own lifecycle and
//     per-URL outcomes, each stamped with the run's crawl ID
//   - RejectLog: one line per rejected URL, in the reference
//     implementation's literal wording
package logging

import (
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"
	"github.com/rohmanhakim/docs-crawler/pkg/failure"
	"github.com/rohmanhakim/docs-crawler/pkg/fileutil"
	"github.com/rs/zerolog"
)

// EngineLog records structured crawl lifecycle events.
type EngineLog interface {
	Started(threads int, seedCount int)
	Fetched(url string, status int, bytesRead int)
	Skipped(url string, reason string)
	Duplicate(url string, reason string)
	WorkerError(url string, err error)
	Checkpoint(uniquePages int)
	Stopped()
}

// ZerologEngineLog is the default EngineLog, writing one JSON object per
// event to w. Every event carries the run's crawl ID so log lines from
// concurrent workers can be correlated back to a single invocation.
type ZerologEngineLog struct {
	logger  zerolog.Logger
	crawlID string
}

// NewZerologEngineLog opens w for structured logging and stamps every
// subsequent event with a freshly generated crawl ID.
func NewZerologEngineLog(w io.Writer) *ZerologEngineLog {
	id := uuid.NewString()
	logger := zerolog.New(w).With().Timestamp().Str("crawl_id", id).Logger()
	return &ZerologEngineLog{logger: logger, crawlID: id}
}

func (l *ZerologEngineLog) CrawlID() string {
	return l.crawlID
}

func (l *ZerologEngineLog) Started(threads int, seedCount int) {
	l.logger.Info().Str("event", "started").Int("threads", threads).Int("seed_count", seedCount).Msg("crawl started")
}

func (l *ZerologEngineLog) Fetched(url string, status int, bytesRead int) {
	l.logger.Info().Str("event", "fetched").Str("url", url).Int("status", status).Int("bytes", bytesRead).Msg("page fetched")
}

func (l *ZerologEngineLog) Skipped(url string, reason string) {
	l.logger.Warn().Str("event", "skipped").Str("url", url).Str("reason", reason).Msg("page skipped")
}

func (l *ZerologEngineLog) Duplicate(url string, reason string) {
	l.logger.Info().Str("event", "duplicate").Str("url", url).Str("reason", reason).Msg("duplicate content discarded")
}

func (l *ZerologEngineLog) WorkerError(url string, err error) {
	l.logger.Error().Str("event", "worker_error").Str("url", url).Err(err).Msg("worker continued past error")
}

func (l *ZerologEngineLog) Checkpoint(uniquePages int) {
	l.logger.Info().Str("event", "checkpoint").Int("unique_pages", uniquePages).Msg("stats checkpoint written")
}

func (l *ZerologEngineLog) Stopped() {
	l.logger.Info().Str("event", "stopped").Msg("crawl stopped")
}

// RejectLog records one line per URL the acceptance policy rejected.
type RejectLog interface {
	Reject(host string, reason string, url string)
}

// PlainRejectLog writes "[<host>] Motivo: <reason> → <url>" lines, the
// reference implementation's literal wording.
type PlainRejectLog struct {
	mu sync.Mutex
	w  io.Writer
}

// NewPlainRejectLog wraps w for filtered-URL logging.
func NewPlainRejectLog(w io.Writer) *PlainRejectLog {
	return &PlainRejectLog{w: w}
}

func (l *PlainRejectLog) Reject(host string, reason string, url string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.w, "[%s] Motivo: %s → %s\n", host, reason, url)
}

// OpenFileSink ensures the parent directory of path exists and opens it
// for appending, for use as the io.Writer backing either log sink.
func OpenFileSink(path string) (io.WriteCloser, failure.ClassifiedError) {
	if err := fileutil.EnsureDir(dirOf(path)); err != nil {
		return nil, err
	}
	return openAppend(path)
}
